package services

import (
	"fmt"

	"perfopoints/internal/db"
	"perfopoints/internal/models"

	"gorm.io/gorm"
)

// RedeemReward 兑换奖励。余额检查与扣减、钥匙检查与扣减、
// 兑换记录、积分流水全部在同一事务内：任何一步条件不满足整体回滚，
// 两个并发兑换不可能都基于旧余额通过检查（见 DeductPointsTx/SpendKeysTx）
func RedeemReward(userID uint, rewardID uint) (*models.RewardRedemption, error) {
	var redemption models.RewardRedemption

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			return err
		}

		// 1. 条件扣积分（余额不足直接失败，余额保持不变）
		action := fmt.Sprintf("%s：%s", ActionRedeem, reward.Title)
		if err := DeductPointsTx(tx, userID, reward.PointCost, action); err != nil {
			return err
		}

		// 2. 条件扣钥匙
		if reward.KeyRequired {
			var requirements []models.RewardKeyRequirement
			if err := tx.Where("reward_id = ?", reward.ID).Find(&requirements).Error; err != nil {
				return err
			}
			for _, req := range requirements {
				if err := SpendKeysTx(tx, userID, req.KeyType, req.Quantity); err != nil {
					return err
				}
			}
		}

		// 3. 兑换记录
		redemption = models.RewardRedemption{
			RewardID:    reward.ID,
			UserID:      userID,
			PointsSpent: reward.PointCost,
		}
		return tx.Create(&redemption).Error
	})
	if err != nil {
		return nil, err
	}

	GetLeaderboardService().ScheduleRefresh()
	return &redemption, nil
}
