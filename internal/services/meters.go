package services

import (
	"errors"
	"fmt"
	"time"

	"perfopoints/internal/db"
	"perfopoints/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrMeterNotActive 进度条已停用或不存在
var ErrMeterNotActive = errors.New("进度条不存在或已停用")

// MeterChange 一次进度变动的计算结果
type MeterChange struct {
	OldPercentage int
	NewPercentage int
	JustUnlocked  bool // 本次变动是否首次达标
}

// ApplyMeterDelta 进度变动规则（纯函数）：
// 新百分比截断到 [0,100]；首次达到目标时解锁奖品，且只解锁一次
func ApplyMeterDelta(current, target int, delta int, alreadyUnlocked bool) MeterChange {
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next > 100 {
		next = 100
	}

	return MeterChange{
		OldPercentage: current,
		NewPercentage: next,
		JustUnlocked:  !alreadyUnlocked && next >= target,
	}
}

// CreateMeter 新建进度条。同一用户同时只能有一个生效中的进度条，
// 创建前先把旧的全部停用
func CreateMeter(userID uint, meterType, description string, target int) (*models.UserMeter, error) {
	if target <= 0 || target > 100 {
		return nil, fmt.Errorf("目标百分比必须在 1-100 之间: %d", target)
	}

	var meter models.UserMeter
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// 停用该用户已有的生效进度条
		if err := tx.Model(&models.UserMeter{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		meter = models.UserMeter{
			UserID:           userID,
			MeterType:        meterType,
			Description:      description,
			TargetPercentage: target,
			IsActive:         true,
		}
		return tx.Create(&meter).Error
	})
	if err != nil {
		return nil, err
	}
	return &meter, nil
}

// AdjustMeter 对生效中的进度条应用带符号的百分比增量，附带变动原因。
// 截断、首次达标解锁、历史流水都在同一事务里完成
func AdjustMeter(meterID uint, delta int, reason string) (*models.UserMeter, *MeterChange, error) {
	var meter models.UserMeter
	var change MeterChange

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// 行锁：并发调整同一进度条时串行化，防止历史流水错乱
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = ?", meterID, true).
			First(&meter).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrMeterNotActive
			}
			return err
		}

		change = ApplyMeterDelta(meter.CurrentPercentage, meter.TargetPercentage, delta, meter.PrizeUnlocked)

		updates := map[string]interface{}{
			"current_percentage": change.NewPercentage,
		}
		if change.JustUnlocked {
			// active -> completed 只发生一次，completed_at 只在首次达标写入
			now := time.Now()
			updates["prize_unlocked"] = true
			updates["completed_at"] = &now
			meter.PrizeUnlocked = true
			meter.CompletedAt = &now
		}
		if err := tx.Model(&meter).Updates(updates).Error; err != nil {
			return err
		}
		meter.CurrentPercentage = change.NewPercentage

		history := models.MeterHistory{
			MeterID:       meter.ID,
			OldPercentage: change.OldPercentage,
			NewPercentage: change.NewPercentage,
			ChangeAmount:  delta,
			Reason:        reason,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		// 进度通知
		text := fmt.Sprintf("你的进度条「%s」%+d%%（当前 %d%%），原因：%s", meter.MeterType, delta, change.NewPercentage, reason)
		if change.JustUnlocked {
			text = fmt.Sprintf("🎁 进度条「%s」达成目标 %d%%，奖品已解锁！", meter.MeterType, meter.TargetPercentage)
		}
		notification := models.Notification{
			UserID: meter.UserID,
			Type:   models.NotificationTypeMeterProgress,
			Reason: text,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &meter, &change, nil
}

// DeactivateMeter 管理员停用进度条，对该实例是终态；继续跟踪需新建
func DeactivateMeter(meterID uint) error {
	result := db.DB.Model(&models.UserMeter{}).
		Where("id = ? AND is_active = ?", meterID, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMeterNotActive
	}
	return nil
}

// ActiveMeter 查询用户当前生效的进度条
func ActiveMeter(userID uint) (*models.UserMeter, error) {
	var meter models.UserMeter
	err := db.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&meter).Error
	if err != nil {
		return nil, err
	}
	return &meter, nil
}

// MeterHistoryList 查询进度条的变动流水
func MeterHistoryList(meterID uint, limit int) []models.MeterHistory {
	var history []models.MeterHistory
	db.DB.Where("meter_id = ?", meterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history)
	return history
}
