package services

import (
	"errors"
	"perfopoints/internal/db"
	"perfopoints/internal/models"

	"gorm.io/gorm"
)

// 积分动作常量
const (
	ActionTaskApproved = "完成任务"
	ActionAdminGrant   = "管理员发放"
	ActionAdminDeduct  = "管理员扣除"
	ActionRedeem       = "兑换奖励"
)

// ErrInsufficientPoints 余额不足，条件更新未命中时返回
var ErrInsufficientPoints = errors.New("积分不足")

// AddPoints 使用事务添加积分并记录明细
// 传入用户ID、积分变动值（正数增加，负数扣除）、动作描述
func AddPoints(userID uint, amount int, action string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return AddPointsTx(tx, userID, amount, action)
	})
}

// AddPointsTx 在已有事务内添加积分并记录明细，供审核/兑换等复合操作复用。
// 余额更新走数据库端自增，绝不在客户端算新值回写，避免并发丢更新
func AddPointsTx(tx *gorm.DB, userID uint, amount int, action string) error {
	// 1. 创建积分明细记录
	log := models.PointLog{
		UserID: userID,
		Amount: amount,
		Action: action,
	}
	if err := tx.Create(&log).Error; err != nil {
		return err
	}

	// 2. 更新用户积分余额
	if err := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount)).
		Error; err != nil {
		return err
	}

	return nil
}

// DeductPointsTx 条件扣除积分：只有余额足够才会命中更新。
// 扣除和余额检查必须是同一条 UPDATE，两个并发兑换不能都用旧余额通过检查
func DeductPointsTx(tx *gorm.DB, userID uint, amount int, action string) error {
	result := tx.Model(&models.User{}).
		Where("id = ? AND points >= ?", userID, amount).
		UpdateColumn("points", gorm.Expr("points - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientPoints
	}

	log := models.PointLog{
		UserID: userID,
		Amount: -amount,
		Action: action,
	}
	return tx.Create(&log).Error
}

// AddPointsAsync 异步添加积分（在 goroutine 中调用）
func AddPointsAsync(userID uint, amount int, action string) {
	go func() {
		_ = AddPoints(userID, amount, action)
	}()
}
