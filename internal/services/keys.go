package services

import (
	"errors"
	"fmt"

	"perfopoints/internal/db"
	"perfopoints/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientKeys 钥匙不够，条件扣减未命中时返回
var ErrInsufficientKeys = errors.New("钥匙数量不足")

// KeyInventory 用户的钥匙库存，keyType -> 数量。未持有的类型数量为 0
func KeyInventory(userID uint) map[string]int {
	var rows []models.UserKey
	db.DB.Where("user_id = ?", userID).Find(&rows)

	inv := make(map[string]int, len(rows))
	for _, r := range rows {
		inv[r.KeyType] = r.Quantity
	}
	return inv
}

// HasRequiredKeys 库存是否满足全部需求（纯函数）。
// 需求列表为空时恒为 true。注意这只是给前端置灰按钮用的预检，
// 真正扣减时必须再走 SpendKeysTx 的条件更新，预检和扣减之间可能被并发抢走
func HasRequiredKeys(inventory map[string]int, requirements []models.RewardKeyRequirement) bool {
	for _, req := range requirements {
		if inventory[req.KeyType] < req.Quantity {
			return false
		}
	}
	return true
}

// GrantKeysTx 在事务内增加钥匙数量，没有库存行则先建一行。
// upsert + 数据库端自增，同类型并发发放不丢更新
func GrantKeysTx(tx *gorm.DB, userID uint, keyType string, quantity int) error {
	if !models.IsValidKeyType(keyType) {
		return fmt.Errorf("无效的钥匙类型: %s", keyType)
	}
	if quantity <= 0 {
		return fmt.Errorf("发放数量必须为正数: %d", quantity)
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "key_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("user_keys.quantity + ?", quantity),
		}),
	}).Create(&models.UserKey{
		UserID:   userID,
		KeyType:  keyType,
		Quantity: quantity,
	}).Error
}

// SpendKeysTx 在事务内条件扣减钥匙：只有数量足够才会命中更新，
// 数量永远不会被扣成负数
func SpendKeysTx(tx *gorm.DB, userID uint, keyType string, quantity int) error {
	result := tx.Model(&models.UserKey{}).
		Where("user_id = ? AND key_type = ? AND quantity >= ?", userID, keyType, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientKeys
	}
	return nil
}

// GiftKeys 管理员赠送钥匙：发放 + 通知一并完成
func GiftKeys(adminID, userID uint, keyType string, quantity int) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := GrantKeysTx(tx, userID, keyType, quantity); err != nil {
			return err
		}

		meta := keyMeta(keyType)
		notification := models.Notification{
			UserID:  userID,
			ActorID: &adminID,
			Type:    models.NotificationTypeKeyGift,
			Reason:  fmt.Sprintf("你收到了 %d 把%s %s", quantity, meta.Name, meta.Emoji),
		}
		return tx.Create(&notification).Error
	})
}

func keyMeta(keyType string) models.KeyTypeMeta {
	for _, m := range models.KeyTypes {
		if m.Type == keyType {
			return m
		}
	}
	return models.KeyTypeMeta{Type: keyType, Name: keyType}
}
