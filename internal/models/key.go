package models

import (
	"time"
)

// 钥匙类型，固定枚举
const (
	KeyTypeCopper  = "copper"
	KeyTypeSilver  = "silver"
	KeyTypeGolden  = "golden"
	KeyTypeDiamond = "diamond"
	KeyTypeRuby    = "ruby"
)

// KeyTypeMeta 钥匙展示信息（代码内固定，不入库）
type KeyTypeMeta struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// KeyTypes 按稀有度从低到高排列
var KeyTypes = []KeyTypeMeta{
	{Type: KeyTypeCopper, Name: "铜钥匙", Color: "#b87333", Emoji: "🔑"},
	{Type: KeyTypeSilver, Name: "银钥匙", Color: "#c0c0c0", Emoji: "🗝️"},
	{Type: KeyTypeGolden, Name: "金钥匙", Color: "#ffd700", Emoji: "🔐"},
	{Type: KeyTypeDiamond, Name: "钻石钥匙", Color: "#b9f2ff", Emoji: "💎"},
	{Type: KeyTypeRuby, Name: "红宝石钥匙", Color: "#e0115f", Emoji: "❤️‍🔥"},
}

// IsValidKeyType 校验钥匙类型是否在枚举内
func IsValidKeyType(t string) bool {
	for _, m := range KeyTypes {
		if m.Type == t {
			return true
		}
	}
	return false
}

// UserKey 用户持有的钥匙数量，(user_id, key_type) 唯一，数量不允许为负
type UserKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_key" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	KeyType   string    `gorm:"size:20;not null;uniqueIndex:idx_user_key" json:"key_type"`
	Quantity  int       `gorm:"default:0;not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskKeyReward 任务完成奖励的钥匙，"完成任务 T 得 N 把某钥匙"
type TaskKeyReward struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TaskID   uint   `gorm:"not null;index;uniqueIndex:idx_task_key" json:"task_id"`
	KeyType  string `gorm:"size:20;not null;uniqueIndex:idx_task_key" json:"key_type"`
	Quantity int    `gorm:"not null" json:"quantity"`
}

// RewardKeyRequirement 兑换奖励需要消耗的钥匙，"兑换 R 需 N 把某钥匙"
type RewardKeyRequirement struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RewardID uint   `gorm:"not null;index;uniqueIndex:idx_reward_key" json:"reward_id"`
	KeyType  string `gorm:"size:20;not null;uniqueIndex:idx_reward_key" json:"key_type"`
	Quantity int    `gorm:"not null" json:"quantity"`
}
