package models

import (
	"time"
)

// Reward 可兑换的奖励，兑换时按 PointCost 扣除积分
type Reward struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"` // 支持 Markdown
	PointCost   int       `gorm:"not null" json:"point_cost"`   // 必须 > 0
	Category    string    `gorm:"size:50" json:"category"`
	KeyRequired bool      `gorm:"default:false" json:"key_required"` // 是否需要钥匙才能兑换
	CreatedBy   uint      `gorm:"index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	KeyRequirements []RewardKeyRequirement `gorm:"-" json:"key_requirements,omitempty"`
	DescriptionHTML string                 `gorm:"-" json:"description_html,omitempty"`
	CanAfford       bool                   `gorm:"-" json:"can_afford"`
	HasKeys         bool                   `gorm:"-" json:"has_keys"`
}

// RewardRedemption 兑换记录，扣分成功后写入
type RewardRedemption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RewardID    uint      `gorm:"not null;index" json:"reward_id"`
	Reward      Reward    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reward"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	PointsSpent int       `gorm:"not null" json:"points_spent"`
	CreatedAt   time.Time `json:"created_at"`
}
