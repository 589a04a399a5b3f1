package models

import (
	"time"
)

// UserMeter 用户进度条，达到目标百分比即解锁奖品
// 状态机: inactive -> active -> completed，completed 不可回退；
// 管理员可随时停用（对该实例终态），继续跟踪需新建进度条
type UserMeter struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;index" json:"user_id"`
	User              User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	MeterType         string     `gorm:"size:50;not null" json:"meter_type"`
	CurrentPercentage int        `gorm:"default:0;not null" json:"current_percentage"` // 始终在 [0,100]
	TargetPercentage  int        `gorm:"not null" json:"target_percentage"`
	IsActive          bool       `gorm:"default:true;index" json:"is_active"`
	PrizeUnlocked     bool       `gorm:"default:false" json:"prize_unlocked"`
	Description       string     `gorm:"type:text" json:"description"`
	CompletedAt       *time.Time `json:"completed_at"` // 首次达标时写入，之后不再变
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MeterHistory 进度条变动流水，只增不改
type MeterHistory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MeterID        uint      `gorm:"not null;index" json:"meter_id"`
	Meter          UserMeter `gorm:"foreignKey:MeterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"meter"`
	OldPercentage  int       `gorm:"not null" json:"old_percentage"`
	NewPercentage  int       `gorm:"not null" json:"new_percentage"`
	ChangeAmount   int       `gorm:"not null" json:"change_amount"` // 调用方传入的原始增量（未截断）
	Reason         string    `gorm:"size:200" json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}
