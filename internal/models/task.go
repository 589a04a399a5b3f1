package models

import (
	"time"
)

// 任务状态
const (
	TaskStatusActive   = "active"
	TaskStatusInactive = "inactive"
)

// Task 可完成的任务，完成申请通过审核后按 PointValue 发放积分
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"` // 支持 Markdown
	PointValue  int        `gorm:"not null" json:"point_value"`  // 必须 > 0
	Category    string     `gorm:"size:50" json:"category"`
	Recurring   bool       `gorm:"default:false" json:"recurring"`              // 可重复完成
	Status      string     `gorm:"size:20;default:'active';not null" json:"status"` // active, inactive
	Deadline    *time.Time `json:"deadline"`                                    // 可选截止时间
	CreatedBy   uint       `gorm:"index" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	KeyRewards      []TaskKeyReward `gorm:"-" json:"key_rewards,omitempty"`
	DescriptionHTML string          `gorm:"-" json:"description_html,omitempty"`
}
