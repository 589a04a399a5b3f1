package models

import (
	"time"
)

// 申请状态，approved/rejected 为终态，终态后不可再变更
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// PointRequest 完成任务的积分申请，管理员审核通过后发放积分
type PointRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	TaskID     uint      `gorm:"not null;index" json:"task_id"`
	Task       Task      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"task"`
	Status     string    `gorm:"size:20;default:'pending';not null;index" json:"status"`
	PhotoURL   string    `json:"photo_url"`               // 完成凭证图片（可选）
	Comment    string    `gorm:"type:text" json:"comment"` // 申请备注（可选）
	ReviewedBy *uint     `json:"reviewed_by"`              // 审核人
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// 自定义申请类型
const (
	CustomRequestTypeTask   = "task"
	CustomRequestTypeReward = "reward"
	CustomRequestTypeOther  = "other"
)

// CustomRequest 用户自由提交的申请（想要的新任务/新奖励等），审核不产生积分变动
type CustomRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:20;default:'other';not null" json:"type"` // task, reward, other
	Status      string    `gorm:"size:20;default:'pending';not null;index" json:"status"`
	ReviewedBy  *uint     `json:"reviewed_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
