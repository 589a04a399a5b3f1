package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeRequestApproved NotificationType = "request_approved" // 申请通过
	NotificationTypeRequestRejected NotificationType = "request_rejected" // 申请被拒
	NotificationTypeKeyGift         NotificationType = "key_gift"         // 收到钥匙赠送
	NotificationTypeMeterProgress   NotificationType = "meter_progress"   // 进度条变动
	NotificationTypeSystem          NotificationType = "system"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // Receiver
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ActorID   *uint            `gorm:"index" json:"actor_id"` // Sender（审核人/赠送人）
	Actor     User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Reason    string           `gorm:"type:text" json:"reason"` // 通知详细内容
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
