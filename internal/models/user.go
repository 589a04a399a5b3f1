package models

import (
	"time"
)

// 用户状态
const (
	UserStatusNormal  = 0 // 正常
	UserStatusBlocked = 2 // 封禁（无法登录）
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"not null" json:"username"` // Username can be modified
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`                           // Hash
	Avatar      string    `json:"avatar"`                                      // 头像 URL
	Points      int       `gorm:"default:0" json:"points"`                     // 积分余额，任何变动都走 PointLog
	Role        string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	Status      int       `gorm:"default:0" json:"status"`                     // 0:正常, 2:封禁
	IsActivated bool      `gorm:"default:false" json:"is_activated"`           // 邮箱是否已验证
	VerifyCode  string    `gorm:"size:20" json:"-"`                            // 验证码(激活/重置通用)
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// IsBlocked 是否被封禁
func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}
