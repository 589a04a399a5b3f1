package models

import (
	"time"
)

// PrayerLog 礼拜打卡记录，(user_id, date, prayer) 唯一。
// 只有时段已开始（进行中或已过）才允许打卡
type PrayerLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_user_date_prayer" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Date        string    `gorm:"size:10;not null;uniqueIndex:idx_user_date_prayer" json:"date"` // YYYY-MM-DD
	Prayer      string    `gorm:"size:20;not null;uniqueIndex:idx_user_date_prayer" json:"prayer"`
	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}
