package utils

import (
	"time"
)

// GetUserLevel 根据累计积分返回称号
func GetUserLevel(points int) (name string, icon string) {
	switch {
	case points >= 1000:
		return "全家之光", "🏆"
	case points >= 500:
		return "劳动模范", "🥇"
	case points >= 200:
		return "积极分子", "🥈"
	case points >= 50:
		return "小有成绩", "🥉"
	default:
		return "新手上路", "🌱"
	}
}

// GetDaysSinceJoined 计算加入天数
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}
