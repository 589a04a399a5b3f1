package services

import (
	"log"
	"os"
	"sync"
	"time"

	"perfopoints/internal/db"
	"perfopoints/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	appLocation *time.Location
	locOnce     sync.Once
)

// AppLocation 全局统一的日历时区。连续打卡按自然日比较，
// 多设备必须用同一个时区算"今天"，否则跨时区会重复加或漏算
func AppLocation() *time.Location {
	locOnce.Do(func() {
		name := os.Getenv("APP_TZ")
		if name == "" {
			appLocation = time.Local
			return
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("无效的 APP_TZ %q，回退到本地时区: %v", name, err)
			appLocation = time.Local
			return
		}
		appLocation = loc
	})
	return appLocation
}

// dateOnly 取某时刻在统一时区下的日期部分
func dateOnly(t time.Time) time.Time {
	t = t.In(AppLocation())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AdvanceStreak 连续打卡推进规则（纯函数）：
//   - 上次活跃是今天 -> 不变
//   - 上次活跃正好是昨天 -> 连击 +1，最长连击取 max
//   - 断档超过一天或从未活跃 -> 连击归 1
// 对任意两个时间都有定义，无失败路径
func AdvanceStreak(prev models.Streak, now time.Time) models.Streak {
	today := dateOnly(now)

	if prev.LastActivityDate == nil {
		prev.CurrentStreak = 1
		if prev.LongestStreak < 1 {
			prev.LongestStreak = 1
		}
		prev.LastActivityDate = &today
		return prev
	}

	last := dateOnly(*prev.LastActivityDate)
	switch {
	case !today.After(last):
		// 同一天（或时钟回拨），不变
		return prev
	case today.Equal(last.AddDate(0, 0, 1)):
		prev.CurrentStreak++
		if prev.CurrentStreak > prev.LongestStreak {
			prev.LongestStreak = prev.CurrentStreak
		}
	default:
		prev.CurrentStreak = 1
		if prev.LongestStreak < 1 {
			prev.LongestStreak = 1
		}
	}
	prev.LastActivityDate = &today
	return prev
}

// TouchStreakTx 在事务内推进用户的连续打卡记录（审核通过等活跃动作时调用）
func TouchStreakTx(tx *gorm.DB, userID uint, now time.Time) error {
	var streak models.Streak
	// 行锁防止同一用户并发推进时互相覆盖
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&streak).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		streak = models.Streak{UserID: userID}
	}

	updated := AdvanceStreak(streak, now)
	updated.UserID = userID
	return tx.Save(&updated).Error
}

// GetStreak 查询用户的连续打卡记录，没有则返回零值记录
func GetStreak(userID uint) models.Streak {
	var streak models.Streak
	if err := db.DB.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		return models.Streak{UserID: userID}
	}
	return streak
}
