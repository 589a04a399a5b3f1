package services

import (
	"errors"
	"time"

	"perfopoints/internal/db"
	"perfopoints/internal/models"
)

// 五次礼拜名称
const (
	PrayerFajr    = "fajr"
	PrayerDhuhr   = "dhuhr"
	PrayerAsr     = "asr"
	PrayerMaghrib = "maghrib"
	PrayerIsha    = "isha"
)

// PrayerWindow 某一天的礼拜时段，[Start, End) 半开区间。
// 只有 Isha 跨午夜：End 落在次日
type PrayerWindow struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	WrapsDay  bool      `json:"wraps_day"` // 是否跨午夜
}

// 固定时段表（小时:分钟），Isha 的结束在次日 04:00
var prayerTimetable = []struct {
	name          string
	label         string
	startH, startM int
	endH, endM     int
	wraps          bool
}{
	{PrayerFajr, "晨礼", 4, 0, 6, 30, false},
	{PrayerDhuhr, "晌礼", 12, 0, 15, 30, false},
	{PrayerAsr, "晡礼", 15, 30, 18, 0, false},
	{PrayerMaghrib, "昏礼", 18, 0, 20, 0, false},
	{PrayerIsha, "宵礼", 20, 0, 4, 0, true},
}

// ErrPrayerNotOpen 时段未开始就打卡
var ErrPrayerNotOpen = errors.New("该礼拜时段尚未开始")

// ErrUnknownPrayer 名称不在五次礼拜之内
var ErrUnknownPrayer = errors.New("未知的礼拜名称")

// PrayerWindows 返回指定日期的五个礼拜时段
func PrayerWindows(date time.Time) []PrayerWindow {
	loc := AppLocation()
	date = date.In(loc)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	windows := make([]PrayerWindow, 0, len(prayerTimetable))
	for _, e := range prayerTimetable {
		start := day.Add(time.Duration(e.startH)*time.Hour + time.Duration(e.startM)*time.Minute)
		endDay := day
		if e.wraps {
			endDay = day.AddDate(0, 0, 1)
		}
		end := endDay.Add(time.Duration(e.endH)*time.Hour + time.Duration(e.endM)*time.Minute)
		windows = append(windows, PrayerWindow{
			Name:     e.name,
			Label:    e.label,
			Start:    start,
			End:      end,
			WrapsDay: e.wraps,
		})
	}
	return windows
}

// PrayerWindowByName 取指定日期里某一次礼拜的时段
func PrayerWindowByName(date time.Time, name string) (PrayerWindow, error) {
	for _, w := range PrayerWindows(date) {
		if w.Name == name {
			return w, nil
		}
	}
	return PrayerWindow{}, ErrUnknownPrayer
}

// IsActive now 是否落在时段内。跨午夜的 Isha 按环形判断：
// now >= 当天 20:00，或 now < 当天凌晨 04:00（即前一天 Isha 的尾巴）
func (w PrayerWindow) IsActive(now time.Time) bool {
	now = now.In(AppLocation())
	if !w.WrapsDay {
		return !now.Before(w.Start) && now.Before(w.End)
	}
	// 尾巴段：用当天 00:00 到 04:00 判断，04:00 整点起归 Fajr
	tailEnd := w.End.AddDate(0, 0, -1)
	return !now.Before(w.Start) || now.Before(tailEnd)
}

// HasPassed now 是否已过时段。Isha 只有"死区"（尾巴结束后、当晚开始前）算已过
func (w PrayerWindow) HasPassed(now time.Time) bool {
	now = now.In(AppLocation())
	if !w.WrapsDay {
		return !now.Before(w.End)
	}
	tailEnd := w.End.AddDate(0, 0, -1)
	return !now.Before(tailEnd) && now.Before(w.Start)
}

// MarkPrayerCompleted 礼拜打卡。时段未开始（既不在进行中也未过去）则拒绝，
// 这是业务校验失败，不产生任何写入
func MarkPrayerCompleted(userID uint, name string, now time.Time) (*models.PrayerLog, error) {
	w, err := PrayerWindowByName(now, name)
	if err != nil {
		return nil, err
	}
	if !w.IsActive(now) && !w.HasPassed(now) {
		return nil, ErrPrayerNotOpen
	}

	now = now.In(AppLocation())
	entry := models.PrayerLog{
		UserID:      userID,
		Date:        now.Format("2006-01-02"),
		Prayer:      name,
		CompletedAt: now,
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		// 唯一索引兜底：同一天同一礼拜重复打卡
		return nil, err
	}
	return &entry, nil
}

// TodayPrayerLogs 查询用户今天已打卡的礼拜
func TodayPrayerLogs(userID uint, now time.Time) map[string]bool {
	date := now.In(AppLocation()).Format("2006-01-02")
	var logs []models.PrayerLog
	db.DB.Where("user_id = ? AND date = ?", userID, date).Find(&logs)

	done := make(map[string]bool, len(logs))
	for _, l := range logs {
		done[l.Prayer] = true
	}
	return done
}
