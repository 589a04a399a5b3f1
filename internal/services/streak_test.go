package services

import (
	"os"
	"testing"
	"time"

	"perfopoints/internal/models"
)

// 统一用 UTC 测试，避免机器本地时区影响自然日计算
func TestMain(m *testing.M) {
	locOnce.Do(func() {})
	appLocation = time.UTC
	os.Exit(m.Run())
}

func date(y int, mo time.Month, d, h, min int) time.Time {
	return time.Date(y, mo, d, h, min, 0, 0, time.UTC)
}

func TestAdvanceStreakFirstActivity(t *testing.T) {
	now := date(2025, 3, 10, 9, 0)
	got := AdvanceStreak(models.Streak{UserID: 1}, now)

	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", got.LongestStreak)
	}
	if got.LastActivityDate == nil || !got.LastActivityDate.Equal(date(2025, 3, 10, 0, 0)) {
		t.Errorf("LastActivityDate = %v, want 2025-03-10", got.LastActivityDate)
	}
}

func TestAdvanceStreakSameDay(t *testing.T) {
	last := date(2025, 3, 10, 0, 0)
	prev := models.Streak{UserID: 1, CurrentStreak: 5, LongestStreak: 8, LastActivityDate: &last}

	// 同一天再次活跃，连击不变
	got := AdvanceStreak(prev, date(2025, 3, 10, 23, 59))
	if got.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", got.CurrentStreak)
	}
	if got.LongestStreak != 8 {
		t.Errorf("LongestStreak = %d, want 8", got.LongestStreak)
	}
}

func TestAdvanceStreakNextDay(t *testing.T) {
	last := date(2025, 3, 10, 0, 0)
	prev := models.Streak{UserID: 1, CurrentStreak: 5, LongestStreak: 5, LastActivityDate: &last}

	got := AdvanceStreak(prev, date(2025, 3, 11, 0, 0))
	if got.CurrentStreak != 6 {
		t.Errorf("CurrentStreak = %d, want 6", got.CurrentStreak)
	}
	// 最长连击跟着刷新
	if got.LongestStreak != 6 {
		t.Errorf("LongestStreak = %d, want 6", got.LongestStreak)
	}
}

func TestAdvanceStreakGapResets(t *testing.T) {
	last := date(2025, 3, 10, 0, 0)
	prev := models.Streak{UserID: 1, CurrentStreak: 5, LongestStreak: 9, LastActivityDate: &last}

	// 断档两天，连击归 1，最长连击保留
	got := AdvanceStreak(prev, date(2025, 3, 12, 8, 0))
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 9 {
		t.Errorf("LongestStreak = %d, want 9", got.LongestStreak)
	}
}

func TestAdvanceStreakClockRewind(t *testing.T) {
	last := date(2025, 3, 10, 0, 0)
	prev := models.Streak{UserID: 1, CurrentStreak: 3, LongestStreak: 3, LastActivityDate: &last}

	// 时钟回拨到昨天，不变也不报错
	got := AdvanceStreak(prev, date(2025, 3, 9, 12, 0))
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
	if !got.LastActivityDate.Equal(last) {
		t.Errorf("LastActivityDate = %v, want %v", got.LastActivityDate, last)
	}
}

func TestAdvanceStreakLateNightToEarlyMorning(t *testing.T) {
	// 23:50 活跃、次日 00:10 再活跃，按自然日算是连续两天
	last := date(2025, 3, 10, 0, 0)
	prev := models.Streak{UserID: 1, CurrentStreak: 1, LongestStreak: 1, LastActivityDate: &last}

	got := AdvanceStreak(prev, date(2025, 3, 11, 0, 10))
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
}
