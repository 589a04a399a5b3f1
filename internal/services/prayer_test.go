package services

import (
	"testing"
	"time"
)

func TestPrayerWindowsOrder(t *testing.T) {
	windows := PrayerWindows(date(2025, 3, 10, 12, 0))
	if len(windows) != 5 {
		t.Fatalf("len(windows) = %d, want 5", len(windows))
	}

	want := []string{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}
	for i, name := range want {
		if windows[i].Name != name {
			t.Errorf("windows[%d].Name = %s, want %s", i, windows[i].Name, name)
		}
	}

	// 只有 Isha 跨午夜，End 落在次日
	isha := windows[4]
	if !isha.WrapsDay {
		t.Error("Isha should wrap past midnight")
	}
	if !isha.End.Equal(date(2025, 3, 11, 4, 0)) {
		t.Errorf("Isha.End = %v, want next day 04:00", isha.End)
	}
}

func TestPrayerWindowByNameUnknown(t *testing.T) {
	if _, err := PrayerWindowByName(time.Now(), "tahajjud"); err != ErrUnknownPrayer {
		t.Errorf("err = %v, want ErrUnknownPrayer", err)
	}
}

func TestDhuhrIsActive(t *testing.T) {
	w, _ := PrayerWindowByName(date(2025, 3, 10, 0, 0), PrayerDhuhr)

	cases := []struct {
		now  time.Time
		want bool
	}{
		{date(2025, 3, 10, 11, 59), false}, // 未开始
		{date(2025, 3, 10, 12, 0), true},   // 起点含
		{date(2025, 3, 10, 14, 0), true},
		{date(2025, 3, 10, 15, 30), false}, // 终点不含
	}
	for _, c := range cases {
		if got := w.IsActive(c.now); got != c.want {
			t.Errorf("Dhuhr.IsActive(%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestIshaIsActiveAcrossMidnight(t *testing.T) {
	w, _ := PrayerWindowByName(date(2025, 3, 10, 0, 0), PrayerIsha)

	cases := []struct {
		now  time.Time
		want bool
	}{
		{date(2025, 3, 10, 23, 0), true},  // 当晚
		{date(2025, 3, 10, 20, 0), true},  // 起点含
		{date(2025, 3, 10, 2, 0), true},   // 前一晚的尾巴
		{date(2025, 3, 10, 3, 59), true},  // 尾巴最后一分钟
		{date(2025, 3, 10, 4, 0), false},  // 04:00 整点起归 Fajr
		{date(2025, 3, 10, 12, 0), false}, // 白天死区
		{date(2025, 3, 10, 19, 59), false},
	}
	for _, c := range cases {
		if got := w.IsActive(c.now); got != c.want {
			t.Errorf("Isha.IsActive(%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestIshaHasPassedOnlyInDeadZone(t *testing.T) {
	w, _ := PrayerWindowByName(date(2025, 3, 10, 0, 0), PrayerIsha)

	cases := []struct {
		now  time.Time
		want bool
	}{
		{date(2025, 3, 10, 4, 0), true},   // 死区开始
		{date(2025, 3, 10, 12, 0), true},  // 白天
		{date(2025, 3, 10, 19, 59), true}, // 当晚开始前
		{date(2025, 3, 10, 20, 0), false}, // 进行中
		{date(2025, 3, 10, 2, 0), false},  // 尾巴里不算已过
	}
	for _, c := range cases {
		if got := w.HasPassed(c.now); got != c.want {
			t.Errorf("Isha.HasPassed(%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestFajrHasPassed(t *testing.T) {
	w, _ := PrayerWindowByName(date(2025, 3, 10, 0, 0), PrayerFajr)

	if w.HasPassed(date(2025, 3, 10, 6, 29)) {
		t.Error("Fajr should not have passed at 06:29")
	}
	if !w.HasPassed(date(2025, 3, 10, 6, 30)) {
		t.Error("Fajr should have passed at 06:30")
	}
}
