package services

import "testing"

func TestApplyMeterDeltaClamps(t *testing.T) {
	cases := []struct {
		name    string
		current int
		delta   int
		want    int
	}{
		{"正常增加", 30, 20, 50},
		{"超过上限截断到 100", 90, 25, 100},
		{"扣到负数截断到 0", 5, -10, 0},
		{"零变动", 50, 0, 50},
	}

	for _, c := range cases {
		got := ApplyMeterDelta(c.current, 80, c.delta, false)
		if got.NewPercentage != c.want {
			t.Errorf("%s: NewPercentage = %d, want %d", c.name, got.NewPercentage, c.want)
		}
		if got.OldPercentage != c.current {
			t.Errorf("%s: OldPercentage = %d, want %d", c.name, got.OldPercentage, c.current)
		}
	}
}

func TestApplyMeterDeltaUnlocksOnce(t *testing.T) {
	// 首次跨过目标线解锁
	got := ApplyMeterDelta(75, 80, 10, false)
	if !got.JustUnlocked {
		t.Error("crossing target should unlock the prize")
	}

	// 已解锁过则不再触发
	got = ApplyMeterDelta(85, 80, 5, true)
	if got.JustUnlocked {
		t.Error("prize must unlock at most once")
	}

	// 回落再涨回也不会二次解锁
	got = ApplyMeterDelta(70, 80, 15, true)
	if got.JustUnlocked {
		t.Error("re-crossing target after unlock should not unlock again")
	}
}

func TestApplyMeterDeltaExactTarget(t *testing.T) {
	// 正好落在目标线上也算达标
	got := ApplyMeterDelta(70, 80, 10, false)
	if !got.JustUnlocked {
		t.Error("reaching target exactly should unlock")
	}

	// 差一个百分点不达标
	got = ApplyMeterDelta(70, 80, 9, false)
	if got.JustUnlocked {
		t.Error("79/80 should not unlock")
	}
}
