package utils

import "testing"

func TestGetUserLevel(t *testing.T) {
	cases := []struct {
		points int
		want   string
	}{
		{0, "新手上路"},
		{49, "新手上路"},
		{50, "小有成绩"},
		{199, "小有成绩"},
		{200, "积极分子"},
		{500, "劳动模范"},
		{999, "劳动模范"},
		{1000, "全家之光"},
		{5000, "全家之光"},
	}

	for _, c := range cases {
		name, icon := GetUserLevel(c.points)
		if name != c.want {
			t.Errorf("GetUserLevel(%d) = %s, want %s", c.points, name, c.want)
		}
		if icon == "" {
			t.Errorf("GetUserLevel(%d) returned empty icon", c.points)
		}
	}
}
