package services

import "testing"

func achievedCodes(completedTasks, totalPoints int) map[string]bool {
	codes := make(map[string]bool)
	for _, a := range EvaluateAchievements(completedTasks, totalPoints) {
		if a.Achieved {
			codes[a.Code] = true
		}
	}
	return codes
}

func TestEvaluateAchievementsNewUser(t *testing.T) {
	if got := achievedCodes(0, 0); len(got) != 0 {
		t.Errorf("new user should have no achievements, got %v", got)
	}
}

func TestEvaluateAchievementsFirstTask(t *testing.T) {
	got := achievedCodes(1, 10)
	if !got["first_task"] {
		t.Error("first_task should be achieved after one task")
	}
	if got["task_10"] || got["points_100"] {
		t.Errorf("unexpected achievements: %v", got)
	}
}

func TestEvaluateAchievementsThresholds(t *testing.T) {
	// 阈值是闭区间下界：正好达到即达成
	got := achievedCodes(10, 100)
	for _, code := range []string{"first_task", "task_10", "points_100"} {
		if !got[code] {
			t.Errorf("%s should be achieved at 10 tasks / 100 points", code)
		}
	}
	if got["task_50"] || got["points_500"] {
		t.Errorf("unexpected achievements: %v", got)
	}
}

func TestEvaluateAchievementsAll(t *testing.T) {
	got := achievedCodes(50, 1000)
	if len(got) != len(EvaluateAchievements(0, 0)) {
		t.Errorf("expected all achievements, got %v", got)
	}
}

func TestEvaluateAchievementsListStable(t *testing.T) {
	// 无论达成与否，返回的成就列表始终是完整的固定表
	list := EvaluateAchievements(0, 0)
	if len(list) != 6 {
		t.Fatalf("len = %d, want 6", len(list))
	}
	if list[0].Code != "first_task" {
		t.Errorf("list[0].Code = %s, want first_task", list[0].Code)
	}
}
