package services

// Achievement 成就定义与达成状态。成就不入库，
// 每次根据完成任务数和累计积分两个标量现场评估
type Achievement struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Achieved    bool   `json:"achieved"`
}

// 固定成就表：TaskCount/Points 是达成阈值，0 表示该维度不要求
var achievementTable = []struct {
	code        string
	name        string
	description string
	emoji       string
	taskCount   int
	points      int
}{
	{"first_task", "迈出第一步", "完成第一个任务", "🎉", 1, 0},
	{"task_10", "勤劳小蜜蜂", "累计完成 10 个任务", "🐝", 10, 0},
	{"task_50", "任务达人", "累计完成 50 个任务", "🚀", 50, 0},
	{"points_100", "百分选手", "累计获得 100 积分", "💯", 0, 100},
	{"points_500", "积分大户", "累计获得 500 积分", "💰", 0, 500},
	{"points_1000", "千分传奇", "累计获得 1000 积分", "👑", 0, 1000},
}

// EvaluateAchievements 评估全部成就。纯函数，结果不落库
func EvaluateAchievements(completedTasks, totalPoints int) []Achievement {
	result := make([]Achievement, 0, len(achievementTable))
	for _, a := range achievementTable {
		achieved := completedTasks >= a.taskCount && totalPoints >= a.points
		result = append(result, Achievement{
			Code:        a.code,
			Name:        a.name,
			Description: a.description,
			Emoji:       a.emoji,
			Achieved:    achieved,
		})
	}
	return result
}
