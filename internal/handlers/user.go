package handlers

import (
	"net/http"

	"perfopoints/internal/db"
	"perfopoints/internal/models"
	"perfopoints/internal/services"
	"perfopoints/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// countApprovedTasks 用户累计完成（审核通过）的任务数
func countApprovedTasks(userID uint) int64 {
	var count int64
	db.DB.Model(&models.PointRequest{}).
		Where("user_id = ? AND status = ?", userID, models.RequestStatusApproved).
		Count(&count)
	return count
}

// totalEarnedPoints 用户累计获得的积分（只算正向流水，扣除不抵消成就）
func totalEarnedPoints(userID uint) int64 {
	var total int64
	db.DB.Model(&models.PointLog{}).
		Where("user_id = ? AND amount > 0", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	return total
}

// Me 当前用户概览：余额、称号、统计、连续打卡
func (h *UserHandler) Me(c *gin.Context) {
	user := CurrentUser(c)

	levelName, levelIcon := utils.GetUserLevel(user.Points)
	streak := services.GetStreak(user.ID)

	OK(c, gin.H{
		"user":            user,
		"level_name":      levelName,
		"level_icon":      levelIcon,
		"days_since":      utils.GetDaysSinceJoined(user.CreatedAt),
		"completed_tasks": countApprovedTasks(user.ID),
		"streak":          streak,
	})
}

// Profile 查看其他用户主页 /api/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "用户不存在")
		return
	}

	levelName, levelIcon := utils.GetUserLevel(user.Points)
	OK(c, gin.H{
		"user":            user,
		"level_name":      levelName,
		"level_icon":      levelIcon,
		"days_since":      utils.GetDaysSinceJoined(user.CreatedAt),
		"completed_tasks": countApprovedTasks(user.ID),
	})
}

// PointLogs 积分明细
func (h *UserHandler) PointLogs(c *gin.Context) {
	user := CurrentUser(c)

	var logs []models.PointLog
	db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&logs)

	OK(c, gin.H{"logs": logs})
}

// Streak 我的连续打卡
func (h *UserHandler) Streak(c *gin.Context) {
	user := CurrentUser(c)
	OK(c, gin.H{"streak": services.GetStreak(user.ID)})
}

// Achievements 我的成就，按完成任务数和累计积分现场评估
func (h *UserHandler) Achievements(c *gin.Context) {
	user := CurrentUser(c)

	completed := int(countApprovedTasks(user.ID))
	earned := int(totalEarnedPoints(user.ID))
	achievements := services.EvaluateAchievements(completed, earned)

	OK(c, gin.H{
		"achievements":    achievements,
		"completed_tasks": completed,
		"earned_points":   earned,
	})
}

// Leaderboard 积分排行榜
func (h *UserHandler) Leaderboard(c *gin.Context) {
	OK(c, gin.H{"leaderboard": services.GetLeaderboardService().Leaderboard()})
}

type settingsForm struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateSettings 更新个人设置
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := CurrentUser(c)

	var form settingsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	updates := make(map[string]interface{})

	if form.Username != "" && form.Username != user.Username {
		updates["username"] = form.Username
	}

	if form.Email != "" && form.Email != user.Email {
		// 检查邮箱是否已被使用
		var existingUser models.User
		if err := db.DB.Where("email = ? AND id != ?", form.Email, user.ID).First(&existingUser).Error; err == nil {
			Fail(c, http.StatusConflict, "该邮箱已被使用")
			return
		}
		updates["email"] = form.Email
	}

	if form.Avatar != "" {
		updates["avatar"] = form.Avatar
	}

	// 如果要修改密码
	if form.OldPassword != "" && form.NewPassword != "" {
		if !utils.CheckPasswordHash(form.OldPassword, user.Password) {
			Fail(c, http.StatusBadRequest, "原密码错误")
			return
		}
		if len(form.NewPassword) < 6 {
			Fail(c, http.StatusBadRequest, "新密码至少6位")
			return
		}
		hash, err := utils.HashPassword(form.NewPassword)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "系统错误")
			return
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := db.DB.Model(user).Updates(updates).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "更新失败")
			return
		}
	}

	OK(c, gin.H{"user": user})
}
