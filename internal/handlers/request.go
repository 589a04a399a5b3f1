package handlers

import (
	"net/http"
	"time"

	"perfopoints/internal/db"
	"perfopoints/internal/models"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct{}

func NewRequestHandler() *RequestHandler {
	return &RequestHandler{}
}

type pointRequestForm struct {
	TaskID   uint   `json:"task_id" binding:"required"`
	PhotoURL string `json:"photo_url"`
	Comment  string `json:"comment"`
}

// SubmitPointRequest 提交任务完成申请，进入待审核队列
func (h *RequestHandler) SubmitPointRequest(c *gin.Context) {
	user := CurrentUser(c)

	var form pointRequestForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	var task models.Task
	if err := db.DB.First(&task, form.TaskID).Error; err != nil {
		Fail(c, http.StatusNotFound, "任务不存在")
		return
	}
	if task.Status != models.TaskStatusActive {
		Fail(c, http.StatusUnprocessableEntity, "该任务已停用")
		return
	}
	if task.Deadline != nil && time.Now().After(*task.Deadline) {
		Fail(c, http.StatusUnprocessableEntity, "该任务已过截止时间")
		return
	}

	// 同一任务已有待审核申请时不允许重复提交
	var pending int64
	db.DB.Model(&models.PointRequest{}).
		Where("user_id = ? AND task_id = ? AND status = ?", user.ID, task.ID, models.RequestStatusPending).
		Count(&pending)
	if pending > 0 {
		Fail(c, http.StatusConflict, "该任务已有待审核的申请")
		return
	}

	// 不可重复的任务，审核通过过一次就不能再提交
	if !task.Recurring {
		var approved int64
		db.DB.Model(&models.PointRequest{}).
			Where("user_id = ? AND task_id = ? AND status = ?", user.ID, task.ID, models.RequestStatusApproved).
			Count(&approved)
		if approved > 0 {
			Fail(c, http.StatusConflict, "该任务不可重复完成")
			return
		}
	}

	request := models.PointRequest{
		UserID:   user.ID,
		TaskID:   task.ID,
		PhotoURL: form.PhotoURL,
		Comment:  form.Comment,
		Status:   models.RequestStatusPending,
	}
	if err := db.DB.Create(&request).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "提交失败")
		return
	}

	OK(c, gin.H{"request": request, "message": "已提交，等待管理员审核"})
}

// MyPointRequests 我的积分申请列表
func (h *RequestHandler) MyPointRequests(c *gin.Context) {
	user := CurrentUser(c)

	query := db.DB.Preload("Task").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.PointRequest
	query.Find(&requests)

	OK(c, gin.H{"requests": requests})
}

type customRequestForm struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// SubmitCustomRequest 提交自定义申请（想要的新任务/新奖励等）
func (h *RequestHandler) SubmitCustomRequest(c *gin.Context) {
	user := CurrentUser(c)

	var form customRequestForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	switch form.Type {
	case models.CustomRequestTypeTask, models.CustomRequestTypeReward, models.CustomRequestTypeOther:
	case "":
		form.Type = models.CustomRequestTypeOther
	default:
		Fail(c, http.StatusBadRequest, "未知的申请类型")
		return
	}

	request := models.CustomRequest{
		UserID:      user.ID,
		Title:       form.Title,
		Description: form.Description,
		Type:        form.Type,
		Status:      models.RequestStatusPending,
	}
	if err := db.DB.Create(&request).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "提交失败")
		return
	}

	OK(c, gin.H{"request": request, "message": "已提交，等待管理员审核"})
}

// MyCustomRequests 我的自定义申请列表
func (h *RequestHandler) MyCustomRequests(c *gin.Context) {
	user := CurrentUser(c)

	var requests []models.CustomRequest
	db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&requests)

	OK(c, gin.H{"requests": requests})
}
