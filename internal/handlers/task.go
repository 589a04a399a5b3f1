package handlers

import (
	"net/http"
	"time"

	"perfopoints/internal/db"
	"perfopoints/internal/models"
	"perfopoints/internal/utils"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct{}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// List 任务列表。默认只返回生效中的任务，管理员可带 ?all=1 查看全部
func (h *TaskHandler) List(c *gin.Context) {
	query := db.DB.Order("created_at DESC")

	user := CurrentUser(c)
	if !(user != nil && user.IsAdmin() && c.Query("all") == "1") {
		query = query.Where("status = ?", models.TaskStatusActive)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var tasks []models.Task
	query.Find(&tasks)

	fillTaskExtras(tasks)
	OK(c, gin.H{"tasks": tasks})
}

// Detail 任务详情
func (h *TaskHandler) Detail(c *gin.Context) {
	var task models.Task
	if err := db.DB.First(&task, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "任务不存在")
		return
	}

	tasks := []models.Task{task}
	fillTaskExtras(tasks)
	OK(c, gin.H{"task": tasks[0]})
}

// fillTaskExtras 填充钥匙奖励和渲染后的描述
func fillTaskExtras(tasks []models.Task) {
	if len(tasks) == 0 {
		return
	}

	ids := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}

	var rewards []models.TaskKeyReward
	db.DB.Where("task_id IN ?", ids).Find(&rewards)

	byTask := make(map[uint][]models.TaskKeyReward)
	for _, r := range rewards {
		byTask[r.TaskID] = append(byTask[r.TaskID], r)
	}

	for i := range tasks {
		tasks[i].KeyRewards = byTask[tasks[i].ID]
		tasks[i].DescriptionHTML = utils.RenderMarkdown(tasks[i].Description)
	}
}

type taskForm struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	PointValue  int        `json:"point_value" binding:"required"`
	Category    string     `json:"category"`
	Recurring   bool       `json:"recurring"`
	Deadline    *time.Time `json:"deadline"`
	KeyRewards  []struct {
		KeyType  string `json:"key_type"`
		Quantity int    `json:"quantity"`
	} `json:"key_rewards"`
}

// Create 管理员创建任务
func (h *TaskHandler) Create(c *gin.Context) {
	var form taskForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}
	if form.PointValue <= 0 {
		Fail(c, http.StatusBadRequest, "积分值必须为正数")
		return
	}
	for _, kr := range form.KeyRewards {
		if !models.IsValidKeyType(kr.KeyType) || kr.Quantity <= 0 {
			Fail(c, http.StatusBadRequest, "钥匙奖励配置不合法")
			return
		}
	}

	admin := CurrentUser(c)
	task := models.Task{
		Title:       form.Title,
		Description: form.Description,
		PointValue:  form.PointValue,
		Category:    form.Category,
		Recurring:   form.Recurring,
		Deadline:    form.Deadline,
		Status:      models.TaskStatusActive,
		CreatedBy:   admin.ID,
	}
	if err := db.DB.Create(&task).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "创建失败")
		return
	}

	for _, kr := range form.KeyRewards {
		db.DB.Create(&models.TaskKeyReward{
			TaskID:   task.ID,
			KeyType:  kr.KeyType,
			Quantity: kr.Quantity,
		})
	}

	OK(c, gin.H{"task": task})
}

// Update 管理员更新任务
func (h *TaskHandler) Update(c *gin.Context) {
	var task models.Task
	if err := db.DB.First(&task, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "任务不存在")
		return
	}

	var form taskForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}
	if form.PointValue <= 0 {
		Fail(c, http.StatusBadRequest, "积分值必须为正数")
		return
	}

	updates := map[string]interface{}{
		"title":       form.Title,
		"description": form.Description,
		"point_value": form.PointValue,
		"category":    form.Category,
		"recurring":   form.Recurring,
		"deadline":    form.Deadline,
	}
	if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "更新失败")
		return
	}

	// 钥匙奖励整体替换
	if form.KeyRewards != nil {
		db.DB.Where("task_id = ?", task.ID).Delete(&models.TaskKeyReward{})
		for _, kr := range form.KeyRewards {
			if models.IsValidKeyType(kr.KeyType) && kr.Quantity > 0 {
				db.DB.Create(&models.TaskKeyReward{
					TaskID:   task.ID,
					KeyType:  kr.KeyType,
					Quantity: kr.Quantity,
				})
			}
		}
	}

	OK(c, gin.H{"task": task})
}

// ToggleStatus 管理员启用/停用任务
func (h *TaskHandler) ToggleStatus(c *gin.Context) {
	var task models.Task
	if err := db.DB.First(&task, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "任务不存在")
		return
	}

	status := models.TaskStatusActive
	if task.Status == models.TaskStatusActive {
		status = models.TaskStatusInactive
	}
	db.DB.Model(&task).Update("status", status)

	OK(c, gin.H{"status": status})
}

// Delete 管理员删除任务
func (h *TaskHandler) Delete(c *gin.Context) {
	var task models.Task
	if err := db.DB.First(&task, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "任务不存在")
		return
	}

	db.DB.Where("task_id = ?", task.ID).Delete(&models.TaskKeyReward{})
	db.DB.Delete(&task)

	OK(c, nil)
}
