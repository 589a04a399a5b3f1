package handlers

import (
	"errors"
	"net/http"

	"perfopoints/internal/db"
	"perfopoints/internal/models"
	"perfopoints/internal/services"
	"perfopoints/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// ===== 用户管理 =====

// Users 用户列表
func (h *AdminHandler) Users(c *gin.Context) {
	var users []models.User
	db.DB.Order("created_at ASC").Find(&users)
	OK(c, gin.H{"users": users})
}

// BlockUser 封禁用户
func (h *AdminHandler) BlockUser(c *gin.Context) {
	admin := CurrentUser(c)
	userID := uint(utils.StringToInt(c.Param("id")))

	if userID == admin.ID {
		Fail(c, http.StatusBadRequest, "不能封禁自己")
		return
	}

	result := db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", models.UserStatusBlocked)
	if result.Error != nil || result.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "用户不存在")
		return
	}

	OK(c, nil)
}

// UnblockUser 解封用户
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	userID := uint(utils.StringToInt(c.Param("id")))

	result := db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", models.UserStatusNormal)
	if result.Error != nil || result.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "用户不存在")
		return
	}

	OK(c, nil)
}

type roleForm struct {
	Role string `json:"role" binding:"required"`
}

// SetRole 设置用户角色
func (h *AdminHandler) SetRole(c *gin.Context) {
	admin := CurrentUser(c)
	userID := uint(utils.StringToInt(c.Param("id")))

	var form roleForm
	if err := c.ShouldBindJSON(&form); err != nil || (form.Role != "user" && form.Role != "admin") {
		Fail(c, http.StatusBadRequest, "角色只能是 user 或 admin")
		return
	}
	if userID == admin.ID && form.Role != "admin" {
		Fail(c, http.StatusBadRequest, "不能取消自己的管理员权限")
		return
	}

	result := db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", form.Role)
	if result.Error != nil || result.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "用户不存在")
		return
	}

	OK(c, nil)
}

type grantPointsForm struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

// GrantPoints 手动发放/扣除积分。扣除不会把余额扣成负数
func (h *AdminHandler) GrantPoints(c *gin.Context) {
	userID := uint(utils.StringToInt(c.Param("id")))

	var form grantPointsForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Amount == 0 {
		Fail(c, http.StatusBadRequest, "积分数量不能为 0")
		return
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		Fail(c, http.StatusNotFound, "用户不存在")
		return
	}

	action := services.ActionAdminGrant
	if form.Reason != "" {
		action = form.Reason
	}

	var err error
	if form.Amount > 0 {
		err = services.AddPoints(userID, form.Amount, action)
	} else {
		if form.Reason == "" {
			action = services.ActionAdminDeduct
		}
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			return services.DeductPointsTx(tx, userID, -form.Amount, action)
		})
	}
	if err != nil {
		if errors.Is(err, services.ErrInsufficientPoints) {
			Fail(c, http.StatusUnprocessableEntity, "用户积分不足，不能扣除")
			return
		}
		Fail(c, http.StatusInternalServerError, "积分变更失败")
		return
	}

	services.GetLeaderboardService().ScheduleRefresh()
	OK(c, nil)
}

// ===== 积分申请审核 =====

// PointRequests 申请列表，默认只看待审核的
func (h *AdminHandler) PointRequests(c *gin.Context) {
	status := c.DefaultQuery("status", models.RequestStatusPending)

	var requests []models.PointRequest
	query := db.DB.Preload("User").Preload("Task").Order("created_at ASC")
	if status != "all" {
		query = query.Where("status = ?", status)
	}
	query.Limit(100).Find(&requests)

	OK(c, gin.H{"requests": requests})
}

// ApprovePointRequest 审核通过，发放积分和钥匙
func (h *AdminHandler) ApprovePointRequest(c *gin.Context) {
	admin := CurrentUser(c)
	requestID := uint(utils.StringToInt(c.Param("id")))

	request, err := services.ApprovePointRequest(requestID, admin.ID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyReviewed) {
			Fail(c, http.StatusConflict, "该申请已被审核过")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, http.StatusNotFound, "申请不存在")
			return
		}
		Fail(c, http.StatusInternalServerError, "审核失败")
		return
	}

	OK(c, gin.H{"request": request})
}

type rejectForm struct {
	Comment string `json:"comment"`
}

// RejectPointRequest 审核拒绝，不发积分
func (h *AdminHandler) RejectPointRequest(c *gin.Context) {
	admin := CurrentUser(c)
	requestID := uint(utils.StringToInt(c.Param("id")))

	var form rejectForm
	c.ShouldBindJSON(&form)

	request, err := services.RejectPointRequest(requestID, admin.ID, form.Comment)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyReviewed) {
			Fail(c, http.StatusConflict, "该申请已被审核过")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, http.StatusNotFound, "申请不存在")
			return
		}
		Fail(c, http.StatusInternalServerError, "审核失败")
		return
	}

	OK(c, gin.H{"request": request})
}

// ===== 自定义申请审核 =====

func (h *AdminHandler) CustomRequests(c *gin.Context) {
	status := c.DefaultQuery("status", models.RequestStatusPending)

	var requests []models.CustomRequest
	query := db.DB.Preload("User").Order("created_at ASC")
	if status != "all" {
		query = query.Where("status = ?", status)
	}
	query.Limit(100).Find(&requests)

	OK(c, gin.H{"requests": requests})
}

type customReviewForm struct {
	Approve bool `json:"approve"`
}

// ReviewCustomRequest 审核自定义申请，不产生积分变动
func (h *AdminHandler) ReviewCustomRequest(c *gin.Context) {
	admin := CurrentUser(c)
	requestID := uint(utils.StringToInt(c.Param("id")))

	var form customReviewForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	request, err := services.ReviewCustomRequest(requestID, admin.ID, form.Approve)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyReviewed) {
			Fail(c, http.StatusConflict, "该申请已被审核过")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, http.StatusNotFound, "申请不存在")
			return
		}
		Fail(c, http.StatusInternalServerError, "审核失败")
		return
	}

	OK(c, gin.H{"request": request})
}

// ===== 兑换记录 =====

// Redemptions 全部兑换记录，管理员线下发放奖励时查看
func (h *AdminHandler) Redemptions(c *gin.Context) {
	var redemptions []models.RewardRedemption
	db.DB.Preload("User").Preload("Reward").
		Order("created_at DESC").
		Limit(100).
		Find(&redemptions)

	OK(c, gin.H{"redemptions": redemptions})
}

// ===== 进度条管理 =====

type createMeterForm struct {
	UserID      uint   `json:"user_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Target      int    `json:"target" binding:"required"`
}

// CreateMeter 给用户开一个新进度条，旧的自动失效
func (h *AdminHandler) CreateMeter(c *gin.Context) {
	var form createMeterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	meter, err := services.CreateMeter(form.UserID, form.Type, form.Description, form.Target)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	OK(c, gin.H{"meter": meter})
}

type adjustMeterForm struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// AdjustMeter 调整进度，可加可减
func (h *AdminHandler) AdjustMeter(c *gin.Context) {
	meterID := uint(utils.StringToInt(c.Param("id")))

	var form adjustMeterForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Delta == 0 {
		Fail(c, http.StatusBadRequest, "调整量不能为 0")
		return
	}

	meter, change, err := services.AdjustMeter(meterID, form.Delta, form.Reason)
	if err != nil {
		if errors.Is(err, services.ErrMeterNotActive) {
			Fail(c, http.StatusUnprocessableEntity, "进度条已失效，不能调整")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, http.StatusNotFound, "进度条不存在")
			return
		}
		Fail(c, http.StatusInternalServerError, "调整失败")
		return
	}

	OK(c, gin.H{"meter": meter, "change": change})
}

// DeactivateMeter 手动关闭进度条
func (h *AdminHandler) DeactivateMeter(c *gin.Context) {
	meterID := uint(utils.StringToInt(c.Param("id")))

	if err := services.DeactivateMeter(meterID); err != nil {
		Fail(c, http.StatusNotFound, "进度条不存在或已失效")
		return
	}

	OK(c, nil)
}

// ===== 钥匙管理 =====

type giftKeysForm struct {
	UserID   uint   `json:"user_id" binding:"required"`
	KeyType  string `json:"key_type" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// GiftKeys 管理员直接赠送钥匙
func (h *AdminHandler) GiftKeys(c *gin.Context) {
	admin := CurrentUser(c)

	var form giftKeysForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Quantity <= 0 {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}
	if !models.IsValidKeyType(form.KeyType) {
		Fail(c, http.StatusBadRequest, "未知的钥匙类型")
		return
	}

	if err := services.GiftKeys(admin.ID, form.UserID, form.KeyType, form.Quantity); err != nil {
		Fail(c, http.StatusInternalServerError, "赠送失败")
		return
	}

	OK(c, nil)
}
