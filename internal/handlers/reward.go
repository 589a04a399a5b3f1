package handlers

import (
	"errors"
	"net/http"

	"perfopoints/internal/db"
	"perfopoints/internal/models"
	"perfopoints/internal/services"
	"perfopoints/internal/utils"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct{}

func NewRewardHandler() *RewardHandler {
	return &RewardHandler{}
}

// List 奖励列表，附带"买得起/钥匙够不够"的预检标记。
// 标记只用于前端置灰按钮，真正兑换时服务端还会再校验一次
func (h *RewardHandler) List(c *gin.Context) {
	var rewards []models.Reward
	query := db.DB.Order("point_cost ASC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	query.Find(&rewards)

	user := CurrentUser(c)
	var inventory map[string]int
	if user != nil {
		inventory = services.KeyInventory(user.ID)
	}

	ids := make([]uint, 0, len(rewards))
	for _, r := range rewards {
		ids = append(ids, r.ID)
	}
	var requirements []models.RewardKeyRequirement
	if len(ids) > 0 {
		db.DB.Where("reward_id IN ?", ids).Find(&requirements)
	}
	byReward := make(map[uint][]models.RewardKeyRequirement)
	for _, req := range requirements {
		byReward[req.RewardID] = append(byReward[req.RewardID], req)
	}

	for i := range rewards {
		rewards[i].KeyRequirements = byReward[rewards[i].ID]
		rewards[i].DescriptionHTML = utils.RenderMarkdown(rewards[i].Description)
		if user != nil {
			rewards[i].CanAfford = user.Points >= rewards[i].PointCost
			rewards[i].HasKeys = services.HasRequiredKeys(inventory, rewards[i].KeyRequirements)
		}
	}

	OK(c, gin.H{"rewards": rewards})
}

// Redeem 兑换奖励。扣分、扣钥匙、兑换记录在一个事务里完成
func (h *RewardHandler) Redeem(c *gin.Context) {
	user := CurrentUser(c)
	rewardID := uint(utils.StringToInt(c.Param("id")))

	redemption, err := services.RedeemReward(user.ID, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientPoints):
			Fail(c, http.StatusUnprocessableEntity, "积分不足，无法兑换")
		case errors.Is(err, services.ErrInsufficientKeys):
			Fail(c, http.StatusUnprocessableEntity, "钥匙数量不足，无法兑换")
		default:
			Fail(c, http.StatusInternalServerError, "兑换失败，请稍后再试")
		}
		return
	}

	OK(c, gin.H{
		"message":    "兑换成功 🎉",
		"redemption": redemption,
	})
}

// MyRedemptions 我的兑换记录
func (h *RewardHandler) MyRedemptions(c *gin.Context) {
	user := CurrentUser(c)

	var redemptions []models.RewardRedemption
	db.DB.Preload("Reward").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&redemptions)

	OK(c, gin.H{"redemptions": redemptions})
}

type rewardForm struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	PointCost       int    `json:"point_cost" binding:"required"`
	Category        string `json:"category"`
	KeyRequirements []struct {
		KeyType  string `json:"key_type"`
		Quantity int    `json:"quantity"`
	} `json:"key_requirements"`
}

// Create 管理员创建奖励
func (h *RewardHandler) Create(c *gin.Context) {
	var form rewardForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}
	if form.PointCost <= 0 {
		Fail(c, http.StatusBadRequest, "兑换价格必须为正数")
		return
	}
	for _, kr := range form.KeyRequirements {
		if !models.IsValidKeyType(kr.KeyType) || kr.Quantity <= 0 {
			Fail(c, http.StatusBadRequest, "钥匙需求配置不合法")
			return
		}
	}

	admin := CurrentUser(c)
	reward := models.Reward{
		Title:       form.Title,
		Description: form.Description,
		PointCost:   form.PointCost,
		Category:    form.Category,
		KeyRequired: len(form.KeyRequirements) > 0,
		CreatedBy:   admin.ID,
	}
	if err := db.DB.Create(&reward).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "创建失败")
		return
	}

	for _, kr := range form.KeyRequirements {
		db.DB.Create(&models.RewardKeyRequirement{
			RewardID: reward.ID,
			KeyType:  kr.KeyType,
			Quantity: kr.Quantity,
		})
	}

	OK(c, gin.H{"reward": reward})
}

// Update 管理员更新奖励
func (h *RewardHandler) Update(c *gin.Context) {
	var reward models.Reward
	if err := db.DB.First(&reward, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "奖励不存在")
		return
	}

	var form rewardForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}
	if form.PointCost <= 0 {
		Fail(c, http.StatusBadRequest, "兑换价格必须为正数")
		return
	}

	updates := map[string]interface{}{
		"title":       form.Title,
		"description": form.Description,
		"point_cost":  form.PointCost,
		"category":    form.Category,
	}

	// 钥匙需求整体替换
	if form.KeyRequirements != nil {
		db.DB.Where("reward_id = ?", reward.ID).Delete(&models.RewardKeyRequirement{})
		for _, kr := range form.KeyRequirements {
			if models.IsValidKeyType(kr.KeyType) && kr.Quantity > 0 {
				db.DB.Create(&models.RewardKeyRequirement{
					RewardID: reward.ID,
					KeyType:  kr.KeyType,
					Quantity: kr.Quantity,
				})
			}
		}
		updates["key_required"] = len(form.KeyRequirements) > 0
	}

	if err := db.DB.Model(&reward).Updates(updates).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "更新失败")
		return
	}

	OK(c, gin.H{"reward": reward})
}

// Delete 管理员删除奖励
func (h *RewardHandler) Delete(c *gin.Context) {
	var reward models.Reward
	if err := db.DB.First(&reward, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "奖励不存在")
		return
	}

	db.DB.Where("reward_id = ?", reward.ID).Delete(&models.RewardKeyRequirement{})
	db.DB.Delete(&reward)

	OK(c, nil)
}
