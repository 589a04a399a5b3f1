package handlers

import (
	"net/http"

	"perfopoints/internal/db"
	"perfopoints/internal/models"
	"perfopoints/internal/services"
	"perfopoints/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MeterHandler struct{}

func NewMeterHandler() *MeterHandler {
	return &MeterHandler{}
}

// Active 我当前生效的进度条
func (h *MeterHandler) Active(c *gin.Context) {
	user := CurrentUser(c)

	meter, err := services.ActiveMeter(user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			OK(c, gin.H{"meter": nil})
			return
		}
		Fail(c, http.StatusInternalServerError, "查询失败")
		return
	}

	OK(c, gin.H{"meter": meter})
}

// History 进度条变动流水。只能看自己的进度条
func (h *MeterHandler) History(c *gin.Context) {
	user := CurrentUser(c)
	meterID := uint(utils.StringToInt(c.Param("id")))

	var meter models.UserMeter
	if err := db.DB.First(&meter, meterID).Error; err != nil {
		Fail(c, http.StatusNotFound, "进度条不存在")
		return
	}
	if meter.UserID != user.ID && !user.IsAdmin() {
		Fail(c, http.StatusForbidden, "无权限查看")
		return
	}

	history := services.MeterHistoryList(meterID, 100)
	OK(c, gin.H{"meter": meter, "history": history})
}
