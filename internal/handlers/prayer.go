package handlers

import (
	"errors"
	"net/http"
	"time"

	"perfopoints/internal/services"

	"github.com/gin-gonic/gin"
)

type PrayerHandler struct{}

func NewPrayerHandler() *PrayerHandler {
	return &PrayerHandler{}
}

// Today 今天的五个礼拜时段，带进行中/已过/已打卡状态
func (h *PrayerHandler) Today(c *gin.Context) {
	user := CurrentUser(c)
	now := time.Now()
	done := services.TodayPrayerLogs(user.ID, now)

	type prayerRow struct {
		services.PrayerWindow
		Active    bool `json:"active"`
		Passed    bool `json:"passed"`
		Completed bool `json:"completed"`
	}

	windows := services.PrayerWindows(now)
	prayers := make([]prayerRow, 0, len(windows))
	for _, w := range windows {
		prayers = append(prayers, prayerRow{
			PrayerWindow: w,
			Active:       w.IsActive(now),
			Passed:       w.HasPassed(now),
			Completed:    done[w.Name],
		})
	}

	OK(c, gin.H{"prayers": prayers})
}

// Complete 礼拜打卡。时段未开始会被拒绝
func (h *PrayerHandler) Complete(c *gin.Context) {
	user := CurrentUser(c)
	name := c.Param("name")

	entry, err := services.MarkPrayerCompleted(user.ID, name, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownPrayer):
			Fail(c, http.StatusBadRequest, "未知的礼拜名称")
		case errors.Is(err, services.ErrPrayerNotOpen):
			Fail(c, http.StatusUnprocessableEntity, "该礼拜时段尚未开始，不能打卡")
		default:
			// 唯一索引冲突等
			Fail(c, http.StatusConflict, "今天已经打过卡了")
		}
		return
	}

	OK(c, gin.H{"log": entry, "message": "打卡成功 🕌"})
}
