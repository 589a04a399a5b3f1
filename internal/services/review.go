package services

import (
	"errors"
	"fmt"
	"time"

	"perfopoints/internal/db"
	"perfopoints/internal/models"

	"gorm.io/gorm"
)

// ErrAlreadyReviewed 申请已是终态（approved/rejected 后不可再变更）
var ErrAlreadyReviewed = errors.New("该申请已被审核过")

// markReviewed 把申请行从 pending 条件翻转到终态。
// WHERE status = 'pending' 保证终态只进入一次：两个管理员同时点审核，
// 只有一个条件更新会命中
func markReviewed(tx *gorm.DB, model interface{}, requestID uint, adminID uint, status string) error {
	result := tx.Model(model).
		Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": adminID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyReviewed
	}
	return nil
}

// ApprovePointRequest 审核通过积分申请：发积分、发任务附带的钥匙、
// 推进连续打卡、写通知，全部一个事务。任何一步失败整体回滚，
// 不会出现"状态翻了但积分没发"的半截状态
func ApprovePointRequest(requestID uint, adminID uint) (*models.PointRequest, error) {
	var request models.PointRequest

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Task").Preload("User").First(&request, requestID).Error; err != nil {
			return err
		}

		if err := markReviewed(tx, &models.PointRequest{}, request.ID, adminID, models.RequestStatusApproved); err != nil {
			return err
		}
		request.Status = models.RequestStatusApproved
		request.ReviewedBy = &adminID

		// 发放任务积分
		action := fmt.Sprintf("%s：%s", ActionTaskApproved, request.Task.Title)
		if err := AddPointsTx(tx, request.UserID, request.Task.PointValue, action); err != nil {
			return err
		}

		// 发放任务附带的钥匙奖励
		var keyRewards []models.TaskKeyReward
		if err := tx.Where("task_id = ?", request.TaskID).Find(&keyRewards).Error; err != nil {
			return err
		}
		for _, kr := range keyRewards {
			if err := GrantKeysTx(tx, request.UserID, kr.KeyType, kr.Quantity); err != nil {
				return err
			}
		}

		// 推进连续打卡
		if err := TouchStreakTx(tx, request.UserID, time.Now()); err != nil {
			return err
		}

		notification := models.Notification{
			UserID:  request.UserID,
			ActorID: &adminID,
			Type:    models.NotificationTypeRequestApproved,
			Reason:  fmt.Sprintf("你完成「%s」的申请已通过，获得 %d 积分 🎉", request.Task.Title, request.Task.PointValue),
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	GetLeaderboardService().ScheduleRefresh()

	// 邮件通知（异步，不影响审核结果）
	GetMailService().SendRequestReviewedEmail(request.User.Email, request.Task.Title, true)

	return &request, nil
}

// RejectPointRequest 驳回积分申请：只翻状态 + 通知，无积分副作用
func RejectPointRequest(requestID uint, adminID uint, comment string) (*models.PointRequest, error) {
	var request models.PointRequest

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Task").Preload("User").First(&request, requestID).Error; err != nil {
			return err
		}

		if err := markReviewed(tx, &models.PointRequest{}, request.ID, adminID, models.RequestStatusRejected); err != nil {
			return err
		}
		request.Status = models.RequestStatusRejected
		request.ReviewedBy = &adminID

		reason := fmt.Sprintf("很抱歉，你完成「%s」的申请未通过审核。", request.Task.Title)
		if comment != "" {
			reason += "备注：" + comment
		}
		notification := models.Notification{
			UserID:  request.UserID,
			ActorID: &adminID,
			Type:    models.NotificationTypeRequestRejected,
			Reason:  reason,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	GetMailService().SendRequestReviewedEmail(request.User.Email, request.Task.Title, false)

	return &request, nil
}

// ReviewCustomRequest 审核自定义申请。与积分申请同样的终态规则，但无积分副作用
func ReviewCustomRequest(requestID uint, adminID uint, approve bool) (*models.CustomRequest, error) {
	var request models.CustomRequest

	status := models.RequestStatusRejected
	notifType := models.NotificationTypeRequestRejected
	text := "你的申请「%s」未通过审核。"
	if approve {
		status = models.RequestStatusApproved
		notifType = models.NotificationTypeRequestApproved
		text = "你的申请「%s」已通过，等待管理员安排 🎉"
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		if err := markReviewed(tx, &models.CustomRequest{}, request.ID, adminID, status); err != nil {
			return err
		}
		request.Status = status
		request.ReviewedBy = &adminID

		notification := models.Notification{
			UserID:  request.UserID,
			ActorID: &adminID,
			Type:    notifType,
			Reason:  fmt.Sprintf(text, request.Title),
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
