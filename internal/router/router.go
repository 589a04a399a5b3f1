package router

import (
	"perfopoints/internal/handlers"
	"perfopoints/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	taskHandler := handlers.NewTaskHandler()
	rewardHandler := handlers.NewRewardHandler()
	requestHandler := handlers.NewRequestHandler()
	userHandler := handlers.NewUserHandler()
	keyHandler := handlers.NewKeyHandler()
	meterHandler := handlers.NewMeterHandler()
	prayerHandler := handlers.NewPrayerHandler()
	notificationHandler := handlers.NewNotificationHandler()
	imageHandler := handlers.NewImageHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.GET("/captcha", authHandler.Captcha)
	api.POST("/signup", authHandler.Register)
	api.POST("/activate", authHandler.Activate)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.POST("/forgot-password", authHandler.ForgotPassword)
	api.POST("/reset-password", authHandler.ResetPassword)

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		// 我的信息
		authorized.GET("/me", userHandler.Me)
		authorized.POST("/me/settings", userHandler.UpdateSettings)
		authorized.GET("/me/points", userHandler.PointLogs)
		authorized.GET("/me/streak", userHandler.Streak)
		authorized.GET("/me/achievements", userHandler.Achievements)
		authorized.GET("/me/keys", keyHandler.MyKeys)
		authorized.GET("/users/:id", userHandler.Profile)
		authorized.GET("/leaderboard", userHandler.Leaderboard)

		// 任务
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.Detail)

		// 积分申请
		authorized.POST("/tasks/:id/request", requestHandler.SubmitPointRequest)
		authorized.GET("/requests", requestHandler.MyPointRequests)
		authorized.POST("/custom-requests", requestHandler.SubmitCustomRequest)
		authorized.GET("/custom-requests", requestHandler.MyCustomRequests)

		// 奖励兑换
		authorized.GET("/rewards", rewardHandler.List)
		authorized.POST("/rewards/:id/redeem", rewardHandler.Redeem)
		authorized.GET("/redemptions", rewardHandler.MyRedemptions)

		// 进度条
		authorized.GET("/meter", meterHandler.Active)
		authorized.GET("/meters/:id/history", meterHandler.History)

		// 礼拜打卡
		authorized.GET("/prayers/today", prayerHandler.Today)
		authorized.POST("/prayers/:name/complete", prayerHandler.Complete)

		// 通知
		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		// 图片上传（任务凭证/头像）
		authorized.POST("/upload", imageHandler.Upload)
	}

	// 管理员路由 (Admin Routes)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		// 任务管理
		admin.POST("/tasks", taskHandler.Create)
		admin.PUT("/tasks/:id", taskHandler.Update)
		admin.POST("/tasks/:id/toggle", taskHandler.ToggleStatus)
		admin.DELETE("/tasks/:id", taskHandler.Delete)

		// 奖励管理
		admin.POST("/rewards", rewardHandler.Create)
		admin.PUT("/rewards/:id", rewardHandler.Update)
		admin.DELETE("/rewards/:id", rewardHandler.Delete)

		// 申请审核
		admin.GET("/requests", adminHandler.PointRequests)
		admin.POST("/requests/:id/approve", adminHandler.ApprovePointRequest)
		admin.POST("/requests/:id/reject", adminHandler.RejectPointRequest)
		admin.GET("/custom-requests", adminHandler.CustomRequests)
		admin.POST("/custom-requests/:id/review", adminHandler.ReviewCustomRequest)

		// 用户管理
		admin.GET("/users", adminHandler.Users)
		admin.POST("/users/:id/block", adminHandler.BlockUser)
		admin.POST("/users/:id/unblock", adminHandler.UnblockUser)
		admin.POST("/users/:id/role", adminHandler.SetRole)
		admin.POST("/users/:id/points", adminHandler.GrantPoints)

		// 兑换记录
		admin.GET("/redemptions", adminHandler.Redemptions)

		// 进度条管理
		admin.POST("/meters", adminHandler.CreateMeter)
		admin.POST("/meters/:id/adjust", adminHandler.AdjustMeter)
		admin.POST("/meters/:id/deactivate", adminHandler.DeactivateMeter)

		// 钥匙赠送
		admin.POST("/keys/gift", adminHandler.GiftKeys)
	}
}
