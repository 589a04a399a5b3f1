package db

import (
	"log"
	"os"
	"perfopoints/internal/models"
	"perfopoints/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=perfopoints port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Reward{},
		&models.PointRequest{},
		&models.CustomRequest{},
		&models.PointLog{},
		&models.RewardRedemption{},
		// 钥匙相关模型
		&models.UserKey{},
		&models.TaskKeyReward{},
		&models.RewardKeyRequirement{},
		// 进度条相关模型
		&models.UserMeter{},
		&models.MeterHistory{},
		&models.Streak{},
		&models.PrayerLog{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed initial admin account
	seedAdmin()
}

// seedAdmin 首次启动时根据环境变量创建管理员账号
func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	// 检查是否已有管理员
	var count int64
	DB.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		log.Println("Admin already seeded, skipping")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Username:    "admin",
		Email:       email,
		Password:    hash,
		Role:        "admin",
		IsActivated: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to create admin user: %v", err)
		return
	}
	log.Println("Initial admin account created successfully")
}
