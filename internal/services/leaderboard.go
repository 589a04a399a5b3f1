package services

import (
	"log"
	"sync"
	"time"

	"perfopoints/internal/db"
	"perfopoints/internal/models"
	"perfopoints/internal/utils"
)

const (
	leaderboardCacheKey = "leaderboard:points"
	leaderboardSize     = 20
	leaderboardTTL      = 10 * time.Minute
)

// LeaderboardEntry 排行榜单行
type LeaderboardEntry struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Points    int    `json:"points"`
	LevelName string `json:"level_name"`
	LevelIcon string `json:"level_icon"`
}

// LeaderboardService 异步刷新积分排行榜缓存的服务。
// 积分变动频繁，每次变动立刻重算没有意义，用去重 + 定时批处理合并刷新
type LeaderboardService struct {
	signal  chan struct{}
	pending bool
	mu      sync.Mutex
}

var (
	leaderboardService *LeaderboardService
	leaderboardOnce    sync.Once
)

// GetLeaderboardService 获取单例排行榜服务
func GetLeaderboardService() *LeaderboardService {
	leaderboardOnce.Do(func() {
		leaderboardService = &LeaderboardService{
			signal: make(chan struct{}, 1),
		}
		// 启动后台 worker
		go leaderboardService.worker()
	})
	return leaderboardService
}

// ScheduleRefresh 请求刷新排行榜（异步）。
// 短时间内的多次积分变动合并为一次重算
func (s *LeaderboardService) ScheduleRefresh() {
	s.mu.Lock()
	if s.pending {
		// 已在队列中，跳过
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	// 非阻塞发送信号
	select {
	case s.signal <- struct{}{}:
	default:
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		log.Println("排行榜刷新信号丢弃（worker 正忙）")
	}
}

// worker 后台合并处理刷新请求
func (s *LeaderboardService) worker() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case <-s.signal:
			dirty = true
		case <-ticker.C:
			if dirty {
				s.refresh()
				dirty = false
				s.mu.Lock()
				s.pending = false
				s.mu.Unlock()
			}
		}
	}
}

// refresh 重算排行榜并写入缓存
func (s *LeaderboardService) refresh() {
	entries := s.compute()
	utils.GetCache().Set(leaderboardCacheKey, entries, leaderboardTTL)
}

// compute 查询积分前 N 的正常用户
func (s *LeaderboardService) compute() []LeaderboardEntry {
	var users []models.User
	if err := db.DB.Where("status = ?", models.UserStatusNormal).
		Order("points DESC").
		Limit(leaderboardSize).
		Find(&users).Error; err != nil {
		log.Printf("排行榜查询失败: %v", err)
		return nil
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		name, icon := utils.GetUserLevel(u.Points)
		entries = append(entries, LeaderboardEntry{
			UserID:    u.ID,
			Username:  u.Username,
			Avatar:    u.Avatar,
			Points:    u.Points,
			LevelName: name,
			LevelIcon: icon,
		})
	}
	return entries
}

// Leaderboard 读取排行榜，缓存未命中时同步计算一次并回填
func (s *LeaderboardService) Leaderboard() []LeaderboardEntry {
	if cached := utils.GetCache().Get(leaderboardCacheKey); cached != nil {
		if entries, ok := cached.([]LeaderboardEntry); ok {
			return entries
		}
	}

	entries := s.compute()
	utils.GetCache().Set(leaderboardCacheKey, entries, leaderboardTTL)
	return entries
}
