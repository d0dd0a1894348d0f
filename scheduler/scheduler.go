package scheduler

import (
	"context"
	"sync"
	"time"

	"profile_finder/config"
	"profile_finder/logger"
	"profile_finder/metrics"
	"profile_finder/repository"
)

// 将秒数转换为时间间隔
func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// SessionReaper 释放已清理会话的本地状态
type SessionReaper interface {
	Teardown(id string)
	Reap(ctx context.Context) ([]string, error)
}

// TaskStatus 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
	LastPurged  int
}

// Scheduler 会话清理调度器：定期删除空闲会话并取消其进行中的搜索
type Scheduler struct {
	repo          repository.SessionRepository
	reaper        SessionReaper
	idleTimeout   time.Duration
	checkInterval time.Duration
	now           func() time.Time

	mutex  sync.Mutex
	status TaskStatus
}

// NewScheduler 创建新的调度器
func NewScheduler(cfg *config.Config, repo repository.SessionRepository, reaper SessionReaper) *Scheduler {
	checkInterval := cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	idle := cfg.Session.IdleTimeoutMin
	if idle <= 0 {
		idle = 60
	}

	return &Scheduler{
		repo:          repo,
		reaper:        reaper,
		idleTimeout:   time.Duration(idle) * time.Minute,
		checkInterval: secondsToDuration(checkInterval),
		now:           time.Now,
		status: TaskStatus{
			Description: "清理空闲会话",
		},
	}
}

// Run 启动主循环，ctx取消时返回
func (s *Scheduler) Run(ctx context.Context) error {
	logger.Info("调度器已启动",
		"check_interval", s.checkInterval.String(),
		"idle_timeout", s.idleTimeout.String())

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	s.mutex.Lock()
	s.status.NextRun = s.now().Add(s.checkInterval)
	s.mutex.Unlock()

	for {
		select {
		case <-ctx.Done():
			logger.Info("调度器已停止")
			return nil
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce 执行一次清理，返回被删除和被回收的会话数
func (s *Scheduler) RunOnce(ctx context.Context) (purged, reaped int) {
	s.mutex.Lock()
	if s.status.IsRunning {
		s.mutex.Unlock()
		return 0, 0
	}
	s.status.IsRunning = true
	s.mutex.Unlock()

	now := s.now()
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		s.status.IsRunning = false
		s.status.LastRun = now
		s.status.NextRun = now.Add(s.checkInterval)
		s.status.LastPurged = purged
	}()

	ids, err := s.repo.PurgeIdle(ctx, now.Add(-s.idleTimeout))
	if err != nil {
		logger.Error("清理空闲会话失败", "error", err)
	}
	for _, id := range ids {
		s.reaper.Teardown(id)
	}
	purged = len(ids)
	metrics.SessionsPurged.Add(float64(purged))

	// 存储自身过期的会话（如Redis TTL）只能通过回收运行时发现
	reapedIDs, err := s.reaper.Reap(ctx)
	if err != nil {
		logger.Error("回收会话运行时失败", "error", err)
	}
	reaped = len(reapedIDs)

	if purged > 0 || reaped > 0 {
		logger.Info("任务执行完成", "task", s.status.Description, "purged", purged, "reaped", reaped)
	}
	return purged, reaped
}

// Status 任务状态快照
func (s *Scheduler) Status() TaskStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.status
}
