package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/LJTian/HeadlineHub/internal/logger"
	"github.com/robfig/cron/v3"
)

// WarmFunc 预热缓存的任务
type WarmFunc func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	warm    WarmFunc
	timeout time.Duration
	log     logger.Interface

	// 同一时间只跑一轮，避免 cron 与手动触发重叠
	mu sync.Mutex
}

func New(spec string, warm WarmFunc, timeout time.Duration, log logger.Interface) (*Scheduler, error) {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Scheduler{
		cron:    cron.New(),
		warm:    warm,
		timeout: timeout,
		log:     log.With("component", "scheduler"),
	}

	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	go s.runOnce()
}

// Stop 停止调度并等待正在运行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Cron 暴露底层 cron，方便追加其它定时任务
func (s *Scheduler) Cron() *cron.Cron {
	return s.cron
}

// RunOnce 对外暴露的单次执行入口，方便手动触发
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.log.Info("warm job start")
	if err := s.warm(ctx); err != nil {
		s.log.Error("warm job failed", "error", err)
		return
	}
	s.log.Info("warm job done", "took", time.Since(start))
}
