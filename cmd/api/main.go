package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LJTian/HeadlineHub/internal/api"
	"github.com/LJTian/HeadlineHub/internal/cache"
	"github.com/LJTian/HeadlineHub/internal/collector"
	"github.com/LJTian/HeadlineHub/internal/config"
	"github.com/LJTian/HeadlineHub/internal/logger"
	"github.com/LJTian/HeadlineHub/internal/processor"
	"github.com/LJTian/HeadlineHub/internal/scheduler"
	"github.com/LJTian/HeadlineHub/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 配置了 REDIS_ADDR 时使用 Redis，连接失败则退回进程内缓存
	var store cache.Cache = cache.NewMemoryCache()
	if cfg.RedisAddr != "" {
		rc, err := cache.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			lg.Warn("redis unavailable, using memory cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer func() { _ = rc.Close() }()
			store = rc
		}
	}

	engine := collector.NewEngine(collector.NewCollyFetcher(cfg.FetchTimeout, cfg.UserAgent), lg)
	svc := service.New(
		collector.DefaultRegistry(),
		engine,
		processor.NewSimpleProcessor(processor.Options{Dedupe: cfg.Dedupe}),
		store,
		cfg.CacheTTL,
		lg,
	)

	// 定时刷新：清空缓存后按默认选择（全部站点）重新抽取
	s, err := scheduler.New(cfg.CronSpec, func(ctx context.Context) error {
		if err := svc.Refresh(ctx); err != nil {
			return err
		}
		_, err := svc.Headlines(ctx, nil)
		return err
	}, 2*time.Minute, lg)
	if err != nil {
		lg.Error("init scheduler failed", "error", err)
		return
	}
	s.Start()
	defer s.Stop()

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(lg))
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(api.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}
	api.NewServer(svc).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		lg.Info("starting api server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server exit", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server shutdown", "error", err)
	}
	lg.Info("server stopped")
}
