package service

import (
	"context"
	"time"

	"github.com/LJTian/HeadlineHub/internal/cache"
	"github.com/LJTian/HeadlineHub/internal/collector"
	"github.com/LJTian/HeadlineHub/internal/logger"
	"github.com/LJTian/HeadlineHub/internal/processor"
)

// Extractor 由 *collector.Engine 实现
type Extractor interface {
	Extract(ctx context.Context, sources []collector.Source) collector.Result
}

type Service struct {
	registry  *collector.Registry
	engine    Extractor
	processor *processor.SimpleProcessor
	cache     cache.Cache
	ttl       time.Duration
	log       logger.Interface
}

// cache 为 nil 时不做缓存
func New(
	registry *collector.Registry,
	engine Extractor,
	p *processor.SimpleProcessor,
	c cache.Cache,
	ttl time.Duration,
	log logger.Interface,
) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		registry:  registry,
		engine:    engine,
		processor: p,
		cache:     c,
		ttl:       ttl,
		log:       log.With("component", "service"),
	}
}

func (s *Service) Registry() *collector.Registry {
	return s.registry
}

// Headlines 返回所选站点（为空则全部）的标题；唯一的错误是未知站点名，抓取失败记录在 Result.Failures
func (s *Service) Headlines(ctx context.Context, names []string) (collector.Result, error) {
	sources, err := s.registry.Select(names)
	if err != nil {
		return collector.Result{}, err
	}

	selected := make([]string, len(sources))
	for i, src := range sources {
		selected[i] = src.Name
	}
	key := cache.Key(selected)

	if s.cache != nil {
		res, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("cache get failed", "key", key, "error", err)
		} else if ok {
			s.log.Debug("cache hit", "key", key)
			return res, nil
		}
	}

	res := s.engine.Extract(ctx, sources)
	if s.processor != nil {
		res = s.processor.Process(res)
	}

	// 请求中途取消的结果含有 context canceled 失败，不写入缓存
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.log.Debug("skip cache set", "key", key, "error", ctxErr)
		return res, nil
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res, s.ttl); err != nil {
			s.log.Warn("cache set failed", "key", key, "error", err)
		}
	}
	return res, nil
}

// Refresh 清空整个缓存，而不只是某一组站点
func (s *Service) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("cache cleared")
	return nil
}
