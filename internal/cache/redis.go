package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LJTian/HeadlineHub/internal/collector"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisCache 使用 Redis 保存 JSON 序列化的抽取结果，依赖 TTL 自然过期
type RedisCache struct {
	Redis *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{Redis: rdb}
}

// Dial 连接 Redis 并 ping 一次
func Dial(ctx context.Context, addr string) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisCache{Redis: rdb}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (collector.Result, bool, error) {
	bs, err := c.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return collector.Result{}, false, nil
	}
	if err != nil {
		return collector.Result{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var res collector.Result
	if err := json.Unmarshal(bs, &res); err != nil {
		return collector.Result{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return res, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, res collector.Result, ttl time.Duration) error {
	bs, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.Redis.Set(ctx, key, bs, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Clear 通过 SCAN 找出所有带前缀的 key 并删除
func (c *RedisCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.Redis.Scan(ctx, cursor, KeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.Redis.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (c *RedisCache) Close() error {
	return c.Redis.Close()
}
