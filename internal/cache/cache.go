package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/LJTian/HeadlineHub/internal/collector"
)

// 所有缓存键共用的前缀，Clear 按前缀扫描
const KeyPrefix = "headlines:extract:"

type Cache interface {
	Get(ctx context.Context, key string) (collector.Result, bool, error)
	Set(ctx context.Context, key string, res collector.Result, ttl time.Duration) error
	// 清空全部条目
	Clear(ctx context.Context) error
}

// Key 站点名去重排序后拼接，顺序和重复不影响结果
func Key(names []string) string {
	set := make(map[string]struct{}, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := set[n]; ok {
			continue
		}
		set[n] = struct{}{}
		uniq = append(uniq, n)
	}
	sort.Strings(uniq)
	return KeyPrefix + strings.Join(uniq, ",")
}
