package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookworm/pkg/circuitbreaker"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/metrics"
)

// 缓存Key设计（日期参与Key，跨天后旧价格自然失效）：
//   - book:detail:{id}:{yyyy-mm-dd}
//   - book:curated:{kind}:{yyyy-mm-dd}
const (
	detailKeyFmt  = "book:detail:%d:%s"
	curatedKeyFmt = "book:curated:%s:%s"

	cacheDetail  = "book_detail"
	cacheCurated = "curated"
)

// CuratedKinds 写操作后需要失效的推荐列表
var CuratedKinds = []string{"on_sale", "popular", "recommended"}

// BookCache 图书详情和首页推荐列表的Cache-Aside缓存
// 设计说明：
// 1. 缓存是非关键依赖：所有错误只记录日志，调用方按未命中处理
// 2. 每次访问都经过熔断器，Redis不可用时直接降级到数据库
// 3. 评论、折扣、图书写入后删除相关Key
type BookCache struct {
	client     *redis.Client
	breaker    *circuitbreaker.CircuitBreaker
	detailTTL  time.Duration
	curatedTTL time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, breaker *circuitbreaker.CircuitBreaker, detailTTL, curatedTTL time.Duration) *BookCache {
	breaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		logger.L().Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
	})
	return &BookCache{
		client:     client,
		breaker:    breaker,
		detailTTL:  detailTTL,
		curatedTTL: curatedTTL,
	}
}

// GetDetail 读取图书详情，命中时反序列化到dest
func (c *BookCache) GetDetail(ctx context.Context, id uint, day time.Time, dest interface{}) bool {
	return c.get(ctx, cacheDetail, detailKey(id, day), dest)
}

// SetDetail 写入图书详情
func (c *BookCache) SetDetail(ctx context.Context, id uint, day time.Time, v interface{}) {
	c.set(ctx, detailKey(id, day), v, c.detailTTL)
}

// GetCurated 读取推荐列表
func (c *BookCache) GetCurated(ctx context.Context, kind string, day time.Time, dest interface{}) bool {
	return c.get(ctx, cacheCurated, curatedKey(kind, day), dest)
}

// SetCurated 写入推荐列表
func (c *BookCache) SetCurated(ctx context.Context, kind string, day time.Time, v interface{}) {
	c.set(ctx, curatedKey(kind, day), v, c.curatedTTL)
}

// Invalidate 删除图书详情和全部推荐列表
// bookID为0时只删除推荐列表（新建图书）
func (c *BookCache) Invalidate(ctx context.Context, bookID uint, day time.Time) {
	keys := make([]string, 0, len(CuratedKinds)+1)
	if bookID != 0 {
		keys = append(keys, detailKey(bookID, day))
	}
	for _, kind := range CuratedKinds {
		keys = append(keys, curatedKey(kind, day))
	}

	err := c.breaker.Execute(func() error {
		return c.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func (c *BookCache) get(ctx context.Context, cache, key string, dest interface{}) bool {
	var data []byte
	err := c.breaker.Execute(func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil // 未命中不算失败
		}
		data = b
		return err
	})
	if err != nil {
		metrics.CacheRequestsTotal.WithLabelValues(cache, "error").Inc()
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	if data == nil {
		metrics.CacheRequestsTotal.WithLabelValues(cache, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		metrics.CacheRequestsTotal.WithLabelValues(cache, "error").Inc()
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache entry corrupted")
		return false
	}
	metrics.CacheRequestsTotal.WithLabelValues(cache, "hit").Inc()
	return true
}

func (c *BookCache) set(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, key, data, ttl).Err()
	})
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func detailKey(id uint, day time.Time) string {
	return fmt.Sprintf(detailKeyFmt, id, day.Format(time.DateOnly))
}

func curatedKey(kind string, day time.Time) string {
	return fmt.Sprintf(curatedKeyFmt, kind, day.Format(time.DateOnly))
}
