package book

import (
	"context"
	"time"
)

// Cache 图书读缓存（redis.BookCache实现）
// 缓存失败只影响性能，不影响正确性，所以方法都不返回error
type Cache interface {
	GetDetail(ctx context.Context, id uint, day time.Time, dest interface{}) bool
	SetDetail(ctx context.Context, id uint, day time.Time, v interface{})
	GetCurated(ctx context.Context, kind string, day time.Time, dest interface{}) bool
	SetCurated(ctx context.Context, kind string, day time.Time, v interface{})

	// Invalidate 图书详情和推荐列表失效，bookID为0时只失效推荐列表
	Invalidate(ctx context.Context, bookID uint, day time.Time)
}

// NopCache 未启用Redis时使用
type NopCache struct{}

func (NopCache) GetDetail(context.Context, uint, time.Time, interface{}) bool { return false }
func (NopCache) SetDetail(context.Context, uint, time.Time, interface{}) {}
func (NopCache) GetCurated(context.Context, string, time.Time, interface{}) bool { return false }
func (NopCache) SetCurated(context.Context, string, time.Time, interface{}) {}
func (NopCache) Invalidate(context.Context, uint, time.Time) {}
