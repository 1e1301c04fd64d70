package book

import (
	"context"
	"time"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义，infrastructure层实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书，不存在返回NotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询，不存在的ID不出现在结果中
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// Search 按条件过滤、排序、分页，返回当前页的图书ID（已排序）和过滤后的总数
	// 折扣和评分按asOf当天计算
	Search(ctx context.Context, filter Filter, asOf time.Time) ([]uint, int64, error)

	// Curated 返回推荐列表的图书ID（已排序）
	Curated(ctx context.Context, kind Curated, asOf time.Time, limit int) ([]uint, error)
}

// AuthorRepository 作者仓储
type AuthorRepository interface {
	Create(ctx context.Context, a *Author) error
	FindByID(ctx context.Context, id uint) (*Author, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Author, error)
	// List 按名称升序
	List(ctx context.Context) ([]*Author, error)
}

// CategoryRepository 分类仓储
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Category, error)
	// List 按名称升序
	List(ctx context.Context) ([]*Category, error)
}
