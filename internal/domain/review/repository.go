package review

import (
	"context"
)

// SortDirection 评论排序方向（按评论时间）
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Filter 评论列表查询条件
type Filter struct {
	Page          int
	Size          int
	RatingStar    int // 0表示不过滤，1-5按星级精确匹配
	SortDirection SortDirection
}

// Repository 评论仓储接口
type Repository interface {
	Create(ctx context.Context, r *Review) error

	// List 分页查询一本书的评论，返回当前页和符合条件的总数
	List(ctx context.Context, bookID uint, filter Filter) ([]*Review, int64, error)

	// Stats 返回一本书的评论数和星级总和
	Stats(ctx context.Context, bookID uint) (count int64, starSum int64, err error)

	// StatsByBooks 批量统计
	StatsByBooks(ctx context.Context, bookIDs []uint) (map[uint]Rating, error)

	// StarCounts 各星级评论数
	StarCounts(ctx context.Context, bookID uint) (StarCounts, error)
}

// BookChecker 校验图书是否存在，不存在时返回NotFound
type BookChecker interface {
	Exists(ctx context.Context, bookID uint) error
}
