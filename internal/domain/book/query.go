package book

import (
	"strings"

	"github.com/xiebiao/bookworm/pkg/pagination"
)

// SortField 列表排序字段
type SortField string

const (
	SortOnSale     SortField = "on_sale"    // 优惠金额，次序按最终价格升序
	SortPopularity SortField = "popularity" // 评论数，次序按最终价格升序
	SortPrice      SortField = "price"      // 最终价格
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Filter 图书列表查询条件
type Filter struct {
	Page          int
	Size          int
	Search        string // 标题或简介模糊匹配
	CategoryID    *uint
	AuthorID      *uint
	RatingStar    int // 平均分 >= RatingStar，0表示不过滤；没有评论的书不会命中
	SortBy        SortField
	SortDirection SortDirection
}

// Normalize 填充默认值并校验
// 默认: page=1, size=10, sort_by=on_sale, sort_direction=desc
func (f Filter) Normalize() (Filter, error) {
	if f.Page == 0 {
		f.Page = pagination.DefaultPage
	}
	if f.Size == 0 {
		f.Size = pagination.DefaultSize
	}
	if f.Page < 1 || f.Size < 1 || f.Size > pagination.MaxSize {
		return f, ErrInvalidFilter.WithMessage("page must be >= 1 and size between 1 and %d", pagination.MaxSize)
	}
	if f.RatingStar < 0 || f.RatingStar > 5 {
		return f, ErrInvalidFilter.WithMessage("rating_star must be between 1 and 5")
	}

	f.SortBy = SortField(strings.ToLower(string(f.SortBy)))
	switch f.SortBy {
	case "":
		f.SortBy = SortOnSale
	case SortOnSale, SortPopularity, SortPrice:
	default:
		return f, ErrInvalidFilter.WithMessage("sort_by must be one of on_sale, popularity, price")
	}

	f.SortDirection = SortDirection(strings.ToLower(string(f.SortDirection)))
	switch f.SortDirection {
	case "":
		f.SortDirection = SortDesc
	case SortAsc, SortDesc:
	default:
		return f, ErrInvalidFilter.WithMessage("sort_direction must be asc or desc")
	}

	f.Search = strings.TrimSpace(f.Search)
	return f, nil
}

// Result 分页结果
type Result struct {
	Items      []*Summary
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// Curated 首页推荐列表
type Curated string

const (
	CuratedOnSale      Curated = "on_sale"     // 有生效折扣，优惠金额降序
	CuratedPopular     Curated = "popular"     // 评论数降序
	CuratedRecommended Curated = "recommended" // 平均分降序
)

// Limit 各推荐列表的固定长度
func (c Curated) Limit() int {
	if c == CuratedOnSale {
		return 10
	}
	return 8
}
