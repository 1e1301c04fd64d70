package book

import (
	"context"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/tracing"
)

const tracerName = "bookworm/application/book"

// ListBooksUseCase 图书列表查询用例
// 列表结果依赖的维度太多（过滤×排序×分页），不做缓存
type ListBooksUseCase struct {
	books book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(books book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{books: books}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page          int
	Size          int
	Search        string
	CategoryID    *uint
	AuthorID      *uint
	RatingStar    int
	SortBy        string // on_sale | popularity | price
	SortDirection string // asc | desc
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (result *book.Result, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer func() { tracing.End(span, err) }()

	return uc.books.QueryBooks(ctx, book.Filter{
		Page:          req.Page,
		Size:          req.Size,
		Search:        req.Search,
		CategoryID:    req.CategoryID,
		AuthorID:      req.AuthorID,
		RatingStar:    req.RatingStar,
		SortBy:        book.SortField(req.SortBy),
		SortDirection: book.SortDirection(req.SortDirection),
	})
}

// GetBookUseCase 图书详情用例（Cache-Aside）
type GetBookUseCase struct {
	books book.Service
	cache Cache
	clock clock.Clock
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(books book.Service, cache Cache, clk clock.Clock) *GetBookUseCase {
	return &GetBookUseCase{books: books, cache: cache, clock: clk}
}

// Execute 先读缓存，未命中再查数据库并回填
// 缓存Key带日期，保证跨天后按新的日期重新计算折扣
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (summary *book.Summary, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	defer func() { tracing.End(span, err) }()

	today := clock.Today(uc.clock)
	var cached book.Summary
	if uc.cache.GetDetail(ctx, id, today, &cached) {
		return &cached, nil
	}

	summary, err = uc.books.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.SetDetail(ctx, id, today, summary)
	return summary, nil
}

// CuratedBooksUseCase 首页推荐列表用例（促销/热门/推荐）
type CuratedBooksUseCase struct {
	books book.Service
	cache Cache
	clock clock.Clock
}

// NewCuratedBooksUseCase 创建推荐列表用例
func NewCuratedBooksUseCase(books book.Service, cache Cache, clk clock.Clock) *CuratedBooksUseCase {
	return &CuratedBooksUseCase{books: books, cache: cache, clock: clk}
}

// Execute 返回指定类型的推荐列表
func (uc *CuratedBooksUseCase) Execute(ctx context.Context, kind book.Curated) (items []*book.Summary, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CuratedBooks")
	defer func() { tracing.End(span, err) }()

	today := clock.Today(uc.clock)
	var cached []*book.Summary
	if uc.cache.GetCurated(ctx, string(kind), today, &cached) {
		return cached, nil
	}

	switch kind {
	case book.CuratedOnSale:
		items, err = uc.books.GetOnSaleBooks(ctx)
	case book.CuratedPopular:
		items, err = uc.books.GetPopularBooks(ctx)
	case book.CuratedRecommended:
		items, err = uc.books.GetRecommendedBooks(ctx)
	default:
		return nil, book.ErrInvalidFilter
	}
	if err != nil {
		return nil, err
	}

	uc.cache.SetCurated(ctx, string(kind), today, items)
	logger.Ctx(ctx).Debug().Str("kind", string(kind)).Int("count", len(items)).Msg("curated list loaded")
	return items, nil
}
