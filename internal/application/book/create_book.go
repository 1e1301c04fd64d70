package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/tracing"
)

// CreateBookUseCase 新增图书用例（管理员）
type CreateBookUseCase struct {
	books book.Service
	cache Cache
	clock clock.Clock
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(books book.Service, cache Cache, clk clock.Clock) *CreateBookUseCase {
	return &CreateBookUseCase{books: books, cache: cache, clock: clk}
}

// CreateBookRequest 新增图书请求DTO
type CreateBookRequest struct {
	Title      string
	Summary    string
	Price      decimal.Decimal
	CoverPhoto string
	CategoryID *uint
	AuthorID   *uint
}

// Execute 创建图书并返回完整详情
// 新书会出现在热门/推荐列表的末尾，所以要失效推荐列表缓存
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (summary *book.Summary, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() { tracing.End(span, err) }()

	b, err := book.NewBook(req.Title, req.Summary, req.Price, req.CoverPhoto, req.CategoryID, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if err = uc.books.CreateBook(ctx, b); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, 0, clock.Today(uc.clock))

	logger.Ctx(ctx).Info().Uint("book_id", b.ID).Str("title", b.Title).Msg("book created")
	return uc.books.GetBookByID(ctx, b.ID)
}
