// Package catalog 作者、分类、折扣的管理用例
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/bookworm/internal/application/book"
	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/discount"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/tracing"
)

const tracerName = "bookworm/application/catalog"

// TxManager 事务管理（mysql.TxManager实现）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuthorsUseCase 作者查询与创建
type AuthorsUseCase struct {
	books book.Service
}

func NewAuthorsUseCase(books book.Service) *AuthorsUseCase {
	return &AuthorsUseCase{books: books}
}

func (uc *AuthorsUseCase) List(ctx context.Context) ([]*book.Author, error) {
	return uc.books.ListAuthors(ctx)
}

func (uc *AuthorsUseCase) Get(ctx context.Context, id uint) (*book.Author, error) {
	return uc.books.GetAuthor(ctx, id)
}

// Create 名称不能为空
func (uc *AuthorsUseCase) Create(ctx context.Context, name, bio string) (a *book.Author, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateAuthor")
	defer func() { tracing.End(span, err) }()

	a = &book.Author{Name: strings.TrimSpace(name), Bio: strings.TrimSpace(bio)}
	if err = uc.books.CreateAuthor(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// CategoriesUseCase 分类查询与创建
type CategoriesUseCase struct {
	books book.Service
}

func NewCategoriesUseCase(books book.Service) *CategoriesUseCase {
	return &CategoriesUseCase{books: books}
}

func (uc *CategoriesUseCase) List(ctx context.Context) ([]*book.Category, error) {
	return uc.books.ListCategories(ctx)
}

func (uc *CategoriesUseCase) Get(ctx context.Context, id uint) (*book.Category, error) {
	return uc.books.GetCategory(ctx, id)
}

func (uc *CategoriesUseCase) Create(ctx context.Context, name, description string) (c *book.Category, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateCategory")
	defer func() { tracing.End(span, err) }()

	c = &book.Category{Name: strings.TrimSpace(name), Description: strings.TrimSpace(description)}
	if err = uc.books.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DiscountService 折扣领域服务（discount.Service实现）
type DiscountService interface {
	ListByBook(ctx context.Context, bookID uint) ([]*discount.Discount, error)
	Create(ctx context.Context, d *discount.Discount) error
}

// DiscountsUseCase 折扣查询与创建
type DiscountsUseCase struct {
	tx        TxManager
	discounts DiscountService
	cache     appbook.Cache
	clock     clock.Clock
}

func NewDiscountsUseCase(tx TxManager, discounts DiscountService, cache appbook.Cache, clk clock.Clock) *DiscountsUseCase {
	return &DiscountsUseCase{tx: tx, discounts: discounts, cache: cache, clock: clk}
}

// List 图书的全部折扣（含已过期和未开始的）
func (uc *DiscountsUseCase) List(ctx context.Context, bookID uint) ([]*discount.Discount, error) {
	return uc.discounts.ListByBook(ctx, bookID)
}

// CreateDiscountRequest 创建折扣请求DTO
type CreateDiscountRequest struct {
	BookID    uint
	StartDate time.Time
	EndDate   *time.Time
	Price     decimal.Decimal
}

// Create 在事务中完成图书加锁、重叠检查和写入
// 提交后失效该书缓存，新折扣可能当天就生效
func (uc *DiscountsUseCase) Create(ctx context.Context, req CreateDiscountRequest) (d *discount.Discount, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateDiscount")
	defer func() { tracing.End(span, err) }()

	d = discount.NewDiscount(req.BookID, req.StartDate, req.EndDate, req.Price)
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		return uc.discounts.Create(txCtx, d)
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, d.BookID, clock.Today(uc.clock))

	logger.Ctx(ctx).Info().
		Uint("book_id", d.BookID).
		Uint("discount_id", d.ID).
		Str("price", d.Price.StringFixed(2)).
		Msg("discount created")
	return d, nil
}
