package book

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookworm/internal/domain/discount"
	"github.com/xiebiao/bookworm/internal/domain/review"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/pagination"
)

// Service 图书查询引擎 + 目录管理
// 设计说明:
// 1. 过滤/排序/分页在Repository中一次完成（SQL），只返回当前页的ID
// 2. 当前页再批量补全作者、分类、折扣和评分，调用方不需要再查询
// 3. "今天"来自注入的Clock，测试中可以固定
type Service interface {
	// QueryBooks 分页查询图书
	QueryBooks(ctx context.Context, filter Filter) (*Result, error)

	// GetBookByID 图书详情（按今天的折扣计算价格）
	GetBookByID(ctx context.Context, id uint) (*Summary, error)

	// DetailAsOf 图书详情（按指定日期计算价格，订单核对使用）
	DetailAsOf(ctx context.Context, id uint, asOf time.Time) (*Summary, error)

	// GetOnSaleBooks 优惠金额最高的10本（仅有生效折扣的书）
	GetOnSaleBooks(ctx context.Context) ([]*Summary, error)

	// GetPopularBooks 评论数最多的8本
	GetPopularBooks(ctx context.Context) ([]*Summary, error)

	// GetRecommendedBooks 平均分最高的8本
	GetRecommendedBooks(ctx context.Context) ([]*Summary, error)

	// CreateBook 创建图书，引用的作者/分类必须存在
	CreateBook(ctx context.Context, b *Book) error

	// ListPrice 图书原价，不存在返回NotFound
	ListPrice(ctx context.Context, id uint) (decimal.Decimal, error)

	// Exists 图书不存在返回NotFound
	Exists(ctx context.Context, id uint) error

	ListAuthors(ctx context.Context) ([]*Author, error)
	GetAuthor(ctx context.Context, id uint) (*Author, error)
	CreateAuthor(ctx context.Context, a *Author) error

	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}

type service struct {
	repo       Repository
	authors    AuthorRepository
	categories CategoryRepository
	discounts  discount.Repository
	reviews    review.Repository
	clock      clock.Clock
}

// NewService 创建图书领域服务
func NewService(
	repo Repository,
	authors AuthorRepository,
	categories CategoryRepository,
	discounts discount.Repository,
	reviews review.Repository,
	clk clock.Clock,
) Service {
	if clk == nil {
		clk = clock.System
	}
	return &service{
		repo:       repo,
		authors:    authors,
		categories: categories,
		discounts:  discounts,
		reviews:    reviews,
		clock:      clk,
	}
}

// QueryBooks 分页查询图书
// page>1且没有数据时返回NotFound，第一页为空不是错误
func (s *service) QueryBooks(ctx context.Context, filter Filter) (*Result, error) {
	f, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	asOf := clock.Today(s.clock)
	ids, total, err := s.repo.Search(ctx, f, asOf)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 && f.Page > 1 {
		return nil, ErrPageNotFound.WithMessage("No books found for page %d", f.Page)
	}

	items, err := s.hydrate(ctx, ids, asOf)
	if err != nil {
		return nil, err
	}

	return &Result{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Size:       f.Size,
		TotalPages: pagination.TotalPages(total, f.Size),
	}, nil
}

func (s *service) GetBookByID(ctx context.Context, id uint) (*Summary, error) {
	return s.DetailAsOf(ctx, id, s.clock.Now())
}

func (s *service) DetailAsOf(ctx context.Context, id uint, asOf time.Time) (*Summary, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	items, err := s.hydrate(ctx, []uint{id}, clock.Date(asOf))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, NotFound(id)
	}
	return items[0], nil
}

func (s *service) GetOnSaleBooks(ctx context.Context) ([]*Summary, error) {
	return s.curated(ctx, CuratedOnSale)
}

func (s *service) GetPopularBooks(ctx context.Context) ([]*Summary, error) {
	return s.curated(ctx, CuratedPopular)
}

func (s *service) GetRecommendedBooks(ctx context.Context) ([]*Summary, error) {
	return s.curated(ctx, CuratedRecommended)
}

func (s *service) curated(ctx context.Context, kind Curated) ([]*Summary, error) {
	asOf := clock.Today(s.clock)
	ids, err := s.repo.Curated(ctx, kind, asOf, kind.Limit())
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, ids, asOf)
}

// hydrate 按ids顺序组装Summary（批量查询，固定次数的往返）
func (s *service) hydrate(ctx context.Context, ids []uint, asOf time.Time) ([]*Summary, error) {
	if len(ids) == 0 {
		return []*Summary{}, nil
	}

	books, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	discounts, err := s.discounts.ListByBooks(ctx, ids)
	if err != nil {
		return nil, err
	}
	ratings, err := s.reviews.StatsByBooks(ctx, ids)
	if err != nil {
		return nil, err
	}

	var authorIDs, categoryIDs []uint
	for _, b := range books {
		if b.AuthorID != nil {
			authorIDs = append(authorIDs, *b.AuthorID)
		}
		if b.CategoryID != nil {
			categoryIDs = append(categoryIDs, *b.CategoryID)
		}
	}
	authors, err := s.authors.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	items := make([]*Summary, 0, len(ids))
	for _, id := range ids {
		b, ok := books[id]
		if !ok {
			continue
		}
		rating, ok := ratings[id]
		if !ok {
			rating = review.NewRating(0, 0)
		}
		summary := NewSummary(b, discount.Resolve(discounts[id], asOf), rating)
		if b.AuthorID != nil {
			summary.Author = authors[*b.AuthorID]
		}
		if b.CategoryID != nil {
			summary.Category = categories[*b.CategoryID]
		}
		items = append(items, summary)
	}
	return items, nil
}

func (s *service) CreateBook(ctx context.Context, b *Book) error {
	if b.AuthorID != nil {
		if _, err := s.GetAuthor(ctx, *b.AuthorID); err != nil {
			return err
		}
	}
	if b.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *b.CategoryID); err != nil {
			return err
		}
	}
	b.CreatedAt = s.clock.Now()
	return s.repo.Create(ctx, b)
}

func (s *service) ListPrice(ctx context.Context, id uint) (decimal.Decimal, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Price, nil
}

func (s *service) Exists(ctx context.Context, id uint) error {
	_, err := s.repo.FindByID(ctx, id)
	return err
}

func (s *service) ListAuthors(ctx context.Context) ([]*Author, error) {
	return s.authors.List(ctx)
}

func (s *service) GetAuthor(ctx context.Context, id uint) (*Author, error) {
	return s.authors.FindByID(ctx, id)
}

func (s *service) CreateAuthor(ctx context.Context, a *Author) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return ErrInvalidName
	}
	return s.authors.Create(ctx, a)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

func (s *service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *service) CreateCategory(ctx context.Context, c *Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrInvalidName
	}
	return s.categories.Create(ctx, c)
}
