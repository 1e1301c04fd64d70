package review

import (
	"context"

	"github.com/xiebiao/bookworm/pkg/pagination"
)

// Service 评论领域服务（含评分聚合）
type Service struct {
	repo  Repository
	books BookChecker
}

// NewService 创建评论服务
func NewService(repo Repository, books BookChecker) *Service {
	return &Service{repo: repo, books: books}
}

// AggregateRating 计算图书的评论数和平均分
func (s *Service) AggregateRating(ctx context.Context, bookID uint) (Rating, error) {
	count, sum, err := s.repo.Stats(ctx, bookID)
	if err != nil {
		return Rating{}, err
	}
	return NewRating(count, sum), nil
}

// Page 评论分页结果
type Page struct {
	Items      []*Review
	Total      int64
	Page       int
	Size       int
	TotalPages int
	Rating     Rating
	StarCounts StarCounts
}

// List 分页查询评论
// page>1且没有数据时返回NotFound，第一页为空不算错误
func (s *Service) List(ctx context.Context, bookID uint, filter Filter) (*Page, error) {
	if err := s.books.Exists(ctx, bookID); err != nil {
		return nil, err
	}
	filter.Page, filter.Size = pagination.Normalize(filter.Page, filter.Size)
	if filter.SortDirection != SortAsc {
		filter.SortDirection = SortDesc
	}

	items, total, err := s.repo.List(ctx, bookID, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 && filter.Page > 1 {
		return nil, ErrPageNotFound.WithMessage("No reviews found for page %d", filter.Page)
	}

	rating, err := s.AggregateRating(ctx, bookID)
	if err != nil {
		return nil, err
	}
	stars, err := s.repo.StarCounts(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: pagination.TotalPages(total, filter.Size),
		Rating:     rating,
		StarCounts: stars,
	}, nil
}

// Create 创建评论
func (s *Service) Create(ctx context.Context, r *Review) error {
	if err := s.books.Exists(ctx, r.BookID); err != nil {
		return err
	}
	return s.repo.Create(ctx, r)
}
