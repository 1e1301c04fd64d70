package discount

import (
	"context"
	"time"
)

// Service 折扣领域服务
type Service struct {
	repo  Repository
	books BookPricer
}

// NewService 创建折扣服务
func NewService(repo Repository, books BookPricer) *Service {
	return &Service{repo: repo, books: books}
}

// ResolveActive 返回图书在asOf当天生效的折扣，没有则返回nil
// 图书不存在时返回NotFound
func (s *Service) ResolveActive(ctx context.Context, bookID uint, asOf time.Time) (*Discount, error) {
	if _, err := s.books.ListPrice(ctx, bookID); err != nil {
		return nil, err
	}
	discounts, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return Resolve(discounts, asOf), nil
}

// ListByBook 查询图书的全部折扣
func (s *Service) ListByBook(ctx context.Context, bookID uint) ([]*Discount, error) {
	if _, err := s.books.ListPrice(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.ListByBook(ctx, bookID)
}

// Create 创建折扣
// 业务规则:
// 1. 图书必须存在，折后价低于原价
// 2. 与同一本书已有的任何折扣区间都不能重叠（空结束日期视为正无穷）
//
// 调用方需要在事务中调用，LockBook保证并发创建时重叠检查有效
func (s *Service) Create(ctx context.Context, d *Discount) error {
	listPrice, err := s.books.ListPrice(ctx, d.BookID)
	if err != nil {
		return err
	}
	if err := d.Validate(listPrice); err != nil {
		return err
	}

	if err := s.repo.LockBook(ctx, d.BookID); err != nil {
		return err
	}
	existing, err := s.repo.ListByBook(ctx, d.BookID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if d.Overlaps(e) {
			return ErrOverlap.WithMessage("Discount period overlaps an existing discount for book %d", d.BookID)
		}
	}

	return s.repo.Create(ctx, d)
}
