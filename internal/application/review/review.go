// Package review 评论相关用例
package review

import (
	"context"

	appbook "github.com/xiebiao/bookworm/internal/application/book"
	"github.com/xiebiao/bookworm/internal/domain/review"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/tracing"
)

const tracerName = "bookworm/application/review"

// Service 评论领域服务（review.Service实现）
type Service interface {
	List(ctx context.Context, bookID uint, filter review.Filter) (*review.Page, error)
	Create(ctx context.Context, r *review.Review) error
}

// ListReviewsUseCase 评论列表用例
type ListReviewsUseCase struct {
	reviews Service
}

// NewListReviewsUseCase 创建评论列表用例
func NewListReviewsUseCase(reviews Service) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviews: reviews}
}

// ListReviewsRequest 评论列表请求DTO
type ListReviewsRequest struct {
	BookID        uint
	Page          int
	Size          int
	RatingStar    int
	SortDirection string
}

// Execute 分页查询评论，附带评分统计
func (uc *ListReviewsUseCase) Execute(ctx context.Context, req ListReviewsRequest) (page *review.Page, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListReviews")
	defer func() { tracing.End(span, err) }()

	if req.RatingStar < 0 || req.RatingStar > 5 {
		return nil, review.ErrInvalidRating
	}
	return uc.reviews.List(ctx, req.BookID, review.Filter{
		Page:          req.Page,
		Size:          req.Size,
		RatingStar:    req.RatingStar,
		SortDirection: review.SortDirection(req.SortDirection),
	})
}

// CreateReviewUseCase 发表评论用例
// 评论改变评分和评论数，写入后失效该书的详情缓存和推荐列表
type CreateReviewUseCase struct {
	reviews Service
	cache   appbook.Cache
	clock   clock.Clock
}

// NewCreateReviewUseCase 创建发表评论用例
func NewCreateReviewUseCase(reviews Service, cache appbook.Cache, clk clock.Clock) *CreateReviewUseCase {
	return &CreateReviewUseCase{reviews: reviews, cache: cache, clock: clk}
}

// CreateReviewRequest 发表评论请求DTO
type CreateReviewRequest struct {
	BookID     uint
	Title      string
	Details    string
	RatingStar int
}

// Execute 创建评论，评论时间取服务端当前时间
func (uc *CreateReviewUseCase) Execute(ctx context.Context, req CreateReviewRequest) (r *review.Review, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateReview")
	defer func() { tracing.End(span, err) }()

	now := uc.clock.Now()
	r, err = review.NewReview(req.BookID, req.Title, req.Details, req.RatingStar, now)
	if err != nil {
		return nil, err
	}
	if err = uc.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, r.BookID, clock.Date(now))

	logger.Ctx(ctx).Info().Uint("book_id", r.BookID).Int("rating_star", r.RatingStar).Msg("review created")
	return r, nil
}
