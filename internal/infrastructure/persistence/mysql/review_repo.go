package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookworm/internal/domain/review"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
	"github.com/xiebiao/bookworm/pkg/pagination"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:     rv.BookID,
		Title:      rv.Title,
		Details:    rv.Details,
		ReviewDate: rv.ReviewDate,
		RatingStar: rv.RatingStar,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建评论失败")
	}
	rv.ID = model.ID
	return nil
}

// List 按评论时间排序，时间相同时按id同方向排序
func (r *reviewRepository) List(ctx context.Context, bookID uint, f review.Filter) ([]*review.Review, int64, error) {
	q := dbFrom(ctx, r.db).Model(&ReviewModel{}).Where("book_id = ?", bookID)
	if f.RatingStar > 0 {
		q = q.Where("rating_star = ?", f.RatingStar)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计评论数量失败")
	}

	dir := "DESC"
	if f.SortDirection == review.SortAsc {
		dir = "ASC"
	}
	var models []ReviewModel
	err := q.Order("review_date " + dir).Order("id " + dir).
		Offset(pagination.Offset(f.Page, f.Size)).
		Limit(f.Size).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评论列表失败")
	}

	items := make([]*review.Review, len(models))
	for i := range models {
		items[i] = toReviewEntity(&models[i])
	}
	return items, total, nil
}

type starStat struct {
	BookID      uint
	RatingStar  int
	ReviewCount int64
	StarSum     int64
}

func (r *reviewRepository) Stats(ctx context.Context, bookID uint) (int64, int64, error) {
	var s starStat
	err := dbFrom(ctx, r.db).Model(&ReviewModel{}).
		Select("COUNT(*) AS review_count, COALESCE(SUM(rating_star), 0) AS star_sum").
		Where("book_id = ?", bookID).
		Scan(&s).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "统计评分失败")
	}
	return s.ReviewCount, s.StarSum, nil
}

func (r *reviewRepository) StatsByBooks(ctx context.Context, bookIDs []uint) (map[uint]review.Rating, error) {
	result := make(map[uint]review.Rating, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}
	var stats []starStat
	err := dbFrom(ctx, r.db).Model(&ReviewModel{}).
		Select("book_id, COUNT(*) AS review_count, SUM(rating_star) AS star_sum").
		Where("book_id IN ?", bookIDs).
		Group("book_id").
		Scan(&stats).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量统计评分失败")
	}
	for _, s := range stats {
		result[s.BookID] = review.NewRating(s.ReviewCount, s.StarSum)
	}
	return result, nil
}

func (r *reviewRepository) StarCounts(ctx context.Context, bookID uint) (review.StarCounts, error) {
	var counts review.StarCounts
	var stats []starStat
	err := dbFrom(ctx, r.db).Model(&ReviewModel{}).
		Select("rating_star, COUNT(*) AS review_count").
		Where("book_id = ?", bookID).
		Group("rating_star").
		Scan(&stats).Error
	if err != nil {
		return counts, apperrors.Wrap(err, "统计星级分布失败")
	}
	for _, s := range stats {
		if s.RatingStar >= 1 && s.RatingStar <= 5 {
			counts[s.RatingStar] = s.ReviewCount
		}
	}
	return counts, nil
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:         m.ID,
		BookID:     m.BookID,
		Title:      m.Title,
		Details:    m.Details,
		RatingStar: m.RatingStar,
		ReviewDate: m.ReviewDate.UTC(),
	}
}
