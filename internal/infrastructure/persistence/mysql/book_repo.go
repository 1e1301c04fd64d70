package mysql

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookworm/internal/domain/book"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
	"github.com/xiebiao/bookworm/pkg/pagination"
)

// 列表查询的派生列
// ad: 当天生效折扣的最低价；rs: 评论统计
const (
	finalPriceExpr     = "COALESCE(ad.discount_price, b.book_price)"
	discountAmountExpr = "CASE WHEN ad.discount_price IS NULL THEN 0 ELSE ROUND(b.book_price - ad.discount_price, 2) END"
	reviewCountExpr    = "COALESCE(rs.review_count, 0)"
	avgRatingExpr      = "COALESCE(rs.avg_rating, 0)"
)

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储实例
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}
	b.ID = model.ID
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFrom(ctx, r.db).First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, book.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var models []BookModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}
	for i := range models {
		result[models[i].ID] = toBookEntity(&models[i])
	}
	return result, nil
}

// Search 过滤、计数、排序、分页一次在数据库完成
// 1. 先按条件统计总数
// 2. 再按排序键取当前页ID，最后用id升序保证次序稳定
func (r *bookRepository) Search(ctx context.Context, f book.Filter, asOf time.Time) ([]uint, int64, error) {
	db := dbFrom(ctx, r.db)
	q := r.listing(db, asOf)

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("(LOWER(b.book_title) LIKE ? OR LOWER(b.book_summary) LIKE ?)", like, like)
	}
	if f.CategoryID != nil {
		q = q.Where("b.category_id = ?", *f.CategoryID)
	}
	if f.AuthorID != nil {
		q = q.Where("b.author_id = ?", *f.AuthorID)
	}
	if f.RatingStar > 0 {
		// 没有评论的书平均分未定义，不参与评分过滤
		q = q.Where("rs.review_count > 0 AND rs.avg_rating >= ?", f.RatingStar)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计图书数量失败")
	}

	dir := "DESC"
	if f.SortDirection == book.SortAsc {
		dir = "ASC"
	}
	var order []string
	switch f.SortBy {
	case book.SortPopularity:
		order = []string{reviewCountExpr + " " + dir, finalPriceExpr + " ASC"}
	case book.SortPrice:
		order = []string{finalPriceExpr + " " + dir}
	default:
		order = []string{discountAmountExpr + " " + dir, finalPriceExpr + " ASC"}
	}

	var ids []uint
	err := applyOrder(q, order).
		Offset(pagination.Offset(f.Page, f.Size)).
		Limit(f.Size).
		Pluck("b.id", &ids).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}
	return ids, total, nil
}

// Curated 首页推荐列表
func (r *bookRepository) Curated(ctx context.Context, kind book.Curated, asOf time.Time, limit int) ([]uint, error) {
	q := r.listing(dbFrom(ctx, r.db), asOf)

	var order []string
	switch kind {
	case book.CuratedOnSale:
		q = q.Where("ad.discount_price IS NOT NULL")
		order = []string{discountAmountExpr + " DESC", finalPriceExpr + " ASC"}
	case book.CuratedPopular:
		order = []string{reviewCountExpr + " DESC", finalPriceExpr + " ASC"}
	case book.CuratedRecommended:
		order = []string{avgRatingExpr + " DESC", finalPriceExpr + " ASC"}
	default:
		return nil, book.ErrInvalidFilter
	}

	var ids []uint
	if err := applyOrder(q, order).Limit(limit).Pluck("b.id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询推荐图书失败")
	}
	return ids, nil
}

// listing 图书 LEFT JOIN 当天生效折扣最低价 LEFT JOIN 评论统计
func (r *bookRepository) listing(db *gorm.DB, asOf time.Time) *gorm.DB {
	active := db.Model(&DiscountModel{}).
		Select("book_id, MIN(discount_price) AS discount_price").
		Where("discount_start_date <= ?", asOf).
		Where("(discount_end_date IS NULL OR discount_end_date > ?)", asOf).
		Group("book_id")

	stats := db.Model(&ReviewModel{}).
		Select("book_id, COUNT(*) AS review_count, ROUND(AVG(rating_star), 2) AS avg_rating").
		Group("book_id")

	return db.Table("books AS b").
		Joins("LEFT JOIN (?) AS ad ON ad.book_id = b.id", active).
		Joins("LEFT JOIN (?) AS rs ON rs.book_id = b.id", stats)
}

func applyOrder(q *gorm.DB, order []string) *gorm.DB {
	for _, o := range order {
		q = q.Order(o)
	}
	return q.Order("b.id ASC")
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:         b.ID,
		Title:      b.Title,
		Summary:    b.Summary,
		Price:      b.Price,
		CoverPhoto: b.CoverPhoto,
		CategoryID: b.CategoryID,
		AuthorID:   b.AuthorID,
		CreatedAt:  b.CreatedAt,
	}
}

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:         model.ID,
		Title:      model.Title,
		Summary:    model.Summary,
		Price:      model.Price,
		CoverPhoto: model.CoverPhoto,
		CategoryID: model.CategoryID,
		AuthorID:   model.AuthorID,
		CreatedAt:  model.CreatedAt,
	}
}
