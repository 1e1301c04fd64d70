package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/discount"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建折扣仓储
func NewDiscountRepository(db *gorm.DB) discount.Repository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, d *discount.Discount) error {
	model := &DiscountModel{
		BookID:    d.BookID,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Price:     d.Price,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建折扣失败")
	}
	d.ID = model.ID
	return nil
}

func (r *discountRepository) ListByBook(ctx context.Context, bookID uint) ([]*discount.Discount, error) {
	var models []DiscountModel
	err := dbFrom(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("discount_start_date ASC").Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询折扣失败")
	}
	result := make([]*discount.Discount, len(models))
	for i := range models {
		result[i] = toDiscountEntity(&models[i])
	}
	return result, nil
}

func (r *discountRepository) ListByBooks(ctx context.Context, bookIDs []uint) (map[uint][]*discount.Discount, error) {
	result := make(map[uint][]*discount.Discount, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}
	var models []DiscountModel
	err := dbFrom(ctx, r.db).
		Where("book_id IN ?", bookIDs).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询折扣失败")
	}
	for i := range models {
		result[models[i].BookID] = append(result[models[i].BookID], toDiscountEntity(&models[i]))
	}
	return result, nil
}

// LockBook SELECT ... FOR UPDATE 锁定图书行
// 必须在事务中调用，否则锁在语句结束时就释放了
func (r *discountRepository) LockBook(ctx context.Context, bookID uint) error {
	var model BookModel
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&model, bookID).Error
	if err != nil {
		if isNotFound(err) {
			return book.NotFound(bookID)
		}
		return apperrors.Wrap(err, "锁定图书失败")
	}
	return nil
}

func toDiscountEntity(m *DiscountModel) *discount.Discount {
	d := &discount.Discount{
		ID:        m.ID,
		BookID:    m.BookID,
		StartDate: m.StartDate.UTC(),
		Price:     m.Price,
	}
	if m.EndDate != nil {
		end := m.EndDate.UTC()
		d.EndDate = &end
	}
	return d
}
