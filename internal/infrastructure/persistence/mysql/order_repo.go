package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookworm/internal/domain/order"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
	"github.com/xiebiao/bookworm/pkg/pagination"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(包含订单明细)
// GORM会在同一事务中插入orders和order_items
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, userID, id uint) (*order.Order, error) {
	var model OrderModel
	err := dbFrom(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// ListByUser 按下单时间倒序
func (r *orderRepository) ListByUser(ctx context.Context, userID uint, page, size int) ([]*order.Order, int64, error) {
	q := dbFrom(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计订单数量失败")
	}

	var models []OrderModel
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("order_date DESC").Order("id DESC").
		Offset(pagination.Offset(page, size)).
		Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemModel{
			BookID:   it.BookID,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return &OrderModel{
		ID:        o.ID,
		UserID:    o.UserID,
		OrderDate: o.OrderDate,
		Amount:    o.Amount,
		Items:     items,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = order.Item{
			ID:       it.ID,
			OrderID:  it.OrderID,
			BookID:   it.BookID,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return &order.Order{
		ID:        m.ID,
		UserID:    m.UserID,
		OrderDate: m.OrderDate.UTC(),
		Amount:    m.Amount,
		Items:     items,
	}
}
