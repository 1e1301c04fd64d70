package order

import (
	"context"

	"github.com/xiebiao/bookworm/internal/domain/order"
	"github.com/xiebiao/bookworm/pkg/pagination"
)

// ListOrdersUseCase 我的订单列表
type ListOrdersUseCase struct {
	orders order.Repository
}

func NewListOrdersUseCase(orders order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orders: orders}
}

// OrderPage 订单分页结果
type OrderPage struct {
	Items      []*order.Order
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// Execute 按下单时间倒序分页
func (uc *ListOrdersUseCase) Execute(ctx context.Context, userID uint, page, size int) (*OrderPage, error) {
	page, size = pagination.Normalize(page, size)
	items, total, err := uc.orders.ListByUser(ctx, userID, page, size)
	if err != nil {
		return nil, err
	}
	return &OrderPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: pagination.TotalPages(total, size),
	}, nil
}

// GetOrderUseCase 订单详情，只能查看自己的订单
type GetOrderUseCase struct {
	orders order.Repository
}

func NewGetOrderUseCase(orders order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orders: orders}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	return uc.orders.FindByID(ctx, userID, orderID)
}
