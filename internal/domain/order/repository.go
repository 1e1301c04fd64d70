package order

import (
	"context"
)

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单(包含订单明细)，需要在事务中调用
	Create(ctx context.Context, order *Order) error

	// FindByID 查询用户的订单(包含明细)，不属于该用户时返回ErrOrderNotFound
	FindByID(ctx context.Context, userID, id uint) (*Order, error)

	// ListByUser 分页查询用户订单，按下单时间倒序
	ListByUser(ctx context.Context, userID uint, page, size int) ([]*Order, int64, error)
}
