package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 8
)

// Order 订单实体(聚合根)
// 1. Order和Items在同一事务中创建，不存在只有订单没有明细的状态
// 2. Amount是下单时各明细 单价×数量 之和，创建后不再变化
type Order struct {
	ID        uint
	UserID    uint
	OrderDate time.Time
	Amount    decimal.Decimal
	Items     []Item
}

// Item 订单明细
// Price是下单时的成交单价快照
type Item struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

// Subtotal 明细小计
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建订单并计算总金额
func NewOrder(userID uint, items []Item, at time.Time) *Order {
	amount := decimal.Zero
	for _, it := range items {
		amount = amount.Add(it.Subtotal())
	}
	return &Order{
		UserID:    userID,
		OrderDate: at.UTC(),
		Amount:    amount.Round(2),
		Items:     items,
	}
}

// Line 客户端提交的订单行
type Line struct {
	BookID       uint
	Quantity     int
	ClaimedPrice decimal.Decimal // 客户端看到的单价
}
