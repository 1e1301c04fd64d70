package order

import (
	"time"
)

// RoutingKeyPlaced 下单成功事件的路由键
const RoutingKeyPlaced = "order.placed"

// PlacedEvent 下单成功事件（事务提交后发布）
type PlacedEvent struct {
	OrderID   uint        `json:"order_id"`
	UserID    uint        `json:"user_id"`
	Amount    string      `json:"order_amount"`
	OrderDate time.Time   `json:"order_date"`
	Items     []EventItem `json:"items"`
}

type EventItem struct {
	BookID   uint   `json:"book_id"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// NewPlacedEvent 由已持久化的订单生成事件
func NewPlacedEvent(o *Order) PlacedEvent {
	items := make([]EventItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = EventItem{BookID: it.BookID, Quantity: it.Quantity, Price: it.Price.StringFixed(2)}
	}
	return PlacedEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Amount:    o.Amount.StringFixed(2),
		OrderDate: o.OrderDate,
		Items:     items,
	}
}
