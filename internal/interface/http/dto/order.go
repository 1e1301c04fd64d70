package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookworm/internal/domain/order"
)

// PlaceOrderRequest 下单请求
// price是客户端看到的单价，和服务端当前价格不一致时整单拒绝
type PlaceOrderRequest struct {
	Items []OrderLineRequest `json:"order_items" binding:"dive"`
}

type OrderLineRequest struct {
	BookID   uint            `json:"book_id" binding:"required,min=1" example:"1"`
	Quantity int             `json:"quantity" example:"2"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"14.99"`
}

// Lines 转换为领域订单行
func (r PlaceOrderRequest) Lines() []order.Line {
	lines := make([]order.Line, len(r.Items))
	for i, it := range r.Items {
		lines[i] = order.Line{BookID: it.BookID, Quantity: it.Quantity, ClaimedPrice: it.Price}
	}
	return lines
}

// OrderResponse 订单
type OrderResponse struct {
	ID        uint                `json:"id" example:"1"`
	UserID    uint                `json:"user_id" example:"2"`
	OrderDate time.Time           `json:"order_date" example:"2025-03-10T09:00:00Z"`
	Amount    string              `json:"order_amount" example:"29.98"`
	Items     []OrderItemResponse `json:"order_items"`
}

type OrderItemResponse struct {
	ID       uint   `json:"id" example:"1"`
	BookID   uint   `json:"book_id" example:"1"`
	Quantity int    `json:"quantity" example:"2"`
	Price    string `json:"price" example:"14.99"`
}

func NewOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{ID: it.ID, BookID: it.BookID, Quantity: it.Quantity, Price: Price(it.Price)}
	}
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		OrderDate: o.OrderDate,
		Amount:    Price(o.Amount),
		Items:     items,
	}
}

// MismatchResponse 价格不一致时的响应体
type MismatchResponse struct {
	Mismatches []MismatchItem `json:"mismatches"`
	NotFound   []uint         `json:"not_found"`
}

// MismatchItem 图书信息 + 客户端价格 + 当前价格
type MismatchItem struct {
	BookSummary
	ExpectedPrice string `json:"expected_price" example:"15.99"`
	ActualPrice   string `json:"actual_price" example:"14.99"`
}

func NewMismatchResponse(m *order.MismatchError) MismatchResponse {
	items := make([]MismatchItem, len(m.Mismatches))
	for i, mm := range m.Mismatches {
		items[i] = MismatchItem{
			BookSummary:   NewBookSummary(mm.Book),
			ExpectedPrice: Price(mm.Expected),
			ActualPrice:   Price(mm.Actual),
		}
	}
	notFound := m.NotFound
	if notFound == nil {
		notFound = []uint{}
	}
	return MismatchResponse{Mismatches: items, NotFound: notFound}
}
