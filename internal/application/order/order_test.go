package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/order"
	"github.com/xiebiao/bookworm/internal/domain/review"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/metrics"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeTx struct{ rolledBack int }

func (tx *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		tx.rolledBack++
		return err
	}
	return nil
}

type fakePricer map[uint]string

func (p fakePricer) DetailAsOf(_ context.Context, id uint, _ time.Time) (*book.Summary, error) {
	price, ok := p[id]
	if !ok {
		return nil, book.NotFound(id)
	}
	b := &book.Book{ID: id, Title: "b", Price: decimal.RequireFromString(price)}
	return book.NewSummary(b, nil, review.NewRating(0, 0)), nil
}

type memOrders struct {
	orders []*order.Order
}

func (r *memOrders) Create(_ context.Context, o *order.Order) error {
	o.ID = uint(len(r.orders) + 1)
	r.orders = append(r.orders, o)
	return nil
}

func (r *memOrders) FindByID(_ context.Context, userID, id uint) (*order.Order, error) {
	for _, o := range r.orders {
		if o.ID == id && o.UserID == userID {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *memOrders) ListByUser(_ context.Context, userID uint, page, size int) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

type spyPublisher struct {
	events []order.PlacedEvent
	err    error
}

func (p *spyPublisher) PublishOrderPlaced(_ context.Context, e order.PlacedEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func line(bookID uint, qty int, price string) order.Line {
	return order.Line{BookID: bookID, Quantity: qty, ClaimedPrice: decimal.RequireFromString(price)}
}

func TestPlaceOrderUseCase(t *testing.T) {
	ctx := context.Background()
	pricer := fakePricer{1: "10.00", 2: "4.25"}

	t.Run("价格一致，下单成功并发布事件", func(t *testing.T) {
		orders := &memOrders{}
		pub := &spyPublisher{}
		uc := NewPlaceOrderUseCase(&fakeTx{}, pricer, orders, pub, clock.Fixed(now))
		before := testutil.ToFloat64(metrics.OrdersPlacedTotal)

		o, err := uc.Execute(ctx, PlaceOrderRequest{UserID: 7, Lines: []order.Line{line(1, 2, "10"), line(2, 1, "4.25")}})
		require.NoError(t, err)
		assert.Equal(t, "24.25", o.Amount.StringFixed(2))
		assert.Equal(t, now, o.OrderDate)
		require.Len(t, orders.orders, 1)
		require.Len(t, pub.events, 1)
		assert.Equal(t, o.ID, pub.events[0].OrderID)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.OrdersPlacedTotal))
	})

	t.Run("价格不一致整单拒绝", func(t *testing.T) {
		orders := &memOrders{}
		pub := &spyPublisher{}
		tx := &fakeTx{}
		uc := NewPlaceOrderUseCase(tx, pricer, orders, pub, clock.Fixed(now))
		before := testutil.ToFloat64(metrics.PriceMismatchItemsTotal)

		_, err := uc.Execute(ctx, PlaceOrderRequest{UserID: 7, Lines: []order.Line{line(1, 1, "9.99"), line(2, 1, "4.25")}})
		require.ErrorIs(t, err, order.ErrPriceMismatch)
		details, ok := order.MismatchesOf(err)
		require.True(t, ok)
		require.Len(t, details.Mismatches, 1)
		assert.Equal(t, "9.99", details.Mismatches[0].Expected.StringFixed(2))
		assert.Equal(t, "10.00", details.Mismatches[0].Actual.StringFixed(2))

		assert.Empty(t, orders.orders)
		assert.Empty(t, pub.events)
		assert.Equal(t, 1, tx.rolledBack)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.PriceMismatchItemsTotal))
	})

	t.Run("图书不存在", func(t *testing.T) {
		orders := &memOrders{}
		uc := NewPlaceOrderUseCase(&fakeTx{}, pricer, orders, &spyPublisher{}, clock.Fixed(now))
		before := testutil.ToFloat64(metrics.OrdersRejectedTotal.WithLabelValues("not_found"))

		_, err := uc.Execute(ctx, PlaceOrderRequest{UserID: 7, Lines: []order.Line{line(1, 1, "10"), line(99, 1, "1")}})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Empty(t, orders.orders)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.OrdersRejectedTotal.WithLabelValues("not_found")))
	})

	t.Run("空订单", func(t *testing.T) {
		uc := NewPlaceOrderUseCase(&fakeTx{}, pricer, &memOrders{}, &spyPublisher{}, clock.Fixed(now))
		_, err := uc.Execute(ctx, PlaceOrderRequest{UserID: 7})
		assert.ErrorIs(t, err, order.ErrEmptyOrder)
	})

	t.Run("事件发布失败不影响下单", func(t *testing.T) {
		orders := &memOrders{}
		pub := &spyPublisher{err: errors.New("broker down")}
		uc := NewPlaceOrderUseCase(&fakeTx{}, pricer, orders, pub, clock.Fixed(now))

		o, err := uc.Execute(ctx, PlaceOrderRequest{UserID: 7, Lines: []order.Line{line(2, 8, "4.25")}})
		require.NoError(t, err)
		assert.Equal(t, "34.00", o.Amount.StringFixed(2))
		assert.Len(t, orders.orders, 1)
	})
}

func TestQueryOrders(t *testing.T) {
	ctx := context.Background()
	orders := &memOrders{}
	_ = orders.Create(ctx, order.NewOrder(1, nil, now))
	_ = orders.Create(ctx, order.NewOrder(2, nil, now))

	page, err := NewListOrdersUseCase(orders).Execute(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 1, page.TotalPages)

	_, err = NewGetOrderUseCase(orders).Execute(ctx, 1, 2)
	assert.ErrorIs(t, err, order.ErrOrderNotFound, "不能查看别人的订单")
}
