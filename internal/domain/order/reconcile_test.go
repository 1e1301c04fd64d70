package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/discount"
	"github.com/xiebiao/bookworm/internal/domain/review"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

type fakePricer map[uint]*book.Summary

func (f fakePricer) DetailAsOf(_ context.Context, id uint, _ time.Time) (*book.Summary, error) {
	s, ok := f[id]
	if !ok {
		return nil, book.NotFound(id)
	}
	return s, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newPricer() fakePricer {
	// 1: 原价12.00，折后9.99；2: 原价5.00无折扣
	discounted := book.NewSummary(
		&book.Book{ID: 1, Title: "Discounted", Price: dec("12.00")},
		&discount.Discount{ID: 10, BookID: 1, Price: dec("9.99")},
		review.NewRating(0, 0),
	)
	plain := book.NewSummary(&book.Book{ID: 2, Title: "Plain", Price: dec("5.00")}, nil, review.NewRating(0, 0))
	return fakePricer{1: discounted, 2: plain}
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	pricer := newPricer()

	t.Run("价格一致时生成订单", func(t *testing.T) {
		o, err := Reconcile(ctx, pricer, 42, []Line{
			{BookID: 1, Quantity: 3, ClaimedPrice: dec("9.99")},
			{BookID: 2, Quantity: 1, ClaimedPrice: dec("5")},
		}, now)
		require.NoError(t, err)
		assert.Equal(t, uint(42), o.UserID)
		assert.Equal(t, now, o.OrderDate)
		require.Len(t, o.Items, 2)
		assert.Equal(t, "9.99", o.Items[0].Price.StringFixed(2))
		assert.Equal(t, "34.97", o.Amount.StringFixed(2))
	})

	t.Run("价格不一致时整单拒绝", func(t *testing.T) {
		o, err := Reconcile(ctx, pricer, 42, []Line{
			{BookID: 1, Quantity: 1, ClaimedPrice: dec("8.00")},
			{BookID: 2, Quantity: 1, ClaimedPrice: dec("5.00")},
		}, now)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, ErrPriceMismatch)

		details, ok := MismatchesOf(err)
		require.True(t, ok)
		require.Len(t, details.Mismatches, 1)
		m := details.Mismatches[0]
		assert.Equal(t, uint(1), m.Book.Book.ID)
		assert.Equal(t, "8.00", m.Expected.StringFixed(2), "expected是客户端提交的价格")
		assert.Equal(t, "9.99", m.Actual.StringFixed(2), "actual是服务端价格")
		assert.NotNil(t, details.NotFound, "序列化为[]而不是null")
		assert.Empty(t, details.NotFound)
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
	})

	t.Run("按两位小数比较", func(t *testing.T) {
		_, err := Reconcile(ctx, pricer, 1, []Line{{BookID: 1, Quantity: 1, ClaimedPrice: dec("9.9900001")}}, now)
		assert.NoError(t, err)

		// 浮点输入和多余的零不影响比较
		_, err = Reconcile(ctx, pricer, 1, []Line{
			{BookID: 1, Quantity: 1, ClaimedPrice: decimal.NewFromFloat(9.99)},
			{BookID: 2, Quantity: 1, ClaimedPrice: dec("5.000")},
		}, now)
		assert.NoError(t, err)

		_, err = Reconcile(ctx, pricer, 1, []Line{{BookID: 1, Quantity: 1, ClaimedPrice: dec("9.985")}}, now)
		assert.NoError(t, err, "9.985四舍五入为9.99")
	})

	t.Run("空订单", func(t *testing.T) {
		_, err := Reconcile(ctx, pricer, 1, nil, now)
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("数量超出范围", func(t *testing.T) {
		for _, q := range []int{0, 9} {
			_, err := Reconcile(ctx, pricer, 1, []Line{{BookID: 2, Quantity: q, ClaimedPrice: dec("5")}}, now)
			assert.ErrorIs(t, err, ErrInvalidQuantity)
		}
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := Reconcile(ctx, pricer, 1, []Line{
			{BookID: 2, Quantity: 1, ClaimedPrice: dec("5")},
			{BookID: 99, Quantity: 1, ClaimedPrice: dec("5")},
		}, now)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Equal(t, "Book not found with id 99", apperrors.GetAppError(err).Message)
		// 不存在的图书直接报错，不会出现在MismatchError.NotFound里
		_, ok := MismatchesOf(err)
		assert.False(t, ok)
	})
}

func TestNewOrderAmount(t *testing.T) {
	o := NewOrder(1, []Item{
		{BookID: 1, Quantity: 2, Price: dec("9.99")},
		{BookID: 2, Quantity: 8, Price: dec("0.10")},
	}, time.Now())
	assert.Equal(t, "20.78", o.Amount.StringFixed(2))
}
