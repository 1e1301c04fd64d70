package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookworm/internal/domain/book"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
	"github.com/xiebiao/bookworm/pkg/money"
)

// Pricer 提供图书在指定日期的权威价格
// book.Service 实现了该接口
type Pricer interface {
	DetailAsOf(ctx context.Context, id uint, asOf time.Time) (*book.Summary, error)
}

// Mismatch 价格不一致的订单行
// Expected 是客户端提交的价格，Actual 是服务端计算的当前价格
type Mismatch struct {
	Book     *book.Summary
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

// MismatchError ErrPriceMismatch携带的明细
type MismatchError struct {
	Mismatches []Mismatch
	// NotFound 始终为空：图书不存在时Reconcile直接返回404，保留该字段只为响应里的not_found
	NotFound []uint
}

// Reconcile 用服务端价格核对客户端提交的订单行
//
// 所有行价格一致时返回待持久化的订单；任意一行不一致则整单拒绝，
// 返回ErrPriceMismatch（Details为*MismatchError）。
// 图书不存在时直接返回NotFound，不会生成部分订单。
func Reconcile(ctx context.Context, pricer Pricer, userID uint, lines []Line, asOf time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]Item, 0, len(lines))
	var mismatches []Mismatch
	for _, line := range lines {
		if line.Quantity < MinQuantity || line.Quantity > MaxQuantity {
			return nil, ErrInvalidQuantity
		}
		if line.ClaimedPrice.IsNegative() {
			return nil, ErrInvalidPrice
		}

		summary, err := pricer.DetailAsOf(ctx, line.BookID, asOf)
		if err != nil {
			return nil, err
		}

		actual := money.Round(summary.FinalPrice)
		claimed := money.Round(line.ClaimedPrice)
		if !money.Equal(actual, claimed) {
			mismatches = append(mismatches, Mismatch{Book: summary, Expected: claimed, Actual: actual})
			continue
		}
		items = append(items, Item{BookID: line.BookID, Quantity: line.Quantity, Price: actual})
	}

	if len(mismatches) > 0 {
		return nil, ErrPriceMismatch.WithDetails(&MismatchError{Mismatches: mismatches, NotFound: []uint{}})
	}
	return NewOrder(userID, items, asOf), nil
}

// MismatchesOf 从错误中取出价格不一致明细
func MismatchesOf(err error) (*MismatchError, bool) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || !errors.Is(appErr, ErrPriceMismatch) {
		return nil, false
	}
	details, ok := appErr.Details.(*MismatchError)
	return details, ok
}
