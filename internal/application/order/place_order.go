// Package order 下单与订单查询用例
package order

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/order"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/metrics"
	"github.com/xiebiao/bookworm/pkg/tracing"
)

const tracerName = "bookworm/application/order"

// TxManager 事务管理（mysql.TxManager实现）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 订单事件发布（mq.Publisher / mq.NopPublisher实现）
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, e order.PlacedEvent) error
}

// PlaceOrderUseCase 下单用例
//
// 流程:
//  1. 按服务端当前价格逐行核对客户端提交的单价
//  2. 任意一行不一致整单拒绝，返回全部不一致的行
//  3. 全部一致时在同一事务中写入订单和明细
//  4. 提交后发布 order.placed 事件，发布失败只记日志
//
// 价格读取绕过缓存，直接查询数据库。
type PlaceOrderUseCase struct {
	tx        TxManager
	pricer    order.Pricer
	orders    order.Repository
	publisher EventPublisher
	clock     clock.Clock
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	tx TxManager,
	pricer order.Pricer,
	orders order.Repository,
	publisher EventPublisher,
	clk clock.Clock,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		tx:        tx,
		pricer:    pricer,
		orders:    orders,
		publisher: publisher,
		clock:     clk,
	}
}

// PlaceOrderRequest 下单请求DTO
type PlaceOrderRequest struct {
	UserID uint // 从JWT中提取
	Lines  []order.Line
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (o *order.Order, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder")
	defer func() { tracing.End(span, err) }()

	start := time.Now()
	defer func() { metrics.OrderPlacementDuration.Observe(time.Since(start).Seconds()) }()

	asOf := uc.clock.Now()
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		placed, err := order.Reconcile(txCtx, uc.pricer, req.UserID, req.Lines, asOf)
		if err != nil {
			return err
		}
		if err := uc.orders.Create(txCtx, placed); err != nil {
			return err
		}
		o = placed
		return nil
	})
	if err != nil {
		uc.reject(ctx, req.UserID, err)
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	logger.Ctx(ctx).Info().
		Uint("order_id", o.ID).
		Uint("user_id", o.UserID).
		Str("amount", o.Amount.StringFixed(2)).
		Int("items", len(o.Items)).
		Msg("order placed")

	if perr := uc.publisher.PublishOrderPlaced(ctx, order.NewPlacedEvent(o)); perr != nil {
		logger.Ctx(ctx).Error().Err(perr).Uint("order_id", o.ID).Msg("publish order.placed failed")
	}
	return o, nil
}

func (uc *PlaceOrderUseCase) reject(ctx context.Context, userID uint, err error) {
	reason := "error"
	switch {
	case errors.Is(err, order.ErrEmptyOrder):
		reason = "empty"
	case errors.Is(err, book.ErrBookNotFound):
		reason = "not_found"
	case errors.Is(err, order.ErrPriceMismatch):
		reason = "price_mismatch"
		if details, ok := order.MismatchesOf(err); ok {
			metrics.PriceMismatchItemsTotal.Add(float64(len(details.Mismatches)))
		}
	case errors.Is(err, order.ErrInvalidQuantity), errors.Is(err, order.ErrInvalidPrice):
		reason = "invalid"
	}
	metrics.OrdersRejectedTotal.WithLabelValues(reason).Inc()
	logger.Ctx(ctx).Warn().Err(err).Uint("user_id", userID).Str("reason", reason).Msg("order rejected")
}
