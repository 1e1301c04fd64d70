// Package metrics 定义服务的Prometheus指标
//
// 指标在包加载时通过promauto注册到默认Registry，
// /metrics 端点由 promhttp.Handler() 暴露。
//
// 命名规范：
//   - 以 bookworm_ 为前缀
//   - Counter以 _total 结尾，耗时以 _seconds 结尾
//   - 标签只使用低基数取值（path使用路由模板而非真实URL）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookworm"

var (
	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板）、status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// OrdersPlacedTotal 成功下单数
	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders persisted",
		},
	)

	// OrdersRejectedTotal 被拒绝的下单请求
	// 标签：reason（empty/not_found/price_mismatch/error）
	OrdersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Total number of rejected order placements",
		},
		[]string{"reason"},
	)

	// PriceMismatchItemsTotal 价格不一致的订单行数
	PriceMismatchItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_mismatch_items_total",
			Help:      "Total number of order lines whose claimed price disagreed with the current price",
		},
	)

	// OrderPlacementDuration 下单耗时（含价格核对和事务提交）
	OrderPlacementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_placement_duration_seconds",
			Help:      "Order placement latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// TokenOperationsTotal Token相关操作
	// 标签：operation（login/refresh/logout/revoke_all）、result（success/failure/rejected）
	TokenOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_operations_total",
			Help:      "Total number of authentication token operations",
		},
		[]string{"operation", "result"},
	)

	// CacheRequestsTotal 缓存访问
	// 标签：cache（book_detail/curated）、result（hit/miss/error）
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Total number of cache lookups",
		},
		[]string{"cache", "result"},
	)

	// CircuitBreakerState 熔断器状态 0=CLOSED 1=OPEN 2=HALF_OPEN
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	// MessagesPublishedTotal 事件发布
	// 标签：routing_key、result（success/failure）
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "Total number of domain events published",
		},
		[]string{"routing_key", "result"},
	)
)
