// Package logger 基于zerolog的结构化日志
//
// 使用方式：
//
//	logger.Init(logger.Options{Level: "info", Format: "json"})
//	logger.Ctx(ctx).Info().Uint("order_id", id).Msg("order placed")
//
// Ctx会自动附加request_id和trace_id，便于把日志和追踪关联起来。
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Options 日志配置（由config.LogConfig转换而来）
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

type ctxKey struct{}

var (
	mu     sync.RWMutex
	global = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init 初始化全局日志，返回需要在退出时关闭的输出（文件输出时）
func Init(opts Options) (io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = io.NopCloser(nil)
	)
	switch strings.ToLower(opts.Output) {
	case "", "stdout":
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out, closer = f, f
	}

	if strings.ToLower(opts.Format) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if opts.EnableCaller {
		ctx = ctx.Caller()
	}

	mu.Lock()
	global = ctx.Logger()
	mu.Unlock()
	return closer, nil
}

// L 返回全局Logger
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := global
	return &l
}

// SetOutput 替换全局输出（测试时用于捕获日志）
func SetOutput(w io.Writer) {
	mu.Lock()
	global = global.Output(w)
	mu.Unlock()
}

// WithRequestID 把请求ID放入Context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID 从Context读取请求ID
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Ctx 返回附带request_id/trace_id的子Logger
func Ctx(ctx context.Context) *zerolog.Logger {
	l := L()
	if ctx == nil {
		return l
	}
	c := l.With()
	if id := RequestID(ctx); id != "" {
		c = c.Str("request_id", id)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		c = c.Str("trace_id", sc.TraceID().String())
	}
	child := c.Logger()
	return &child
}
