package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	appauth "github.com/xiebiao/bookworm/internal/application/auth"
	appbook "github.com/xiebiao/bookworm/internal/application/book"
	apporder "github.com/xiebiao/bookworm/internal/application/order"
	"github.com/xiebiao/bookworm/internal/domain/user"
	"github.com/xiebiao/bookworm/internal/infrastructure/config"
	"github.com/xiebiao/bookworm/internal/infrastructure/mq"
	"github.com/xiebiao/bookworm/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookworm/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookworm/internal/interface/http/handler"
	"github.com/xiebiao/bookworm/internal/interface/http/middleware"
	"github.com/xiebiao/bookworm/internal/interface/http/router"
	"github.com/xiebiao/bookworm/pkg/circuitbreaker"
	"github.com/xiebiao/bookworm/pkg/clock"
	"github.com/xiebiao/bookworm/pkg/jwt"
	"github.com/xiebiao/bookworm/pkg/logger"
)

// 以下Provider同时供main.go手动组装和wire.go使用
// 需要释放资源的Provider返回cleanup函数（Wire约定）

func provideClock() clock.Clock {
	return clock.System
}

// provideDB 连接数据库，按配置写入演示数据
func provideDB(ctx context.Context, cfg *config.Config, clk clock.Clock) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if cfg.Database.Seed {
		if err := mysql.Seed(ctx, db, clk); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return db, cleanup, nil
}

// provideBookCache Redis未启用时退化为NopCache
// Redis访问经过熔断器，连续失败后直接走数据库
func provideBookCache(ctx context.Context, cfg *config.Config) (appbook.Cache, func(), error) {
	if !cfg.Redis.Enabled {
		logger.L().Info().Msg("redis disabled, book cache off")
		return appbook.NopCache{}, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	breaker := circuitbreaker.New("redis", circuitbreaker.Config{
		Timeout: 30 * time.Second,
	})
	cache := redis.NewBookCache(client, breaker, cfg.Redis.DetailTTL, cfg.Redis.CuratedTTL)
	return cache, func() { _ = client.Close() }, nil
}

// provideEventPublisher MQ未启用时只记录日志
func provideEventPublisher(cfg *config.Config) (apporder.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, func() {}, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		return nil, nil, err
	}
	return publisher, func() { _ = publisher.Close() }, nil
}

func provideJWTManager(cfg *config.Config, clk clock.Clock) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.Algorithm,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
		jwt.WithClock(clk),
	)
}

func provideUserService(repo user.Repository) user.Service {
	return user.NewService(repo)
}

func provideAuthHandler(tokens *appauth.TokenService, cfg *config.Config) *handler.AuthHandler {
	return handler.NewAuthHandler(tokens, cfg.JWT.CookieSecure)
}

func provideRouterOptions(cfg *config.Config) router.Options {
	opts := router.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		Swagger:      cfg.Server.Mode != "release",
		LoginLimiter: middleware.NewIPRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst),
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	return opts
}

func provideEngine(cfg *config.Config, h router.Handlers, auth *middleware.AuthMiddleware, opts router.Options) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
	return router.New(h, auth, opts)
}

func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
