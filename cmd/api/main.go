package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/xiebiao/bookworm/docs"
	appauth "github.com/xiebiao/bookworm/internal/application/auth"
	appbook "github.com/xiebiao/bookworm/internal/application/book"
	"github.com/xiebiao/bookworm/internal/application/catalog"
	apporder "github.com/xiebiao/bookworm/internal/application/order"
	appreview "github.com/xiebiao/bookworm/internal/application/review"
	appuser "github.com/xiebiao/bookworm/internal/application/user"
	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/discount"
	"github.com/xiebiao/bookworm/internal/domain/review"
	"github.com/xiebiao/bookworm/internal/infrastructure/config"
	"github.com/xiebiao/bookworm/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookworm/internal/interface/http/handler"
	"github.com/xiebiao/bookworm/internal/interface/http/middleware"
	"github.com/xiebiao/bookworm/internal/interface/http/router"
	"github.com/xiebiao/bookworm/pkg/logger"
	"github.com/xiebiao/bookworm/pkg/tracing"
)

// @title           Bookworm API
// @version         1.0
// @description     在线书店后端：图书查询、折扣、评论、下单核价、JWT认证
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	closer, err := logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg); err != nil {
		logger.L().Error().Err(err).Msg("server exited with error")
		_ = closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	// 追踪是可选依赖，Collector不可用时不影响启动
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			logger.L().Warn().Err(err).Msg("tracing disabled")
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	srv, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info().Str("addr", srv.Addr).Str("mode", cfg.Server.Mode).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("启动服务失败: %w", err)
	case sig := <-quit:
		logger.L().Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("优雅关闭失败: %w", err)
	}
	logger.L().Info().Msg("server stopped")
	return nil
}

// buildServer 手动组装依赖（与wire.go中的InitializeServer对应）
// 依赖链: Repository ← Domain Service ← UseCase ← Handler ← Router
func buildServer(ctx context.Context, cfg *config.Config) (*http.Server, func(), error) {
	clk := provideClock()

	db, closeDB, err := provideDB(ctx, cfg, clk)
	if err != nil {
		return nil, nil, err
	}
	cache, closeCache, err := provideBookCache(ctx, cfg)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	publisher, closePublisher, err := provideEventPublisher(cfg)
	if err != nil {
		closeCache()
		closeDB()
		return nil, nil, err
	}
	cleanup := func() {
		closePublisher()
		closeCache()
		closeDB()
	}

	// 基础设施层
	txManager := mysql.NewTxManager(db)
	bookRepo := mysql.NewBookRepository(db)
	discountRepo := mysql.NewDiscountRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	jwtManager := provideJWTManager(cfg, clk)

	// 领域层
	bookService := book.NewService(
		bookRepo,
		mysql.NewAuthorRepository(db),
		mysql.NewCategoryRepository(db),
		discountRepo,
		reviewRepo,
		clk,
	)
	discountService := discount.NewService(discountRepo, bookService)
	reviewService := review.NewService(reviewRepo, bookService)
	userService := provideUserService(mysql.NewUserRepository(db))

	// 应用层 + 接口层
	tokens := appauth.NewTokenService(userService, mysql.NewRefreshTokenRepository(db), jwtManager, clk)
	handlers := router.Handlers{
		Auth: provideAuthHandler(tokens, cfg),
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewCurrentUserUseCase(userService),
		),
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(bookService),
			appbook.NewGetBookUseCase(bookService, cache, clk),
			appbook.NewCuratedBooksUseCase(bookService, cache, clk),
			appbook.NewCreateBookUseCase(bookService, cache, clk),
			catalog.NewDiscountsUseCase(txManager, discountService, cache, clk),
		),
		Review: handler.NewReviewHandler(
			appreview.NewListReviewsUseCase(reviewService),
			appreview.NewCreateReviewUseCase(reviewService, cache, clk),
		),
		Catalog: handler.NewCatalogHandler(
			catalog.NewAuthorsUseCase(bookService),
			catalog.NewCategoriesUseCase(bookService),
		),
		Order: handler.NewOrderHandler(
			apporder.NewPlaceOrderUseCase(txManager, bookService, orderRepo, publisher, clk),
			apporder.NewListOrdersUseCase(orderRepo),
			apporder.NewGetOrderUseCase(orderRepo),
		),
	}

	engine := provideEngine(cfg, handlers, middleware.NewAuthMiddleware(jwtManager), provideRouterOptions(cfg))
	return provideHTTPServer(cfg, engine), cleanup, nil
}
