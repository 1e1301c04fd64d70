//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 生成: wire gen ./cmd/api
// 生成的wire_gen.go与main.go中的buildServer等价，Provider都定义在providers.go

package main

import (
	"context"
	"net/http"

	"github.com/google/wire"

	appauth "github.com/xiebiao/bookworm/internal/application/auth"
	appbook "github.com/xiebiao/bookworm/internal/application/book"
	"github.com/xiebiao/bookworm/internal/application/catalog"
	apporder "github.com/xiebiao/bookworm/internal/application/order"
	appreview "github.com/xiebiao/bookworm/internal/application/review"
	appuser "github.com/xiebiao/bookworm/internal/application/user"
	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/discount"
	"github.com/xiebiao/bookworm/internal/domain/order"
	"github.com/xiebiao/bookworm/internal/domain/review"
	"github.com/xiebiao/bookworm/internal/infrastructure/config"
	"github.com/xiebiao/bookworm/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookworm/internal/interface/http/handler"
	"github.com/xiebiao/bookworm/internal/interface/http/middleware"
	"github.com/xiebiao/bookworm/internal/interface/http/router"
)

// infrastructureSet 时钟、数据库、缓存、MQ
var infrastructureSet = wire.NewSet(
	provideClock,
	provideDB,
	provideBookCache,
	provideEventPublisher,
	provideJWTManager,
)

// repositorySet 仓储和事务管理器
var repositorySet = wire.NewSet(
	mysql.NewTxManager,
	wire.Bind(new(catalog.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewAuthorRepository,
	mysql.NewCategoryRepository,
	mysql.NewDiscountRepository,
	mysql.NewReviewRepository,
	mysql.NewOrderRepository,
	mysql.NewRefreshTokenRepository,
)

// domainSet 领域服务
// book.Service同时充当订单核价、折扣校验、评论校验的图书查询方
var domainSet = wire.NewSet(
	book.NewService,
	wire.Bind(new(order.Pricer), new(book.Service)),
	wire.Bind(new(discount.BookPricer), new(book.Service)),
	wire.Bind(new(review.BookChecker), new(book.Service)),
	discount.NewService,
	wire.Bind(new(catalog.DiscountService), new(*discount.Service)),
	review.NewService,
	wire.Bind(new(appreview.Service), new(*review.Service)),
	provideUserService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appauth.NewTokenService,
	appuser.NewRegisterUseCase,
	appuser.NewCurrentUserUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCuratedBooksUseCase,
	appbook.NewCreateBookUseCase,
	appreview.NewListReviewsUseCase,
	appreview.NewCreateReviewUseCase,
	catalog.NewAuthorsUseCase,
	catalog.NewCategoriesUseCase,
	catalog.NewDiscountsUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewGetOrderUseCase,
)

// interfaceSet 处理器、中间件、路由
var interfaceSet = wire.NewSet(
	provideAuthHandler,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewReviewHandler,
	handler.NewCatalogHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	middleware.NewAuthMiddleware,
	provideRouterOptions,
	provideEngine,
	provideHTTPServer,
)

// InitializeServer 组装HTTP服务，cleanup按相反顺序释放数据库、Redis、MQ连接
func InitializeServer(ctx context.Context, cfg *config.Config) (*http.Server, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
