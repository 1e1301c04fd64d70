// Package router 注册HTTP路由
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookworm/internal/interface/http/handler"
	"github.com/xiebiao/bookworm/internal/interface/http/middleware"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Book    *handler.BookHandler
	Review  *handler.ReviewHandler
	Catalog *handler.CatalogHandler
	Order   *handler.OrderHandler
}

// Options 路由可选项
type Options struct {
	CORSOrigins  []string
	MetricsPath  string // 为空时不暴露/metrics
	Swagger      bool
	LoginLimiter *middleware.IPRateLimiter // 为空时登录不限流
}

// New 创建Gin引擎并注册全部路由
//
// 公开接口: 图书、评论、作者、分类的查询，注册、登录、刷新、登出
// 需要登录: 下单、订单查询、当前用户、吊销全部Token
// 需要管理员: 新增图书、折扣、作者、分类
func New(h Handlers, auth *middleware.AuthMiddleware, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics(), middleware.CORS(opts.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	requireAdmin := []gin.HandlerFunc{requireAuth, auth.RequireAdmin()}

	authGroup := r.Group("/auth")
	{
		login := []gin.HandlerFunc{h.Auth.Login}
		if opts.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{opts.LoginLimiter.Middleware()}, login...)
		}
		authGroup.POST("/login", login...)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.POST("/revoke-all", requireAuth, h.Auth.RevokeAll)
	}

	users := r.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.GET("/me", requireAuth, h.User.Me)
	}

	books := r.Group("/books")
	{
		books.GET("", h.Book.ListBooks)
		books.GET("/on-sale", h.Book.OnSale)
		books.GET("/popular", h.Book.Popular)
		books.GET("/recommended", h.Book.Recommended)
		books.GET("/:id", h.Book.GetBook)
		books.POST("", append(requireAdmin, h.Book.CreateBook)...)

		books.GET("/:id/reviews", h.Review.ListReviews)
		books.POST("/:id/reviews", h.Review.CreateReview)

		books.GET("/:id/discounts", h.Book.ListDiscounts)
		books.POST("/:id/discounts", append(requireAdmin, h.Book.CreateDiscount)...)
	}

	authors := r.Group("/authors")
	{
		authors.GET("", h.Catalog.ListAuthors)
		authors.GET("/:id", h.Catalog.GetAuthor)
		authors.POST("", append(requireAdmin, h.Catalog.CreateAuthor)...)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.GET("/:id", h.Catalog.GetCategory)
		categories.POST("", append(requireAdmin, h.Catalog.CreateCategory)...)
	}

	orders := r.Group("/orders", requireAuth)
	{
		orders.POST("", h.Order.PlaceOrder)
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)
	}

	return r
}
