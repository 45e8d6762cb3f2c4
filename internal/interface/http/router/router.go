// Package router 组装 gin 引擎：全局中间件、路由表、404/405
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// ServiceName 健康检查和追踪使用的服务名
const ServiceName = "bookstore-api"

// Options 引擎选项
type Options struct {
	Mode        string // debug | release | test
	ServiceName string
	MetricsPath string // 为空时不暴露 Prometheus 端点
	Swagger     bool
}

// Handlers 所有HTTP处理器
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Author   *handler.AuthorHandler
	Category *handler.CategoryHandler
	Book     *handler.BookHandler
	Order    *handler.OrderHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Review   *handler.ReviewHandler
}

// New 创建gin引擎并注册路由，limiter 为 nil 时不限流
func New(opts Options, h Handlers, auth *middleware.AuthMiddleware, limiter *middleware.RateLimiter) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(opts.Mode)
	}
	if opts.ServiceName == "" {
		opts.ServiceName = ServiceName
	}
	handler.RegisterValidators()

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// 顺序：请求日志最先，保证 panic 和限流也带 request_id
	r.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.Tracing(opts.ServiceName),
		middleware.Metrics(),
	)
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound.WithMessage("route not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, apperrors.ErrMethodNotAllowed)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": opts.ServiceName,
		})
	})
	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	adminOnly := []gin.HandlerFunc{requireAuth, auth.RequireRole(user.RoleAdmin)}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", requireAuth, h.Auth.Logout)
	}

	users := r.Group("/users")
	{
		// 匿名注册；管理员带 token 时可以创建管理员
		users.POST("", auth.OptionalAuth(), h.User.Register)
		users.GET("", append(adminOnly, h.User.List)...)
		users.GET("/me", requireAuth, h.User.Me)
		users.GET("/:id", requireAuth, h.User.Get)
		users.PUT("/:id", requireAuth, h.User.Update)
		users.DELETE("/:id", append(adminOnly, h.User.Delete)...)
	}

	authors := r.Group("/authors")
	{
		authors.GET("", h.Author.List)
		authors.GET("/:id", h.Author.Get)
		authors.POST("", append(adminOnly, h.Author.Create)...)
		authors.PUT("/:id", append(adminOnly, h.Author.Update)...)
		authors.DELETE("/:id", append(adminOnly, h.Author.Delete)...)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", append(adminOnly, h.Category.Create)...)
		categories.PUT("/:id", append(adminOnly, h.Category.Update)...)
		categories.DELETE("/:id", append(adminOnly, h.Category.Delete)...)
	}

	books := r.Group("/books")
	{
		books.GET("", h.Book.List)
		books.GET("/:id", h.Book.Get)
		books.POST("", append(adminOnly, h.Book.Create)...)
		books.PUT("/:id", append(adminOnly, h.Book.Update)...)
		books.DELETE("/:id", append(adminOnly, h.Book.Delete)...)
	}

	orders := r.Group("/orders", requireAuth)
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)

		adminRole := auth.RequireRole(user.RoleAdmin)
		orders.PATCH("/:id/status", adminRole, h.Order.UpdateStatus)
		orders.PUT("/:id", adminRole, h.Order.UpdateStatus)
		orders.DELETE("/:id", adminRole, h.Order.DeleteOrder)
	}

	cart := r.Group("/cart", requireAuth)
	{
		cart.POST("", h.Cart.Add)
		cart.GET("", h.Cart.List)
		cart.PUT("/:id", h.Cart.Update)
		cart.DELETE("/:id", h.Cart.Remove)
	}

	wishlists := r.Group("/wishlists", requireAuth)
	{
		wishlists.POST("", h.Wishlist.Add)
		wishlists.GET("", h.Wishlist.ListAll)
		wishlists.GET("/me", h.Wishlist.Mine)
		wishlists.DELETE("/:id", h.Wishlist.Remove)
	}

	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.Review.ListReviews)
		reviews.GET("/:id", h.Review.GetReview)
		reviews.GET("/:id/comments", h.Review.ListComments)

		reviews.POST("", requireAuth, h.Review.CreateReview)
		reviews.PUT("/:id", requireAuth, h.Review.UpdateReview)
		reviews.DELETE("/:id", requireAuth, h.Review.DeleteReview)
		reviews.POST("/:id/comments", requireAuth, h.Review.CreateComment)
		reviews.POST("/:id/like", requireAuth, h.Review.Like)
		reviews.DELETE("/:id/like", requireAuth, h.Review.Unlike)
	}

	comments := r.Group("/comments", requireAuth)
	{
		comments.PUT("/:id", h.Review.UpdateComment)
		comments.DELETE("/:id", h.Review.DeleteComment)
	}

	return r
}
