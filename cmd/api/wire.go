//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
// 修改 Provider 后运行 `wire gen ./cmd/api` 重新生成 wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appauth "github.com/xiebiao/bookstore-api/internal/application/auth"
	appbook "github.com/xiebiao/bookstore-api/internal/application/book"
	apporder "github.com/xiebiao/bookstore-api/internal/application/order"
	"github.com/xiebiao/bookstore-api/internal/application/social"
	appuser "github.com/xiebiao/bookstore-api/internal/application/user"
	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/cart"
	"github.com/xiebiao/bookstore-api/internal/domain/category"
	"github.com/xiebiao/bookstore-api/internal/domain/review"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/domain/wishlist"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、事务管理器
var infrastructureSet = wire.NewSet(
	provideDB,
	provideSessionStore,
	provideJWTManager,
	mysql.NewTxManager,
	wire.Bind(new(appbook.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(social.TxManager), new(*mysql.TxManager)),
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewAuthorRepository,
	mysql.NewCategoryRepository,
	mysql.NewBookRepository,
	mysql.NewOrderRepository,
	mysql.NewCartRepository,
	mysql.NewWishlistRepository,
	mysql.NewReviewRepository,
	mysql.NewCommentRepository,
	mysql.NewLikeRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	author.NewService,
	category.NewService,
	book.NewService,
	cart.NewService,
	wishlist.NewService,
	review.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appauth.NewLoginUseCase,
	appauth.NewRefreshUseCase,
	appauth.NewLogoutUseCase,
	appuser.NewRegisterUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewQueryOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewDeleteOrderUseCase,
	provideTargetResolver,
	social.NewCartUseCase,
	social.NewWishlistUseCase,
	social.NewReviewUseCase,
)

// middlewareSet 鉴权与限流
var middlewareSet = wire.NewSet(
	provideTokenBlacklist,
	provideUserFinder,
	provideRateLimiter,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器和路由
var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewAuthorHandler,
	handler.NewCategoryHandler,
	handler.NewBookHandler,
	handler.NewOrderHandler,
	handler.NewCartHandler,
	handler.NewWishlistHandler,
	handler.NewReviewHandler,
	wire.Struct(new(router.Handlers), "*"),
	provideRouterOptions,
	router.New,
)

// InitializeApp 组装整个应用，cleanup 关闭数据库和Redis连接
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
	)
	return nil, nil, nil
}
