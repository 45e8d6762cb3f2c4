package main

import (
	"gorm.io/gorm"

	appauth "github.com/xiebiao/bookstore-api/internal/application/auth"
	"github.com/xiebiao/bookstore-api/internal/application/social"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/internal/interface/http/router"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
	"github.com/xiebiao/bookstore-api/pkg/logger"
)

// =========================================
// 自定义 Provider
// 构造函数参数需要从 Config 中提取，或返回值需要 cleanup 时写在这里
// =========================================

// provideDB 数据库连接，cleanup 时关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideSessionStore redis.enabled=false 时退化为不保存会话、黑名单为空
func provideSessionStore(cfg *config.Config) (appauth.SessionStore, func(), error) {
	if !cfg.Redis.Enabled {
		logger.Warn("redis disabled, sessions and token blacklist are not persisted", nil)
		return redis.NoopSessionStore{}, func() {}, nil
	}

	client, cleanup, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewSessionStore(client), cleanup, nil
}

// provideTokenBlacklist 黑名单与会话共用一个存储
func provideTokenBlacklist(store appauth.SessionStore) middleware.TokenBlacklist {
	return store
}

// provideUserFinder 鉴权中间件只需要按ID查用户
func provideUserFinder(repo user.Repository) middleware.UserFinder {
	return repo
}

// provideTargetResolver 社交用例通过用户服务确定目标用户
func provideTargetResolver(svc user.Service) social.TargetResolver {
	return svc
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideRateLimiter rate_limit.enabled=false 时返回 nil，路由不挂限流中间件
func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
}

// provideRouterOptions 引擎选项
func provideRouterOptions(cfg *config.Config) router.Options {
	opts := router.Options{
		Mode:        cfg.Server.Mode,
		ServiceName: cfg.Tracing.ServiceName,
		// 生产环境不暴露文档
		Swagger: cfg.Server.Mode != "release",
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	return opts
}
