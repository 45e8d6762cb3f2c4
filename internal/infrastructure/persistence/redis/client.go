package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/pkg/logger"
)

// Options redis 配置 → go-redis 连接参数
func Options(rc config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         rc.Addr(),
		Password:     rc.Password,
		DB:           rc.DB,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
	}
}

// NewClient 创建客户端并在启动时 PING 一次，连不上直接返回错误
// cleanup 关闭连接池
func NewClient(cfg *config.Config) (*redis.Client, func(), error) {
	client := redis.NewClient(Options(cfg.Redis))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("Redis连接失败(%s): %w", cfg.Redis.Addr(), err)
	}
	logger.Info("redis connected", map[string]interface{}{
		"addr":      cfg.Redis.Addr(),
		"db":        cfg.Redis.DB,
		"pool_size": cfg.Redis.PoolSize,
	})

	cleanup := func() {
		if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			logger.Error("close redis failed", err, nil)
		}
	}
	return client, cleanup, nil
}
