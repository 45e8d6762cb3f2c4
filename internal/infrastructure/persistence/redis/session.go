package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-api/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
)

// SessionStore 会话存储
// 1. 记录用户登录会话，登出时删除
// 2. JWT黑名单：登出后 access token 在过期前按 jti 失效
// 3. Key设计：session:{user_id}、blacklist:{jti}
// 所有调用经过熔断器，Redis 故障时快速失败
type SessionStore struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client:  client,
		breaker: newBreaker("redis-session"),
	}
}

func newBreaker(name string) *circuitbreaker.CircuitBreaker {
	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(circuitbreaker.StateClosed))
	return circuitbreaker.New(name, circuitbreaker.Config{
		Timeout: 30 * time.Second,
		// 键不存在不算故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
			logger.Warn("circuit breaker state changed", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})
}

// execute 熔断保护 + 请求结果计数
func (s *SessionStore) execute(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.breaker.Execute(ctx, fn)
	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil && !errors.Is(err, redis.Nil):
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": s.breaker.Name(), "result": result})
	return err
}

// SaveSession 保存用户会话，有效期与 refresh token 一致
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(userID)
	err := s.execute(ctx, func(ctx context.Context) error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, data)
			pipe.Expire(ctx, key, ttl)
			return nil
		})
		return err
	})
	if err != nil {
		return apperrors.Wrap(err, "save session")
	}
	return nil
}

// GetSession 会话不存在时返回 ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	var result map[string]string
	err := s.execute(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.client.HGetAll(ctx, sessionKey(userID)).Result()
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "get session")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除用户会话（登出）
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	err := s.execute(ctx, func(ctx context.Context) error {
		return s.client.Del(ctx, sessionKey(userID)).Err()
	})
	if err != nil {
		return apperrors.Wrap(err, "delete session")
	}
	return nil
}

// Revoke 把 jti 加入黑名单，ttl 为 token 剩余有效期
func (s *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := s.execute(ctx, func(ctx context.Context) error {
		return s.client.Set(ctx, blacklistKey(jti), "revoked", ttl).Err()
	})
	if err != nil {
		return apperrors.Wrap(err, "revoke token")
	}
	return nil
}

// IsRevoked 检查 jti 是否在黑名单中
func (s *SessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var exists int64
	err := s.execute(ctx, func(ctx context.Context) error {
		var err error
		exists, err = s.client.Exists(ctx, blacklistKey(jti)).Result()
		return err
	})
	if err != nil {
		return false, apperrors.Wrap(err, "check blacklist")
	}
	return exists > 0, nil
}

func sessionKey(userID uint) string {
	return "session:" + strconv.FormatUint(uint64(userID), 10)
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

// NoopSessionStore redis.enabled=false 时使用：不保存会话，黑名单永远为空
type NoopSessionStore struct{}

func (NoopSessionStore) SaveSession(context.Context, uint, map[string]interface{}, time.Duration) error {
	return nil
}

func (NoopSessionStore) GetSession(context.Context, uint) (map[string]string, error) {
	return map[string]string{}, nil
}

func (NoopSessionStore) DeleteSession(context.Context, uint) error { return nil }

func (NoopSessionStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopSessionStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
