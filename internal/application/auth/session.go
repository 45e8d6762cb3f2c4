package auth

import (
	"context"
	"time"
)

// SessionStore 登录会话与 token 黑名单
// 实现：persistence/redis.SessionStore，redis 关闭时为 NoopSessionStore
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error
	// GetSession 会话不存在（未登录或已登出）时返回 UNAUTHORIZED
	GetSession(ctx context.Context, userID uint) (map[string]string, error)
	DeleteSession(ctx context.Context, userID uint) error
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// UserInfo 登录响应中的用户信息
type UserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
