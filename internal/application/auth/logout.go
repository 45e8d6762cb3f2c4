package auth

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-api/pkg/jwt"
)

// LogoutUseCase 登出：当前 access token 加入黑名单直到过期，删除会话
type LogoutUseCase struct {
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute claims 由鉴权中间件解析并放入请求上下文
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, claims *jwt.Claims) error {
	if err := uc.sessionStore.Revoke(ctx, claims.ID, claims.TTL(time.Now())); err != nil {
		return err
	}
	return uc.sessionStore.DeleteSession(ctx, userID)
}
