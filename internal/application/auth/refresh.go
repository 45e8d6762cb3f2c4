package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
	"github.com/xiebiao/bookstore-api/pkg/logger"
)

// ErrSessionEnded 登出后会话已删除，refresh token 随之失效
var ErrSessionEnded = apperrors.ErrUnauthorized.WithMessage("session ended, please log in again")

// RefreshUseCase 用 refresh token 换新的 Token 对
// 角色从用户表重新读取，管理员降权后旧 refresh token 不会带回旧角色
type RefreshUseCase struct {
	userRepo     user.Repository
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewRefreshUseCase 创建刷新用例
func NewRefreshUseCase(userRepo user.Repository, jwtManager *jwt.Manager, sessionStore SessionStore) *RefreshUseCase {
	return &RefreshUseCase{userRepo: userRepo, jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行刷新
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := uc.jwtManager.Parse(refreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	// 会话不存在说明已登出；存储不可用时放行，与黑名单一致
	if _, err := uc.sessionStore.GetSession(ctx, userID); err != nil {
		if apperrors.HasCode(err, apperrors.CodeUnauthorized) {
			return nil, ErrSessionEnded
		}
		logger.FromContext(ctx).Warn("check session failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrUserNotFound.WithStatus(http.StatusUnauthorized)
		}
		return nil, err
	}

	return uc.jwtManager.GenerateTokenPair(u.ID, string(u.Role))
}
