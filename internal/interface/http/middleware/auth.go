package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// gin.Context 中的键
const (
	principalKey = "principal"
	claimsKey    = "claims"
)

// TokenBlacklist 已吊销 token 的查询，按 jti 判断
// 实现：persistence/redis.SessionStore；查询失败时放行（只记日志）
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// UserFinder 按ID查找有效用户，user.Repository 满足这个接口
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从 Authorization 头提取 Bearer token
// 2. 校验签名、有效期和 token 类型
// 3. 检查黑名单
// 4. 确认用户仍然存在，把 Principal 注入上下文
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	users      UserFinder
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, users UserFinder, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		users:      users,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/orders")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.authenticate(c); err != nil {
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth 有合法 token 时注入 Principal，否则按匿名继续
// 注册接口使用：管理员登录后可以创建管理员
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if err := m.authenticate(c); err != nil {
				logger.FromContext(c).Debug("optional auth ignored", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
		c.Next()
	}
}

// RequireRole 角色校验，必须放在 RequireAuth 之后
// 比较的是 token 里的 role 声明，不重新查库
func (m *AuthMiddleware) RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			authFailed("missing")
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}
		if p.Role != role {
			authFailed("forbidden")
			response.Abort(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) error {
	tokenString, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		authFailed("missing")
		return apperrors.ErrUnauthorized
	}

	claims, err := m.jwtManager.Parse(tokenString, jwt.TypeAccess)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeTokenExpired) {
			authFailed("expired")
		} else {
			authFailed("invalid")
		}
		return err
	}

	ctx := c.Request.Context()
	revoked, err := m.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		// 黑名单不可用时放行，token 本身仍然有效
		logger.FromContext(c).Warn("token blacklist unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if revoked {
		authFailed("revoked")
		return apperrors.ErrInvalidToken.WithMessage("token has been revoked")
	}

	userID, _ := claims.UserID()
	u, err := m.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			authFailed("user_not_found")
			return user.ErrUserNotFound.WithStatus(401)
		}
		return err
	}

	p := user.Principal{UserID: u.ID, Email: u.Email, Role: user.Role(claims.Role)}
	c.Set(principalKey, p)
	c.Set(claimsKey, claims)
	c.Request = c.Request.WithContext(user.WithPrincipal(ctx, p))
	return nil
}

// bearerToken 只接受 "Bearer <token>"：前缀区分大小写，单个空格，token 内不含空白
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.ContainsAny(token, " \t\r\n") {
		return "", false
	}
	return token, true
}

func authFailed(reason string) {
	metrics.IncCounterVec(metrics.AuthFailuresTotal, map[string]string{"reason": reason})
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetPrincipal 当前请求主体，未登录时 ok 为 false
func GetPrincipal(c *gin.Context) (user.Principal, bool) {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(user.Principal); ok {
			return p, true
		}
	}
	return user.Principal{}, false
}

// MustGetPrincipal 用于已经通过 RequireAuth 的 Handler
func MustGetPrincipal(c *gin.Context) user.Principal {
	p, ok := GetPrincipal(c)
	if !ok {
		panic("principal not found in context")
	}
	return p
}

// GetClaims 当前 access token 的声明，登出时用来吊销
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	if v, exists := c.Get(claimsKey); exists {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims, true
		}
	}
	return nil, false
}
