package user

import "context"

// Principal 通过鉴权后的请求主体
// Role 取自 access token 的 role 声明，角色校验不再查库
type Principal struct {
	UserID uint
	Email  string
	Role   Role
}

// IsAdmin 是否管理员
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanActFor 本人或管理员才能操作 userID 名下的资源
func (p Principal) CanActFor(userID uint) bool {
	return p.IsAdmin() || p.UserID == userID
}

type principalKey struct{}

// WithPrincipal 把主体放进 context，供应用层读取
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom 从 context 取出主体
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
