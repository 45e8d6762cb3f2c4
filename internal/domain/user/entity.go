package user

import (
	"strings"
	"time"
)

// Role 用户角色
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole 解析角色字符串（不区分大小写）
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User 用户实体（聚合根）
// 1. PasswordHash 是 bcrypt 哈希，实体不提供任何取明文的途径
// 2. DeletedAt 非空表示已注销，已注销用户不能登录，也不能被引用
type User struct {
	ID           uint
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	BirthDate    *time.Time
	Gender       string
	Address      string
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewUser 创建新用户（工厂方法），hashedPassword 必须已经加密
func NewUser(email, hashedPassword, name string, role Role) *User {
	now := time.Now()
	if role == "" {
		role = RoleUser
	}
	return &User{
		Email:        NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		Role:         role,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail 邮箱统一去空格、转小写后再存储和比较
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsDeleted 是否已注销
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// Rename 修改名称
func (u *User) Rename(name string) {
	u.Name = strings.TrimSpace(name)
	u.UpdatedAt = time.Now()
}
