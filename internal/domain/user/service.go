package user

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// RegisterParams 注册参数
type RegisterParams struct {
	Email       string
	Password    string
	Name        string
	Role        Role // 为空时为 USER
	BirthDate   *time.Time
	Gender      string
	Address     string
	PhoneNumber string
}

// Service 用户领域服务
// 包含不属于单个实体的业务逻辑：密码加密与校验、权限判断
type Service interface {
	// Register 注册，actor 为空表示匿名注册
	// 只有管理员可以创建 ADMIN 角色的用户
	Register(ctx context.Context, actor *Principal, params RegisterParams) (*User, error)

	// Authenticate 校验邮箱密码，失败统一返回 ErrInvalidCredentials
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// Get 本人或管理员可查看
	Get(ctx context.Context, actor Principal, id uint) (*User, error)

	// List 全部有效用户（管理员）
	List(ctx context.Context, actor Principal) ([]*User, error)

	// Rename 本人或管理员可修改名称
	Rename(ctx context.Context, actor Principal, id uint, name string) (*User, error)

	// Delete 注销用户（管理员）
	Delete(ctx context.Context, actor Principal, id uint) error

	// ResolveTarget 确定操作的目标用户：未指定或等于本人时为本人，
	// 指定他人时要求管理员且目标用户存在
	ResolveTarget(ctx context.Context, actor Principal, requested *uint) (uint, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: bcrypt.DefaultCost}
}

// NewServiceWithCost 指定 bcrypt cost，测试中用 bcrypt.MinCost 加速
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

func (s *service) Register(ctx context.Context, actor *Principal, params RegisterParams) (*User, error) {
	if !isValidEmail(params.Email) {
		return nil, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(params.Password); err != nil {
		return nil, err
	}
	if n := utf8.RuneCountInString(params.Name); n < 1 || n > 100 {
		return nil, ErrInvalidName
	}

	role := params.Role
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		return nil, ErrInvalidRole
	}
	if role == RoleAdmin && (actor == nil || !actor.IsAdmin()) {
		return nil, ErrRoleEscalation
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "hash password")
	}

	u := NewUser(params.Email, string(hashed), params.Name, role)
	u.BirthDate = params.BirthDate
	u.Gender = params.Gender
	u.Address = params.Address
	u.PhoneNumber = params.PhoneNumber

	// 邮箱唯一性由数据库UNIQUE索引保证，Repository 负责转换成 ErrEmailDuplicate
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "verify password")
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, actor Principal, id uint) (*User, error) {
	if !actor.CanActFor(id) {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, actor Principal) ([]*User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *service) Rename(ctx context.Context, actor Principal, id uint, name string) (*User, error) {
	if !actor.CanActFor(id) {
		return nil, apperrors.ErrForbidden
	}
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return nil, ErrInvalidName
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Rename(name)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, actor Principal, id uint) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *service) ResolveTarget(ctx context.Context, actor Principal, requested *uint) (uint, error) {
	if requested == nil || *requested == actor.UserID {
		return actor.UserID, nil
	}
	if !actor.IsAdmin() {
		return 0, apperrors.ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, *requested); err != nil {
		return 0, err
	}
	return *requested, nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(NormalizeEmail(email))
}

// ValidatePasswordStrength 8-72 字节（bcrypt 上限），必须同时包含字母和数字
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
