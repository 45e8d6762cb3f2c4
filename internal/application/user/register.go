package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/pkg/logger"
)

// RegisterUseCase 用户注册用例
// 匿名注册只能得到 USER 角色，已登录的管理员可以创建管理员
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string
	Password    string
	Name        string
	Role        string
	BirthDate   *time.Time
	Gender      string
	Address     string
	PhoneNumber string
}

// RegisterResponse 注册响应，不返回密码相关字段
type RegisterResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Execute 执行注册，actor 为空表示匿名请求
func (uc *RegisterUseCase) Execute(ctx context.Context, actor *user.Principal, req RegisterRequest) (*RegisterResponse, error) {
	var role user.Role
	if req.Role != "" {
		parsed, ok := user.ParseRole(req.Role)
		if !ok {
			return nil, user.ErrInvalidRole
		}
		role = parsed
	}

	u, err := uc.userService.Register(ctx, actor, user.RegisterParams{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        role,
		BirthDate:   req.BirthDate,
		Gender:      req.Gender,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered", map[string]interface{}{
		"user_id": u.ID,
		"role":    u.Role,
	})

	return &RegisterResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}, nil
}
