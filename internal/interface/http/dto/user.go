package dto

import (
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
)

// RegisterRequest 注册请求
// 密码强度、邮箱格式等业务规则在领域层校验
type RegisterRequest struct {
	Email       string `json:"email" binding:"required" example:"reader@example.com"`
	Password    string `json:"password" binding:"required" example:"secret123"`
	Name        string `json:"name" binding:"required,notblank" example:"Reader"`
	Role        string `json:"role" binding:"omitempty,oneof=USER ADMIN user admin" example:"USER"`
	BirthDate   *Date  `json:"birth_date" swaggertype:"string" example:"1990-01-31"`
	Gender      string `json:"gender" binding:"max=10"`
	Address     string `json:"address" binding:"max=255"`
	PhoneNumber string `json:"phone_number" binding:"max=20"`
}

// UpdateUserRequest 修改用户名称
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,notblank" example:"New Name"`
}

// UserResponse 用户响应（不包含密码）
type UserResponse struct {
	ID          uint      `json:"id" example:"1"`
	Email       string    `json:"email" example:"reader@example.com"`
	Name        string    `json:"name" example:"Reader"`
	Role        string    `json:"role" example:"USER"`
	BirthDate   *Date     `json:"birth_date,omitempty" swaggertype:"string"`
	Gender      string    `json:"gender,omitempty"`
	Address     string    `json:"address,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUserResponse 领域实体 → 响应
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		BirthDate:   DateFrom(u.BirthDate),
		Gender:      u.Gender,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NewUserListResponse 用户列表
func NewUserListResponse(users []*user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
