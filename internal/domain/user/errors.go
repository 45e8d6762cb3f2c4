package user

import (
	"net/http"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 用户领域错误定义
var (
	ErrUserNotFound = apperrors.ErrUserNotFound

	ErrEmailDuplicate = apperrors.ErrDuplicate.WithMessage("email already registered")

	// ErrInvalidCredentials 邮箱不存在、已注销、密码错误统一返回这一个错误，防止枚举账号
	ErrInvalidCredentials = apperrors.New(http.StatusUnauthorized, apperrors.CodeUnauthorized, "invalid email or password")

	ErrInvalidEmail = apperrors.Validation("invalid email format")

	ErrWeakPassword = apperrors.Validation("password must be 8-72 characters and contain letters and digits")

	ErrInvalidName = apperrors.Validation("name must be 1-100 characters")

	ErrInvalidRole = apperrors.Validation("role must be USER or ADMIN")

	// ErrRoleEscalation 非管理员试图创建管理员
	ErrRoleEscalation = apperrors.ErrForbidden.WithMessage("only admins can assign the ADMIN role")
)
