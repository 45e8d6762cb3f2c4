package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 应用错误
// 设计说明：
// 1. Code 是稳定的机器可读标识，客户端据此判断错误类型
// 2. Status 是对应的 HTTP 状态码
// 3. Details 携带结构化上下文（如库存不足时的 book_id/stock_cnt）
// 4. Err 是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    string                 `json:"code"`
	Status  int                    `json:"status"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按 Code+Message 匹配，WithDetails 产生的副本仍然等于原错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New 创建新的AppError
func New(status int, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Status:  status,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误），对外只暴露通用提示
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithDetails 返回携带详情的副本，预定义错误本身不会被修改
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = make(map[string]interface{}, len(e.Details)+len(details))
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	for k, v := range details {
		cp.Details[k] = v
	}
	return &cp
}

// WithStatus 返回改写 HTTP 状态码的副本
func (e *AppError) WithStatus(status int) *AppError {
	cp := *e
	cp.Status = status
	return &cp
}

// WithMessage 返回改写提示信息的副本
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithErr 返回附带内部错误的副本
func (e *AppError) WithErr(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// =========================================
// 错误码定义
// =========================================

const (
	CodeValidation        = "VALIDATION_FAILED"
	CodeInvalidQueryParam = "INVALID_QUERY_PARAM"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "RESOURCE_NOT_FOUND"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeDuplicate         = "DUPLICATE_RESOURCE"
	CodeConflict          = "STATE_CONFLICT"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrValidation        = New(http.StatusBadRequest, CodeValidation, "validation failed")
	ErrInvalidQueryParam = New(http.StatusBadRequest, CodeInvalidQueryParam, "invalid query parameter")

	ErrUnauthorized = New(http.StatusUnauthorized, CodeUnauthorized, "authentication required")
	ErrInvalidToken = New(http.StatusUnauthorized, CodeUnauthorized, "invalid token")
	ErrTokenExpired = New(http.StatusUnauthorized, CodeTokenExpired, "token expired")
	ErrForbidden    = New(http.StatusForbidden, CodeForbidden, "access denied")

	ErrNotFound     = New(http.StatusNotFound, CodeNotFound, "resource not found")
	ErrUserNotFound = New(http.StatusNotFound, CodeUserNotFound, "user not found")

	ErrDuplicate = New(http.StatusConflict, CodeDuplicate, "resource already exists")
	ErrConflict  = New(http.StatusConflict, CodeConflict, "state conflict")

	ErrTooManyRequests  = New(http.StatusTooManyRequests, CodeTooManyRequests, "too many requests")
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	ErrInternal         = New(http.StatusInternalServerError, CodeInternal, "internal server error")
)

// Validation 构造参数校验错误
func Validation(message string) *AppError {
	return ErrValidation.WithMessage(message)
}

// InvalidQueryParam 构造查询参数错误，details 中带上参数名
func InvalidQueryParam(name string) *AppError {
	return ErrInvalidQueryParam.WithDetails(map[string]interface{}{"param": name})
}

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

// HasCode 判断错误链上是否存在指定 Code 的 AppError
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
