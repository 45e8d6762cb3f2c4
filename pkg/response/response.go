package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/logger"
)

// ErrorBody 统一错误响应结构
// 所有错误都经由 Error 输出这个形状，handler 不自行拼装错误 JSON
type ErrorBody struct {
	Timestamp string                 `json:"timestamp"`
	Path      string                 `json:"path"`
	Status    int                    `json:"status"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details"`
}

// Success 200 响应，data 原样序列化
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204 响应，删除类接口使用
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := h.bookService.Get(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 5xx 或带内部错误的情况记录完整日志，客户端只看到通用信息
	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		logger.FromContext(c).Error("request failed", err, map[string]interface{}{
			"code": appErr.Code,
		})
		message = apperrors.ErrInternal.Message
	} else if appErr.Err != nil {
		logger.FromContext(c).Warn("request rejected", map[string]interface{}{
			"code":  appErr.Code,
			"cause": appErr.Err.Error(),
		})
	}

	details := appErr.Details
	if details == nil || appErr.Status >= http.StatusInternalServerError {
		details = map[string]interface{}{}
	}

	c.JSON(appErr.Status, ErrorBody{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Path:      c.Request.URL.Path,
		Status:    appErr.Status,
		Code:      appErr.Code,
		Message:   message,
		Details:   details,
	})
}

// Abort 输出错误并终止后续 handler（中间件使用）
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
