package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/tracing"
)

// RequestIDHeader 请求ID响应头，客户端传入时沿用
const RequestIDHeader = "X-Request-ID"

// RequestLogger 请求日志中间件
// 生成请求ID，把带 request_id 的子日志放进上下文，请求结束后按状态码分级输出
// 不记录请求体和 Authorization 头
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		fields := map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields["trace_id"] = traceID
		}
		log := logger.WithContext(fields)
		c.Set(logger.ContextKey, log)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		result := map[string]interface{}{
			"status":     status,
			"latency_ms": latency.Milliseconds(),
			"body_size":  c.Writer.Size(),
		}
		if p, ok := GetPrincipal(c); ok {
			result["user_id"] = p.UserID
		}
		if len(c.Errors) > 0 {
			result["errors"] = c.Errors.String()
		}

		switch {
		case status >= 500:
			log.Error("request completed", nil, result)
		case status >= 400:
			log.Warn("request completed", result)
		default:
			log.Info("request completed", result)
		}
	}
}
