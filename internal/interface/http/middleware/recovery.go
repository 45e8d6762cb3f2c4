package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// Recovery 捕获 panic，记录堆栈，返回统一的 500 错误体
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(c).Error("panic recovered", fmt.Errorf("%v", r), map[string]interface{}{
					"stack": string(debug.Stack()),
				})
				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Abort(c, apperrors.ErrInternal)
			}
		}()
		c.Next()
	}
}
