package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

var registerOnce sync.Once

// RegisterValidators 给 gin 的校验引擎注册自定义规则，并让错误信息使用 json 字段名
// 路由初始化时调用，多次调用只生效一次
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		// decimal 按字符串参与校验
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("decimal_gte0", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			return err == nil && !d.IsNegative()
		})
		// notblank 去掉首尾空白后不能为空
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			field := fl.Field()
			if field.Kind() == reflect.Ptr {
				if field.IsNil() {
					return true
				}
				field = field.Elem()
			}
			if field.Kind() != reflect.String {
				return true
			}
			return strings.TrimSpace(field.String()) != ""
		})
	})
}

// bindJSON 绑定请求体，失败时输出 VALIDATION_FAILED，details.reason 为校验信息
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// 请求体里的 user_id 与查询参数同样处理
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "user_id" {
			response.Error(c, apperrors.InvalidQueryParam("user_id"))
			return false
		}
		response.Error(c, apperrors.ErrValidation.WithDetails(map[string]interface{}{
			"reason": bindingReason(err),
		}))
		return false
	}
	return true
}

func bindingReason(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Param() != "" {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
		}
		return strings.Join(msgs, "; ")
	}
	if err.Error() == "EOF" {
		return "request body is empty"
	}
	return err.Error()
}

// pathID 解析路径中的ID，非正整数返回 INVALID_QUERY_PARAM
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.InvalidQueryParam(name))
		return 0, false
	}
	return uint(id), true
}

// queryUint 可选的整数查询参数，缺失返回 nil
func queryUint(c *gin.Context, name string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.Error(c, apperrors.InvalidQueryParam(name))
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// queryDecimal 可选的金额查询参数
func queryDecimal(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		response.Error(c, apperrors.InvalidQueryParam(name))
		return nil, false
	}
	return &d, true
}
