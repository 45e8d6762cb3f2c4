package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookstore-api/internal/application/user"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// UserHandler 用户HTTP处理器
// Handler 只负责解析请求、调用应用层、输出响应，业务规则在 domain 和 application 层
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	userService     user.Service
}

// NewUserHandler 创建用户处理器
func NewUserHandler(registerUseCase *appuser.RegisterUseCase, userService user.Service) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		userService:     userService,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  匿名注册为 USER；管理员登录后可以创建 ADMIN
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} appuser.RegisterResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      403 {object} response.ErrorBody "非管理员创建管理员"
// @Failure      409 {object} response.ErrorBody "邮箱已存在"
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	var actor *user.Principal
	if p, ok := middleware.GetPrincipal(c); ok {
		actor = &p
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), actor, appuser.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        req.Role,
		BirthDate:   req.BirthDate.Ptr(),
		Gender:      req.Gender,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List 全部用户
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.UserResponse
// @Failure      403 {object} response.ErrorBody
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), middleware.MustGetPrincipal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserListResponse(users))
}

// Me 当前登录用户
// @Summary      当前用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	p := middleware.MustGetPrincipal(c)
	u, err := h.userService.Get(c.Request.Context(), p, p.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// Get 用户详情
// @Summary      用户详情
// @Description  本人或管理员
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} dto.UserResponse
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.userService.Get(c.Request.Context(), middleware.MustGetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// Update 修改用户名称
// @Summary      修改用户名称
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        request body dto.UpdateUserRequest true "新名称"
// @Success      200 {object} dto.UserResponse
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.userService.Rename(c.Request.Context(), middleware.MustGetPrincipal(c), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// Delete 注销用户（软删除）
// @Summary      注销用户
// @Tags         用户
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), middleware.MustGetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
