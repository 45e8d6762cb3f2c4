package handler

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/bookstore-api/internal/application/auth"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// AuthHandler 登录、刷新、登出
type AuthHandler struct {
	loginUseCase   *appauth.LoginUseCase
	refreshUseCase *appauth.RefreshUseCase
	logoutUseCase  *appauth.LogoutUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(
	loginUseCase *appauth.LoginUseCase,
	refreshUseCase *appauth.RefreshUseCase,
	logoutUseCase *appauth.LogoutUseCase,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:   loginUseCase,
		refreshUseCase: refreshUseCase,
		logoutUseCase:  logoutUseCase,
	}
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证邮箱密码，返回 access/refresh token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} appauth.LoginResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      401 {object} response.ErrorBody "邮箱或密码错误"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appauth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Refresh 刷新 Token
// @Summary      刷新Token
// @Description  用 refresh token 换取新的 Token 对，角色按当前用户数据重新签发
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "refresh token"
// @Success      200 {object} jwt.TokenPair
// @Failure      400 {object} response.ErrorBody
// @Failure      401 {object} response.ErrorBody "过期、非法或用户不存在"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.refreshUseCase.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pair)
}

// Logout 登出
// @Summary      登出
// @Description  当前 access token 加入黑名单直到过期
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.ErrorBody
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	p := middleware.MustGetPrincipal(c)
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), p.UserID, claims); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "logged out"})
}
