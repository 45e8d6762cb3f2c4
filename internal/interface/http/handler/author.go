package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// AuthorHandler 作者HTTP处理器，写操作由路由限定为管理员
type AuthorHandler struct {
	authorService author.Service
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authorService author.Service) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// Create 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} dto.AuthorResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Router       /authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.authorService.Create(c.Request.Context(), req.Name, req.Bio)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAuthorResponse(a))
}

// List 作者列表，按ID升序
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Success      200 {array} dto.AuthorResponse
// @Router       /authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.authorService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorListResponse(authors))
}

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} dto.AuthorResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.authorService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// Update 修改作者
// @Summary      修改作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Param        request body dto.UpdateAuthorRequest true "修改内容"
// @Success      200 {object} dto.AuthorResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /authors/{id} [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAuthorRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.authorService.Update(c.Request.Context(), id, req.Name, req.Bio)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// Delete 删除作者（物理删除）
// @Summary      删除作者
// @Description  仍有图书引用时返回 409
// @Tags         作者
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      204
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.authorService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
