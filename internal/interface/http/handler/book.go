package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-api/internal/application/book"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	bookService       book.Service
	listBooksUseCase  *appbook.ListBooksUseCase
	createBookUseCase *appbook.CreateBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	bookService book.Service,
	listBooksUseCase *appbook.ListBooksUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		bookService:       bookService,
		listBooksUseCase:  listBooksUseCase,
		createBookUseCase: createBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// Create 图书上架
// @Summary      图书上架
// @Description  管理员创建图书，作者和分类必须存在
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      404 {object} response.ErrorBody "作者或分类不存在"
// @Failure      409 {object} response.ErrorBody "ISBN已存在"
// @Router       /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.createBookUseCase.Execute(c.Request.Context(), req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewBookResponse(created))
}

// List 图书列表
// @Summary      图书列表
// @Description  关键字、状态、价格区间、分类、作者过滤，分页排序
// @Tags         图书
// @Produce      json
// @Param        keyword     query string false "标题或简介关键字"
// @Param        status      query string false "状态"
// @Param        min_price   query string false "最低价格"
// @Param        max_price   query string false "最高价格"
// @Param        category_id query int    false "分类ID"
// @Param        author_id   query int    false "作者ID"
// @Param        page        query int    false "页码，从1开始"
// @Param        size        query int    false "每页数量，最大100"
// @Param        sort        query string false "排序，如 price,ASC"
// @Success      200 {object} pagination.Page[dto.BookResponse]
// @Failure      400 {object} response.ErrorBody "查询参数错误"
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	filter := book.ListFilter{
		Keyword: strings.TrimSpace(c.Query("keyword")),
		Status:  strings.TrimSpace(c.Query("status")),
	}

	var ok bool
	if filter.MinPrice, ok = queryDecimal(c, "min_price"); !ok {
		return
	}
	if filter.MaxPrice, ok = queryDecimal(c, "max_price"); !ok {
		return
	}
	if filter.CategoryID, ok = queryUint(c, "category_id"); !ok {
		return
	}
	if filter.AuthorID, ok = queryUint(c, "author_id"); !ok {
		return
	}

	page, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Filter: filter,
		Page:   c.Query("page"),
		Size:   c.Query("size"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MapPage(page, func(b *book.Book) dto.BookResponse {
		return dto.NewBookResponse(b)
	}))
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.bookService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// Update 修改图书（部分更新）
// @Summary      修改图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "修改内容"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.updateBookUseCase.Execute(c.Request.Context(), id, req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(updated))
}

// Delete 删除图书
// @Summary      删除图书
// @Description  被订单明细或有效书评引用时返回 409
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
