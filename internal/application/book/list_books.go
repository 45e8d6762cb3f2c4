package book

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

// ListBooksUseCase 图书列表查询用例
// 过滤条件在接口层解析和校验，这里负责分页参数归一化和组装分页响应
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求
// Page/Size/Sort 保持原始字符串，非法值由 pagination.Parse 回退默认值
type ListBooksRequest struct {
	Filter book.ListFilter
	Page   string
	Size   string
	Sort   string
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (pagination.Page[*book.Book], error) {
	page := pagination.Parse(req.Page, req.Size, req.Sort, book.ListOptions)

	books, total, err := uc.bookService.List(ctx, req.Filter, page)
	if err != nil {
		return pagination.Page[*book.Book]{}, err
	}
	return pagination.NewPage(books, total, page), nil
}
