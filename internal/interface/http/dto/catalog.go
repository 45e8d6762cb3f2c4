package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/category"
)

// =========================================
// 作者
// =========================================

// CreateAuthorRequest 创建作者
type CreateAuthorRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100" example:"Alan Donovan"`
	Bio  string `json:"bio" binding:"max=5000"`
}

// UpdateAuthorRequest 部分更新作者
type UpdateAuthorRequest struct {
	Name *string `json:"name" binding:"omitempty,notblank,max=100"`
	Bio  *string `json:"bio" binding:"omitempty,max=5000"`
}

// AuthorResponse 作者响应
type AuthorResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"Alan Donovan"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAuthorResponse 领域实体 → 响应
func NewAuthorResponse(a *author.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name, Bio: a.Bio, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

// NewAuthorListResponse 作者列表
func NewAuthorListResponse(authors []*author.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, NewAuthorResponse(a))
	}
	return out
}

// =========================================
// 分类
// =========================================

// CreateCategoryRequest 创建分类
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100" example:"Programming"`
	Slug string `json:"slug" binding:"required,notblank,max=120" example:"programming"`
}

// UpdateCategoryRequest 部分更新分类
type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,notblank,max=100"`
	Slug *string `json:"slug" binding:"omitempty,notblank,max=120"`
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"Programming"`
	Slug      string    `json:"slug" example:"programming"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategoryResponse 领域实体 → 响应
func NewCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// NewCategoryListResponse 分类列表
func NewCategoryListResponse(categories []*category.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

// =========================================
// 图书
// =========================================

// CreateBookRequest 图书上架请求
// price 接受 JSON 数字或字符串，内部始终用 decimal 表示
type CreateBookRequest struct {
	Title         string           `json:"title" binding:"required,notblank" example:"The Go Programming Language"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price" binding:"required,decimal_gte0" swaggertype:"string" example:"59.90"`
	ISBN13        *string          `json:"isbn13" example:"9780134190440"`
	Publisher     string           `json:"publisher" binding:"max=255"`
	PublishedDate *Date            `json:"published_date" swaggertype:"string" example:"2015-10-26"`
	StockCnt      *int             `json:"stock_cnt" example:"10"`
	Status        string           `json:"status" example:"ACTIVE"`
	AuthorID      uint             `json:"author_id" binding:"required" example:"1"`
	CategoryIDs   []uint           `json:"category_ids" binding:"required,min=1" example:"1,2"`
}

// Params 请求 → 领域参数
func (r CreateBookRequest) Params() book.CreateParams {
	p := book.CreateParams{
		Title:         r.Title,
		Description:   r.Description,
		Price:         *r.Price,
		ISBN13:        r.ISBN13,
		Publisher:     r.Publisher,
		PublishedDate: r.PublishedDate.Ptr(),
		Status:        r.Status,
		AuthorID:      r.AuthorID,
		CategoryIDs:   r.CategoryIDs,
	}
	if r.StockCnt != nil {
		p.StockCnt = *r.StockCnt
	}
	return p
}

// UpdateBookRequest 部分更新，省略的字段不修改
type UpdateBookRequest struct {
	Title         *string          `json:"title" binding:"omitempty,notblank"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty,decimal_gte0" swaggertype:"string"`
	ISBN13        *string          `json:"isbn13"`
	Publisher     *string          `json:"publisher" binding:"omitempty,max=255"`
	PublishedDate *Date            `json:"published_date" swaggertype:"string"`
	StockCnt      *int             `json:"stock_cnt"`
	Status        *string          `json:"status"`
	AuthorID      *uint            `json:"author_id"`
	CategoryIDs   []uint           `json:"category_ids" binding:"omitempty,min=1"`
}

// Params 请求 → 领域参数
func (r UpdateBookRequest) Params() book.UpdateParams {
	return book.UpdateParams{
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		ISBN13:        r.ISBN13,
		Publisher:     r.Publisher,
		PublishedDate: r.PublishedDate.Ptr(),
		StockCnt:      r.StockCnt,
		Status:        r.Status,
		AuthorID:      r.AuthorID,
		CategoryIDs:   r.CategoryIDs,
	}
}

// AuthorSummary 图书中的作者摘要
type AuthorSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategorySummary 图书中的分类摘要
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// BookResponse 图书响应，列表和详情共用
type BookResponse struct {
	ID            uint              `json:"id" example:"1"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Price         string            `json:"price" example:"59.90"`
	ISBN13        *string           `json:"isbn13"`
	Publisher     string            `json:"publisher"`
	PublishedDate *Date             `json:"published_date" swaggertype:"string"`
	StockCnt      int               `json:"stock_cnt"`
	Status        string            `json:"status" example:"ACTIVE"`
	Author        *AuthorSummary    `json:"author"`
	Categories    []CategorySummary `json:"categories"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) BookResponse {
	resp := BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		Price:         b.Price.StringFixed(2),
		ISBN13:        b.ISBN13,
		Publisher:     b.Publisher,
		PublishedDate: DateFrom(b.PublishedDate),
		StockCnt:      b.StockCnt,
		Status:        b.Status,
		Categories:    make([]CategorySummary, 0, len(b.Categories)),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.Author != nil {
		resp.Author = &AuthorSummary{ID: b.Author.ID, Name: b.Author.Name}
	}
	for _, c := range b.Categories {
		resp.Categories = append(resp.Categories, CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return resp
}

// NewBookListResponse 图书列表
func NewBookListResponse(books []*book.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}
