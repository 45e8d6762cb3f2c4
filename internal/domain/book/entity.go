package book

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// StatusActive 新书默认状态，status 为自由字符串
const StatusActive = "ACTIVE"

// maxPrice 与 decimal(12,2) 列对应
var maxPrice = decimal.New(1, 10)

// Book 图书实体(聚合根)
// 1. 价格使用 decimal，整个链路不经过浮点数
// 2. StockCnt 永远不为负，扣减走仓储的条件更新
// 3. 分类为多对多，CategoryIDs 是写模型，Categories 是读取时带出的摘要
type Book struct {
	ID            uint
	Title         string
	Description   string
	Price         decimal.Decimal
	ISBN13        *string
	Publisher     string
	PublishedDate *time.Time
	StockCnt      int
	Status        string
	AuthorID      uint
	CategoryIDs   []uint
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Author     *AuthorRef
	Categories []CategoryRef
}

// AuthorRef 图书展示用的作者摘要
type AuthorRef struct {
	ID   uint
	Name string
}

// CategoryRef 图书展示用的分类摘要
type CategoryRef struct {
	ID   uint
	Name string
	Slug string
}

// CreateParams 创建图书参数
type CreateParams struct {
	Title         string
	Description   string
	Price         decimal.Decimal
	ISBN13        *string
	Publisher     string
	PublishedDate *time.Time
	StockCnt      int
	Status        string
	AuthorID      uint
	CategoryIDs   []uint
}

// UpdateParams 部分更新参数，nil 表示不修改
type UpdateParams struct {
	Title         *string
	Description   *string
	Price         *decimal.Decimal
	ISBN13        *string
	Publisher     *string
	PublishedDate *time.Time
	StockCnt      *int
	Status        *string
	AuthorID      *uint
	CategoryIDs   []uint // nil 不修改，非 nil 整体替换
}

// NewBook 创建新图书(工厂方法)
func NewBook(p CreateParams) (*Book, error) {
	now := time.Now()
	b := &Book{
		Description:   p.Description,
		Publisher:     p.Publisher,
		PublishedDate: p.PublishedDate,
		AuthorID:      p.AuthorID,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := b.setTitle(p.Title); err != nil {
		return nil, err
	}
	if err := b.setPrice(p.Price); err != nil {
		return nil, err
	}
	if err := b.setStock(p.StockCnt); err != nil {
		return nil, err
	}
	if err := b.setISBN(p.ISBN13); err != nil {
		return nil, err
	}
	if p.Status != "" {
		if err := b.setStatus(p.Status); err != nil {
			return nil, err
		}
	}
	if p.AuthorID == 0 {
		return nil, ErrAuthorRequired
	}
	ids, err := normalizeCategoryIDs(p.CategoryIDs)
	if err != nil {
		return nil, err
	}
	b.CategoryIDs = ids
	return b, nil
}

// Apply 应用部分更新
func (b *Book) Apply(p UpdateParams) error {
	if p.Title != nil {
		if err := b.setTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Price != nil {
		if err := b.setPrice(*p.Price); err != nil {
			return err
		}
	}
	if p.ISBN13 != nil {
		if err := b.setISBN(p.ISBN13); err != nil {
			return err
		}
	}
	if p.Publisher != nil {
		b.Publisher = *p.Publisher
	}
	if p.PublishedDate != nil {
		b.PublishedDate = p.PublishedDate
	}
	if p.StockCnt != nil {
		if err := b.setStock(*p.StockCnt); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if err := b.setStatus(*p.Status); err != nil {
			return err
		}
	}
	if p.AuthorID != nil {
		if *p.AuthorID == 0 {
			return ErrAuthorRequired
		}
		b.AuthorID = *p.AuthorID
	}
	if p.CategoryIDs != nil {
		ids, err := normalizeCategoryIDs(p.CategoryIDs)
		if err != nil {
			return err
		}
		b.CategoryIDs = ids
	}
	b.UpdatedAt = time.Now()
	return nil
}

// HasStock 库存是否足够
func (b *Book) HasStock(quantity int) bool {
	return b.StockCnt >= quantity
}

func (b *Book) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n < 1 || n > 255 {
		return ErrInvalidTitle
	}
	b.Title = title
	return nil
}

func (b *Book) setPrice(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThanOrEqual(maxPrice) || !price.Equal(price.Round(2)) {
		return ErrInvalidPrice
	}
	b.Price = price
	return nil
}

func (b *Book) setStock(stock int) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	b.StockCnt = stock
	return nil
}

func (b *Book) setStatus(status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status == "" || len(status) > 20 {
		return ErrInvalidStatus
	}
	b.Status = status
	return nil
}

// setISBN 空字符串视为清空
func (b *Book) setISBN(isbn *string) error {
	if isbn == nil {
		b.ISBN13 = nil
		return nil
	}
	v := strings.ReplaceAll(strings.TrimSpace(*isbn), "-", "")
	if v == "" {
		b.ISBN13 = nil
		return nil
	}
	if len(v) != 13 {
		return ErrInvalidISBN
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return ErrInvalidISBN
		}
	}
	b.ISBN13 = &v
	return nil
}

// normalizeCategoryIDs 去重并保持顺序，至少一个
func normalizeCategoryIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, ErrCategoryRequired
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			return nil, ErrCategoryRequired
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
