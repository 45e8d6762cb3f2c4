package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item 购物车行
// 同一用户同一本书最多一条有效行，重复加入时累加数量并刷新价格快照
type Item struct {
	ID        uint
	UserID    uint
	BookID    uint
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewItem 创建购物车行
func NewItem(userID, bookID uint, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now()
	return &Item{
		UserID:    userID,
		BookID:    bookID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Merge 合并重复加入
func (i *Item) Merge(quantity int, unitPrice decimal.Decimal) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i.Quantity += quantity
	i.UnitPrice = unitPrice
	i.UpdatedAt = time.Now()
	return nil
}

// SetQuantity 修改数量
func (i *Item) SetQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}
