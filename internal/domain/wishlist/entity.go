package wishlist

import (
	"time"
)

// Item 心愿单条目，同一用户同一本书最多一条有效行
type Item struct {
	ID        uint
	UserID    uint
	BookID    uint
	CreatedAt time.Time
	DeletedAt *time.Time
}

// NewItem 创建心愿单条目
func NewItem(userID, bookID uint) *Item {
	return &Item{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: time.Now(),
	}
}
