package author

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Author 作者
// 作者和分类属于参考数据，删除为物理删除
type Author struct {
	ID        uint
	Name      string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者
func NewAuthor(name, bio string) (*Author, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Author{
		Name:      name,
		Bio:       bio,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update 部分更新，nil 字段保持不变
func (a *Author) Update(name, bio *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if err := validateName(n); err != nil {
			return err
		}
		a.Name = n
	}
	if bio != nil {
		a.Bio = *bio
	}
	a.UpdatedAt = time.Now()
	return nil
}

func validateName(name string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 150 {
		return ErrInvalidName
	}
	return nil
}
