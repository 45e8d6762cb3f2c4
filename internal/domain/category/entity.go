package category

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Category 图书分类，name 和 slug 各自唯一
type Category struct {
	ID        uint
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// NewCategory 创建分类
func NewCategory(name, slug string) (*Category, error) {
	c := &Category{}
	if err := c.apply(&name, &slug); err != nil {
		return nil, err
	}
	c.CreatedAt = c.UpdatedAt
	return c, nil
}

// Update 部分更新，nil 字段保持不变
func (c *Category) Update(name, slug *string) error {
	return c.apply(name, slug)
}

func (c *Category) apply(name, slug *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if l := utf8.RuneCountInString(n); l < 1 || l > 100 {
			return ErrInvalidName
		}
		c.Name = n
	}
	if slug != nil {
		s := strings.ToLower(strings.TrimSpace(*slug))
		if len(s) > 120 || !slugPattern.MatchString(s) {
			return ErrInvalidSlug
		}
		c.Slug = s
	}
	c.UpdatedAt = time.Now()
	return nil
}
