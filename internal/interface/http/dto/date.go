package dto

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout 出版日期、生日的格式
const DateLayout = "2006-01-02"

// Date 只有日期部分的 JSON 字段，格式 YYYY-MM-DD
type Date struct {
	time.Time
}

// UnmarshalJSON null 和空字符串视为未填写
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %q", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON 零值输出 null
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// Ptr 未填写时返回 nil
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// DateFrom 领域层的可空日期转成响应字段
func DateFrom(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}
