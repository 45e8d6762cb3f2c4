// Package pagination 把 page/size/sort 查询参数解析成确定的分页请求，并组装分页响应
//
// 解析规则：
// 1. page 非数字、缺失或小于1 时取 1
// 2. size 非数字或缺失时取默认值，超出 [1, MaxSize] 时截断（不报错）
// 3. sort 形如 "field,DIR"，DIR 不区分大小写；字段不在白名单时回退默认字段
//
// 解析永远不会失败，持久层再追加 id ASC 作为稳定排序的次级键。
package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 100

	ASC  = "ASC"
	DESC = "DESC"
)

// Options 每个列表接口各自的分页配置
type Options struct {
	DefaultSize int
	MaxSize     int
	DefaultSort string
	DefaultDir  string
	Sortable    []string
}

// Request 解析后的分页请求
type Request struct {
	Page  int
	Size  int
	Field string
	Dir   string
}

// Page 分页响应
type Page[T any] struct {
	Content       []T    `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Sort          string `json:"sort"`
}

// Parse 解析分页参数
func Parse(page, size, sort string, opts Options) Request {
	opts = opts.withDefaults()

	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p < 1 {
		p = 1
	}

	s, err := strconv.Atoi(strings.TrimSpace(size))
	switch {
	case err != nil:
		s = opts.DefaultSize
	case s < 1:
		s = 1
	case s > opts.MaxSize:
		s = opts.MaxSize
	}

	field, dir := opts.DefaultSort, opts.DefaultDir
	if sort = strings.TrimSpace(sort); sort != "" {
		parts := strings.SplitN(sort, ",", 2)
		if f := strings.TrimSpace(parts[0]); opts.sortable(f) {
			field = f
		}
		if len(parts) == 2 {
			if d := strings.ToUpper(strings.TrimSpace(parts[1])); d == ASC || d == DESC {
				dir = d
			}
		}
	}

	return Request{Page: p, Size: s, Field: field, Dir: dir}
}

// Offset SQL 偏移量
func (r Request) Offset() int {
	return (r.Page - 1) * r.Size
}

// Sort 实际生效的排序，形如 "created_at,DESC"
func (r Request) Sort() string {
	return r.Field + "," + r.Dir
}

// NewPage 组装分页响应，totalPages 最小为 1
func NewPage[T any](content []T, total int64, req Request) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    TotalPages(total, req.Size),
		Sort:          req.Sort(),
	}
}

// TotalPages ceil(total/size)，至少为 1
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

func (o Options) withDefaults() Options {
	if o.DefaultSize <= 0 {
		o.DefaultSize = DefaultSize
	}
	if o.MaxSize <= 0 {
		o.MaxSize = MaxSize
	}
	if o.DefaultSize > o.MaxSize {
		o.DefaultSize = o.MaxSize
	}
	if o.DefaultSort == "" {
		o.DefaultSort = "id"
	}
	if o.DefaultDir != ASC {
		o.DefaultDir = DESC
	}
	return o
}

func (o Options) sortable(field string) bool {
	if field == "" {
		return false
	}
	if field == o.DefaultSort {
		return true
	}
	for _, f := range o.Sortable {
		if f == field {
			return true
		}
	}
	return false
}
