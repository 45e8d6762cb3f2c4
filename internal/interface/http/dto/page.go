package dto

import "github.com/xiebiao/bookstore-api/pkg/pagination"

// MapPage 转换分页内容，分页元数据保持不变
func MapPage[S, T any](p pagination.Page[S], convert func(S) T) pagination.Page[T] {
	content := make([]T, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, convert(item))
	}
	return pagination.Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Sort:          p.Sort,
	}
}
