package app

import "hawaii_tourism/internal/domain"

// Page size bounds match the CMS GraphQL plugin (defaultLimit/maxLimit).
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Paginate slices items for a 1-based page and reports the resulting meta.
// A page past the end yields an empty, non-nil slice.
func Paginate[T any](items []T, page, pageSize int) ([]T, domain.Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	total := len(items)
	meta := domain.Pagination{
		Page:      page,
		PageSize:  pageSize,
		PageCount: (total + pageSize - 1) / pageSize,
		Total:     total,
	}
	// compare page numbers before multiplying so a huge page cannot overflow
	if page > meta.PageCount {
		return []T{}, meta
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], meta
}
