package kernel

// PaginationOptions carries page-based pagination parameters.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultPagination returns sane defaults (page 1, 20 items).
func DefaultPagination() PaginationOptions {
	return PaginationOptions{Page: 1, PageSize: 20}
}

// Normalize clamps pagination values into their valid ranges.
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	return p
}

// Offset returns the row offset for the current page.
func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page describes the pagination state of a result set.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
	Total  int `json:"total"`
	Pages  int `json:"total_pages"`
}

// NewPage computes pagination metadata from a total row count.
func NewPage(opts PaginationOptions, total int) Page {
	return Page{
		Number: opts.Page,
		Size:   opts.PageSize,
		Total:  total,
		Pages:  (total + opts.PageSize - 1) / opts.PageSize,
	}
}

// Paginated wraps a page of items with its pagination metadata.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}
