package storage

import "math"

const (
	// DefaultPageSize is used when size is absent or not positive
	DefaultPageSize = 10
	// MaxPageSize is the upper bound for page size
	MaxPageSize = 100
	// MaxPage keeps Page*Size and Page+1 within int
	MaxPage = math.MaxInt/MaxPageSize - 1
)

// PageRequest describes a requested page, 0-based
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest returns a clamped page request
func NewPageRequest(page, size int) PageRequest {
	if page < 0 {
		page = 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// Offset returns number of rows to skip
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page is one page of a larger result set
type Page[T any] struct {
	Items []T
	Total int64
	PageRequest
}

// NewPage creates a page for the given request
func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, PageRequest: req}
}

// TotalPages returns number of pages for the total element count
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// HasNext reports whether there is a page after this one
func (p *Page[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages()
}

// HasPrevious reports whether there is a page before this one
func (p *Page[T]) HasPrevious() bool {
	return p.Page > 0
}

// IsFirst reports whether this is the first page
func (p *Page[T]) IsFirst() bool {
	return !p.HasPrevious()
}

// IsLast reports whether this is the last page
func (p *Page[T]) IsLast() bool {
	return !p.HasNext()
}
