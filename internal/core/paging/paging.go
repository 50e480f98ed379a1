// Package paging turns a page number and a view into a fetch window
package paging

import "marketbrowse/internal/core/browse"

// Fixed sizes of the browse surface
const (
	PageSize     = 24
	MaxQuerySize = 1000
	MaxPage      = MaxQuerySize / PageSize

	// ItemsMaxQuerySize caps first on the items pipeline
	ItemsMaxQuerySize = 1000
)

// Window is one fetch window over the result set
type Window struct {
	Skip     int  `json:"skip"`
	First    int  `json:"first"`
	IsAppend bool `json:"is_append"`
}

// Planner computes windows for a fixed page size
type Planner struct {
	PageSize int
	MaxPage  int
}

// Default is the planner of the browse surface
var Default = Planner{PageSize: PageSize, MaxPage: MaxPage}

// WithPageSize returns a planner for size rows per page, MaxPage is derived from MaxQuerySize
func WithPageSize(size int) Planner {
	if size < 1 {
		size = PageSize
	}
	return Planner{PageSize: size, MaxPage: MaxQuerySize / size}
}

// Plan returns the window for page in view
// load more fetches only the new page and appends, any other view refetches pages 1..page
// page < 1 is treated as 1 and maxQuerySize < 1 as MaxQuerySize
func (p Planner) Plan(page int, view browse.View, maxQuerySize int) Window {
	if page < 1 {
		page = 1
	}
	if maxQuerySize < 1 {
		maxQuerySize = MaxQuerySize
	}
	isAppend := view == browse.ViewLoadMore
	offset := 0
	if isAppend {
		offset = page - 1
	}
	skip := min(offset, p.MaxPage) * p.PageSize
	first := min(page*p.PageSize-skip, maxQuerySize)
	return Window{Skip: skip, First: first, IsAppend: isAppend}
}

// Plan plans on the Default planner
func Plan(page int, view browse.View, maxQuerySize int) Window {
	return Default.Plan(page, view, maxQuerySize)
}

// HasMorePages reports whether page+1 can be requested without overlapping loaded rows
// a full window means the upstream may hold more rows than it reported
func (p Planner) HasMorePages(loaded, count, maxQuerySize, page int) bool {
	return (loaded != count || count == maxQuerySize) && page <= p.MaxPage
}

// HasMorePages asks the Default planner
func HasMorePages(loaded, count, maxQuerySize, page int) bool {
	return Default.HasMorePages(loaded, count, maxQuerySize, page)
}
