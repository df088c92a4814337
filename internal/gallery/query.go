package gallery

import (
	"sync"

	"imagechart/internal/entity"
)

// Allowed page sizes for the grid.
var pageSizes = map[int]bool{25: true, 50: true, 100: true}

const DefaultPageSize = 50

// pageWindow is how many page links the pager shows at once.
const pageWindow = 5

// QueryState holds the current list parameters. Changing the search
// text, the category filter or the page size always jumps back to the
// first page so the new result set is seen from the top.
type QueryState struct {
	mu       sync.Mutex
	page     int
	limit    int
	category string
	search   string
}

func NewQueryState() *QueryState {
	return &QueryState{
		page:     1,
		limit:    DefaultPageSize,
		category: entity.CategoryAll,
	}
}

// Query materializes the state into a list request.
func (q *QueryState) Query() entity.ListQuery {
	q.mu.Lock()
	defer q.mu.Unlock()
	return entity.ListQuery{
		Page:     q.page,
		Limit:    q.limit,
		Category: q.category,
		Search:   q.search,
	}
}

func (q *QueryState) Page() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.page
}

func (q *QueryState) PageSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit
}

// SetPage moves to the given page, clamping into [1, totalPages].
func (q *QueryState) SetPage(page, totalPages int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	q.page = page
}

// SetPageSize switches the rows-per-page and resets to the first page.
func (q *QueryState) SetPageSize(limit int) error {
	if !pageSizes[limit] {
		return entity.ErrInvalidPageSize
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.limit = limit
	q.page = 1
	return nil
}

// SetSearch replaces the search text and resets to the first page.
func (q *QueryState) SetSearch(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.search = text
	q.page = 1
}

// SetCategory replaces the category filter and resets to the first
// page. entity.CategoryAll disables the filter.
func (q *QueryState) SetCategory(category string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if category == "" {
		category = entity.CategoryAll
	}
	q.category = category
	q.page = 1
}

func (q *QueryState) HasPrev() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.page > 1
}

func (q *QueryState) HasNext(totalPages int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.page < totalPages
}

// PageWindow returns the run of page numbers the pager should offer,
// centered on the current page and clipped to [1, totalPages].
func (q *QueryState) PageWindow(totalPages int) []int {
	q.mu.Lock()
	page := q.page
	q.mu.Unlock()

	if totalPages < 1 {
		return nil
	}
	start := page - pageWindow/2
	if start < 1 {
		start = 1
	}
	end := start + pageWindow - 1
	if end > totalPages {
		end = totalPages
		if start = end - pageWindow + 1; start < 1 {
			start = 1
		}
	}
	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}
