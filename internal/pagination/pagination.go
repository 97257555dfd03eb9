package pagination

// Meta mirrors the paging block of a CMS list response.
type Meta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// maxVisiblePages is the threshold beyond which the page list collapses to a
// window with ellipses.
const maxVisiblePages = 5

// Ellipsis marks a collapsed run in a page window.
const Ellipsis = -1

// GoToPage returns the target page clamped into [1, PageCount]. An empty
// result set pins navigation to page one.
func (m Meta) GoToPage(page int) int {
	if m.PageCount < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > m.PageCount {
		return m.PageCount
	}
	return page
}

// HasPrev reports whether a previous page exists.
func (m Meta) HasPrev() bool {
	return m.Page > 1
}

// HasNext reports whether a further page exists.
func (m Meta) HasNext() bool {
	return m.Page < m.PageCount
}

// Range returns the 1-indexed positions of the first and last item on the
// current page.
func (m Meta) Range() (start, end int) {
	if m.Total == 0 {
		return 0, 0
	}
	start = (m.Page-1)*m.PageSize + 1
	end = m.Page * m.PageSize
	if end > m.Total {
		end = m.Total
	}
	return start, end
}

// Window returns the truncated page-number list: every page when the count
// fits, otherwise the first page, a +-1 window around the current page and
// the last page, with Ellipsis filling the collapsed runs.
func (m Meta) Window() []int {
	if m.PageCount < 1 {
		return nil
	}
	if m.PageCount <= maxVisiblePages {
		pages := make([]int, m.PageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := []int{1}
	if m.Page > 3 {
		pages = append(pages, Ellipsis)
	}

	start := m.Page - 1
	if start < 2 {
		start = 2
	}
	end := m.Page + 1
	if end > m.PageCount-1 {
		end = m.PageCount - 1
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	if m.Page < m.PageCount-2 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, m.PageCount)
}
