package paginator

// MinPage is the lowest valid page number.
const MinPage = 1

// Window is the contiguous run of page numbers shown in the navigation strip.
type Window struct {
	First int
	Last  int
}

// WindowFor returns the navigation window containing page current.
// Windows are aligned to multiples of pageSize: with a pageSize of 5, pages
// 1-5 share a window, as do 6-10, and so on. The last window is cut short at
// maxPage.
func WindowFor(current, pageSize, maxPage int) Window {
	current = max(MinPage, current)
	first := (current-1)/pageSize*pageSize + 1

	// Compared as a difference so that windows near math.MaxInt do not
	// overflow.
	last := maxPage
	if maxPage-first >= pageSize {
		last = first + pageSize - 1
	}

	return Window{First: first, Last: last}
}

// Contains reports whether page p is inside the window.
func (w Window) Contains(p int) bool {
	return p >= w.First && p <= w.Last
}

// Len returns the number of pages in the window.
func (w Window) Len() int {
	return max(0, w.Last-w.First+1)
}

// Pages returns the page numbers in the window in ascending order.
func (w Window) Pages() []int {
	pages := make([]int, 0, w.Len())
	for i := range w.Len() {
		pages = append(pages, w.First+i)
	}

	return pages
}

// MaxPageFor returns the number of pages needed to show total items,
// perPage at a time. An empty data set still has one (empty) page.
func MaxPageFor(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return MinPage
	}

	return (total-1)/perPage + 1
}

// ItemRange returns the half-open index range [start, end) of the items
// shown on page.
func ItemRange(page, perPage, total int) (int, int) {
	total = max(0, total)

	switch {
	case page < MinPage, perPage <= 0:
		return 0, 0
	case page-1 > (total-1)/perPage, total == 0:
		return total, total
	}

	start := (page - 1) * perPage

	return start, start + min(perPage, total-start)
}

// Clamp forces v into [lo, hi].
func Clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}

	return v
}
