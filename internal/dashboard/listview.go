package dashboard

import "strings"

// DefaultPageSize is how many rows a list page shows.
const DefaultPageSize = 10

// ListView drives a filtered, paginated list. Filtering is a case-insensitive
// substring match against the key extracted from each item; changing the
// filter snaps the view back to the first page.
type ListView[T any] struct {
	pageSize int
	keyFn    func(T) string

	items    []T
	filtered []T
	filter   string
	page     int
}

func NewListView[T any](items []T, keyFn func(T) string, pageSize int) *ListView[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	v := &ListView[T]{
		pageSize: pageSize,
		keyFn:    keyFn,
		page:     1,
	}
	v.SetItems(items)
	return v
}

// SetItems replaces the backing collection, re-applying the current filter.
// The page is clamped so the view never points past the last page.
func (v *ListView[T]) SetItems(items []T) {
	v.items = items
	v.applyFilter()
	v.clampPage()
}

// SetFilter applies a new filter query and resets to the first page. Setting
// the same query again is a no-op so a redraw does not lose the position.
func (v *ListView[T]) SetFilter(query string) {
	query = strings.TrimSpace(query)
	if query == v.filter {
		return
	}

	v.filter = query
	v.applyFilter()
	v.page = 1
}

func (v *ListView[T]) Filter() string {
	return v.filter
}

func (v *ListView[T]) Page() int {
	return v.page
}

// TotalPages is the number of pages the filtered rows span. An empty result
// still counts as one page so the view always has somewhere to stand.
func (v *ListView[T]) TotalPages() int {
	if len(v.filtered) == 0 {
		return 1
	}

	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

// Total is the filtered row count.
func (v *ListView[T]) Total() int {
	return len(v.filtered)
}

// Empty reports whether the current filter matches nothing.
func (v *ListView[T]) Empty() bool {
	return len(v.filtered) == 0
}

func (v *ListView[T]) HasPrev() bool {
	return v.page > 1
}

func (v *ListView[T]) HasNext() bool {
	return v.page < v.TotalPages()
}

// Prev moves one page back. At the first page it does nothing.
func (v *ListView[T]) Prev() {
	if v.HasPrev() {
		v.page--
	}
}

// Next moves one page forward. At the last page it does nothing.
func (v *ListView[T]) Next() {
	if v.HasNext() {
		v.page++
	}
}

// SetPage jumps to a page, clamping into the valid range.
func (v *ListView[T]) SetPage(page int) {
	v.page = page
	v.clampPage()
}

// Visible returns the rows of the current page.
func (v *ListView[T]) Visible() []T {
	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return nil
	}

	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}

	return v.filtered[start:end]
}

func (v *ListView[T]) applyFilter() {
	if v.filter == "" {
		v.filtered = v.items
		return
	}

	needle := strings.ToLower(v.filter)
	filtered := make([]T, 0, len(v.items))
	for _, item := range v.items {
		if strings.Contains(strings.ToLower(v.keyFn(item)), needle) {
			filtered = append(filtered, item)
		}
	}

	v.filtered = filtered
}

func (v *ListView[T]) clampPage() {
	if v.page < 1 {
		v.page = 1
	}
	if max := v.TotalPages(); v.page > max {
		v.page = max
	}
}
