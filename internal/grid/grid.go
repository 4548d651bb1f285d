// Package grid implements the generic list contract shared by every admin
// page: client-side search, per-column filtering, sorting and pagination over
// an arbitrary row type. The grid owns no persistence; the host refetches
// rows after any mutation and calls SetRows.
package grid

import (
	"sort"
	"strings"
)

// FilterAll is the sentinel filter value that clears a column filter.
const FilterAll = "all"

// DefaultPageSize is used when the host does not specify a page size.
const DefaultPageSize = 10

// maxPageButtons bounds the pagination window returned by PageWindow.
const maxPageButtons = 5

// Column describes one column of a grid over row type T. Value extracts the
// searchable/filterable string form of the cell; Less, when set, overrides
// the string comparison used for sorting.
type Column[T any] struct {
	Key           string
	Title         string
	Sortable      bool
	Filterable    bool
	FilterOptions []string
	Value         func(T) string
	Less          func(a, b T) bool
	Width         int
}

// Grid is a stateful view over a slice of rows. All methods are cheap enough
// to recompute the visible set on demand; nothing is cached between calls.
type Grid[T any] struct {
	columns  []Column[T]
	rows     []T
	search   string
	filters  map[string]string
	sortKey  string
	sortDesc bool
	page     int
	pageSize int
}

// New creates a grid with the given column set and page size
func New[T any](columns []Column[T], pageSize int) *Grid[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Grid[T]{
		columns:  columns,
		filters:  make(map[string]string),
		page:     1,
		pageSize: pageSize,
	}
}

// SetRows replaces the underlying data. The current page is clamped so a
// shrinking dataset never leaves the grid past the end.
func (g *Grid[T]) SetRows(rows []T) {
	g.rows = rows
	if pages := g.Pages(); g.page > pages && pages > 0 {
		g.page = pages
	}
	if g.page < 1 {
		g.page = 1
	}
}

// SetSearch sets the free-text search term and resets to the first page
func (g *Grid[T]) SetSearch(term string) {
	g.search = term
	g.page = 1
}

// Search returns the current search term
func (g *Grid[T]) Search() string {
	return g.search
}

// SetFilter sets an exact-match filter for a column. The FilterAll sentinel
// or an empty value clears the filter. Any filter change resets to page 1.
func (g *Grid[T]) SetFilter(key, value string) {
	if value == "" || value == FilterAll {
		delete(g.filters, key)
	} else {
		g.filters[key] = value
	}
	g.page = 1
}

// ClearFilters removes the search term, all column filters and the sort
func (g *Grid[T]) ClearFilters() {
	g.search = ""
	g.filters = make(map[string]string)
	g.sortKey = ""
	g.sortDesc = false
	g.page = 1
}

// ToggleSort sorts by the given column. Clicking the active column toggles
// direction; clicking another column resets to ascending. Keys that do not
// resolve to a sortable column are ignored.
func (g *Grid[T]) ToggleSort(key string) {
	col := g.column(key)
	if col == nil || !col.Sortable {
		return
	}
	if g.sortKey == key {
		g.sortDesc = !g.sortDesc
	} else {
		g.sortKey = key
		g.sortDesc = false
	}
}

// SortState returns the active sort column key and whether it is descending
func (g *Grid[T]) SortState() (string, bool) {
	return g.sortKey, g.sortDesc
}

// Rows returns the full filtered, sorted row set
func (g *Grid[T]) Rows() []T {
	visible := make([]T, 0, len(g.rows))
	for _, row := range g.rows {
		if g.matches(row) {
			visible = append(visible, row)
		}
	}

	if col := g.column(g.sortKey); col != nil && col.Sortable {
		less := col.Less
		if less == nil {
			value := col.Value
			less = func(a, b T) bool {
				return strings.Compare(value(a), value(b)) < 0
			}
		}
		// Stable sort keeps the original order for ties
		sort.SliceStable(visible, func(i, j int) bool {
			if g.sortDesc {
				return less(visible[j], visible[i])
			}
			return less(visible[i], visible[j])
		})
	}

	return visible
}

// Page returns the rows of the current page. A page past the end of the
// filtered set yields an empty slice, never an error.
func (g *Grid[T]) Page() []T {
	visible := g.Rows()
	start := (g.page - 1) * g.pageSize
	if start >= len(visible) {
		return []T{}
	}
	end := start + g.pageSize
	if end > len(visible) {
		end = len(visible)
	}
	return visible[start:end]
}

// Pages returns ceil(N/P) for the filtered row count N and page size P
func (g *Grid[T]) Pages() int {
	n := len(g.Rows())
	return (n + g.pageSize - 1) / g.pageSize
}

// Total returns the filtered row count
func (g *Grid[T]) Total() int {
	return len(g.Rows())
}

// SetPage moves to the given 1-based page. Values below 1 clamp to 1; values
// past the end are kept so the caller sees an empty page.
func (g *Grid[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	g.page = page
}

// CurrentPage returns the active 1-based page number
func (g *Grid[T]) CurrentPage() int {
	return g.page
}

// PageWindow returns at most five page numbers centered on the current page,
// recentered as the active page approaches either boundary.
func (g *Grid[T]) PageWindow() []int {
	total := g.Pages()
	if total == 0 {
		return nil
	}
	count := maxPageButtons
	if total < count {
		count = total
	}
	start := g.page - count/2
	if start < 1 {
		start = 1
	}
	if start > total-count+1 {
		start = total - count + 1
	}
	window := make([]int, count)
	for i := range window {
		window[i] = start + i
	}
	return window
}

func (g *Grid[T]) column(key string) *Column[T] {
	for i := range g.columns {
		if g.columns[i].Key == key {
			return &g.columns[i]
		}
	}
	return nil
}

func (g *Grid[T]) matches(row T) bool {
	if g.search != "" {
		term := strings.ToLower(g.search)
		found := false
		for _, col := range g.columns {
			if strings.Contains(strings.ToLower(col.Value(row)), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Column filters AND together
	for key, want := range g.filters {
		col := g.column(key)
		if col == nil {
			continue
		}
		if col.Value(row) != want {
			return false
		}
	}
	return true
}
