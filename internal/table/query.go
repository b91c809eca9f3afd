package table

import "github.com/openaccounting/oadmin/internal/calendar"

// Query describes one listing request: search, optional date window, sort and
// page.
type Query struct {
	Search string
	// SearchFields overrides the schema's default search columns.
	SearchFields []string
	DateField    string
	Window       calendar.Window
	Sort         SortState
	Page         int // 1-based; 0 means first page
	PageSize     int // 0 means no paging
}

// Page is one slice of a query result.
type Page[T any] struct {
	Rows       []T
	Total      int // rows matching before paging
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate cuts rows into pages of size and returns page n (1-based). Pages past
// the end are empty. A size of 0 returns everything as a single page.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	total := len(rows)
	if size <= 0 {
		return Page[T]{Rows: append([]T(nil), rows...), Total: total, Page: 1, PageSize: total, TotalPages: 1}
	}

	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return Page[T]{
		Rows:       append([]T(nil), rows[start:end]...),
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
	}
}

// Listing pairs a schema with the columns searched by default.
type Listing[T any] struct {
	Schema       Schema[T]
	SearchFields []string
	DefaultSort  SortState
}

// Run executes the filter, date window, sort and paginate steps in order. The
// input slice is never modified.
func (l Listing[T]) Run(rows []T, q Query) (Page[T], error) {
	fields := q.SearchFields
	if len(fields) == 0 {
		fields = l.SearchFields
	}
	out, err := l.Schema.Filter(rows, q.Search, fields...)
	if err != nil {
		return Page[T]{}, err
	}

	if q.DateField != "" && !q.Window.IsOpen() {
		out, err = l.Schema.FilterByDateWindow(out, q.DateField, q.Window)
		if err != nil {
			return Page[T]{}, err
		}
	}

	state := q.Sort
	if state.Key == "" {
		state = l.DefaultSort
	}
	if state.Direction == "" {
		state.Direction = Ascending
	}
	if state.Key != "" {
		out, err = l.Schema.Sort(out, state.Key, state.Direction)
		if err != nil {
			return Page[T]{}, err
		}
	}

	return Paginate(out, q.Page, q.PageSize), nil
}
