// Package pagination is the shared listing pipeline: it turns an already
// filtered and ordered collection into one page of items plus the metadata
// templates need to render "page N of M" with next/previous links.
package pagination

import (
	"strconv"
)

// PageSize is the fixed number of items per listing page.
const PageSize = 10

// Page is one window over a collection. It is a pure view: building one has
// no side effects on the underlying slice.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }
func (p Page[T]) PrevNumber() int { return p.Number - 1 }
func (p Page[T]) NextNumber() int { return p.Number + 1 }

// Paginate returns the requested 1-based page of items. A page number past
// the last page clamps to the last page, never errors; below 1 clamps to 1.
// An empty collection yields a single empty page.
func Paginate[T any](items []T, page int) Page[T] {
	total := (len(items) + PageSize - 1) / PageSize
	if total == 0 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		TotalPages: total,
	}
}

// ParsePage maps the raw "page" query parameter to a page number.
// Absent, non-numeric or below 1 all fall back to page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
