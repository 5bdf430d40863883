// Package pagination slices ordered record lists into fixed-size pages.
package pagination

import (
	"errors"
	"strconv"
)

// DefaultPerPage is the page size used by every listing view.
const DefaultPerPage = 10

var (
	ErrPageNotInteger = errors.New("page number is not an integer")
	ErrEmptyPage      = errors.New("page contains no results")
)

// Page is one slice of a paginated list together with its position.
type Page[T any] struct {
	Items       []T  `json:"object_list"`
	Number      int  `json:"number"`
	NumPages    int  `json:"num_pages"`
	Count       int  `json:"count"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NextPageNumber is only meaningful when HasNext is set.
func (p *Page[T]) NextPageNumber() int {
	return p.Number + 1
}

// PreviousPageNumber is only meaningful when HasPrevious is set.
func (p *Page[T]) PreviousPageNumber() int {
	return p.Number - 1
}

// PageRange lists 1..NumPages for templates.
func (p *Page[T]) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}

// StartIndex is the 1-based position of the first item on the page, 0 for
// an empty list.
func (p *Page[T]) StartIndex(perPage int) int {
	if p.Count == 0 {
		return 0
	}
	return (p.Number-1)*perPage + 1
}

// Paginator splits items into pages of PerPage.
type Paginator[T any] struct {
	items   []T
	perPage int
}

// New returns a paginator over items. A non-positive perPage means DefaultPerPage.
func New[T any](items []T, perPage int) *Paginator[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Paginator[T]{items: items, perPage: perPage}
}

// Count is the total number of items.
func (p *Paginator[T]) Count() int {
	return len(p.items)
}

// NumPages is never less than one; an empty list has a single empty page.
func (p *Paginator[T]) NumPages() int {
	if len(p.items) == 0 {
		return 1
	}
	return (len(p.items) + p.perPage - 1) / p.perPage
}

// Page returns page number, or ErrEmptyPage when it is out of range.
func (p *Paginator[T]) Page(number int) (*Page[T], error) {
	numPages := p.NumPages()
	if number < 1 || number > numPages {
		return nil, ErrEmptyPage
	}

	start := (number - 1) * p.perPage
	end := start + p.perPage
	if end > len(p.items) {
		end = len(p.items)
	}

	items := make([]T, end-start)
	copy(items, p.items[start:end])

	return &Page[T]{
		Items:       items,
		Number:      number,
		NumPages:    numPages,
		Count:       len(p.items),
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}, nil
}

// ParsePage parses a raw page query value.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrPageNotInteger
	}
	return n, nil
}

// GetPage never fails: a missing or non-integer value yields the first page
// and an out-of-range number yields the last one.
func (p *Paginator[T]) GetPage(raw string) *Page[T] {
	number, err := ParsePage(raw)
	if err != nil {
		number = 1
	}
	if number < 1 {
		number = p.NumPages()
	}
	if number > p.NumPages() {
		number = p.NumPages()
	}
	page, _ := p.Page(number)
	return page
}
