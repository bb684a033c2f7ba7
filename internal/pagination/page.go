package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultSize = 10
	MaxSize     = 50
)

// Sortable post fields exposed to callers, mapped to storage field names.
var sortFields = map[string]string{
	"date":  "created_at",
	"title": "title",
}

// Sort is a single ordering criterion
type Sort struct {
	Field string // storage field name
	Desc  bool
}

// DateDesc is the reverse-chronological order used by feeds and listings.
func DateDesc() Sort {
	return Sort{Field: "created_at", Desc: true}
}

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
	Sort   *Sort // nil when the caller did not ask for an order
}

func FirstPage() Page {
	return Page{Number: 1, Size: DefaultSize}
}

// Parse builds a Page from raw query values ("page", "size", "sort=date,desc").
// Invalid values fall back to the defaults.
func Parse(page, size, sort string) Page {
	p := FirstPage()
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Number = n
	}
	if n, err := strconv.Atoi(size); err == nil && n >= 1 && n <= MaxSize {
		p.Size = n
	}
	p.Sort = parseSort(sort)
	return p
}

func parseSort(raw string) *Sort {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	field, ok := sortFields[strings.ToLower(strings.TrimSpace(parts[0]))]
	if !ok {
		return nil
	}
	s := &Sort{Field: field}
	if len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		s.Desc = true
	}
	return s
}

// WithSort returns a copy of p ordered by s
func (p Page) WithSort(s Sort) Page {
	p.Sort = &s
	return p
}

// SortOrDefault returns the requested order, or date descending when none was given.
func (p Page) SortOrDefault() Sort {
	if p.Sort == nil {
		return DateDesc()
	}
	return *p.Sort
}

func (p Page) Offset() int64 {
	return int64((p.Number - 1) * p.Size)
}

func (p Page) Limit() int64 {
	return int64(p.Size)
}

// Result is one page of items plus totals for the meta block
type Result[T any] struct {
	Items      []T
	TotalItems int64
	Page       Page
}

// Empty returns a result with no items for page p
func Empty[T any](p Page) *Result[T] {
	return &Result[T]{Items: []T{}, Page: p}
}

func (r *Result[T]) TotalPages() int {
	if r.Page.Size == 0 {
		return 0
	}
	return int(math.Ceil(float64(r.TotalItems) / float64(r.Page.Size)))
}

func (r *Result[T]) HasNext() bool {
	return r.Page.Number < r.TotalPages()
}

func (r *Result[T]) HasPrevious() bool {
	return r.Page.Number > 1
}
