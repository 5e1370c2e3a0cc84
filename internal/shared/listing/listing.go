// Package listing implements the in-memory catalog listing pipeline:
// filter, then sort, then paginate over a materialized candidate set.
//
// Search normalization cannot be expressed as a storage predicate, so
// repositories hand over candidate rows and every filter and sort decision
// happens here. Swapping in a storage-side normalized column later only
// changes how candidates are produced, not this contract.
package listing

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

type Query struct {
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// Normalize clamps paging values: page < 1 becomes 1, a non-positive size
// becomes defaultSize, and sizes above maxSize are capped.
func (q Query) Normalize(defaultSize, maxSize int) Query {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultSize
	}
	if q.PageSize > maxSize {
		q.PageSize = maxSize
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	return q
}

// CompareFunc orders two items like strings.Compare.
type CompareFunc[T any] func(a, b T) int

// Spec describes how one entity kind is filtered and sorted.
type Spec[T any] struct {
	// Match reports whether item matches a non-empty search term.
	Match func(item T, term string) bool
	// Sorts maps sort keys to comparators. Keys are lower case.
	Sorts map[string]CompareFunc[T]
	// DefaultSort is used for empty or unknown sort keys.
	DefaultSort string
}

// Resolve returns the effective sort key for key.
func (s Spec[T]) Resolve(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := s.Sorts[key]; ok {
		return key
	}
	return s.DefaultSort
}

type Page[T any] struct {
	Items      []T    `json:"items"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	Search     string `json:"search,omitempty"`
	Sort       string `json:"sort"`
}

// Apply runs the pipeline. The candidates slice is not modified. A page past
// the end yields an empty Items slice with TotalCount unchanged. Callers
// enforce their own page size ceiling with Query.Normalize.
func Apply[T any](candidates []T, q Query, spec Spec[T]) Page[T] {
	q = q.Normalize(DefaultPageSize, max(q.PageSize, MaxPageSize))

	var filtered []T
	if q.Search != "" && spec.Match != nil {
		filtered = lo.Filter(candidates, func(item T, _ int) bool {
			return spec.Match(item, q.Search)
		})
	} else {
		filtered = slices.Clone(candidates)
	}

	sortKey := spec.Resolve(q.Sort)
	if cmp, ok := spec.Sorts[sortKey]; ok {
		slices.SortStableFunc(filtered, cmp)
	}

	total := len(filtered)
	items := []T{}
	// Checked before multiplying so huge page numbers cannot overflow.
	if q.Page-1 < TotalPages(total, q.PageSize) {
		start := (q.Page - 1) * q.PageSize
		items = lo.Slice(filtered, start, start+q.PageSize)
	}

	return Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: TotalPages(total, q.PageSize),
		Search:     q.Search,
		Sort:       sortKey,
	}
}

// TotalPages is ceil(total / size).
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Reverse flips a comparator.
func Reverse[T any](cmp CompareFunc[T]) CompareFunc[T] {
	return func(a, b T) int { return cmp(b, a) }
}

// Then chains comparators, falling through on ties.
func Then[T any](cmps ...CompareFunc[T]) CompareFunc[T] {
	return func(a, b T) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}
