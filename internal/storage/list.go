package storage

import (
	"slices"

	"github.com/yndnr/canikit-go/internal/core/domain"
)

// Filter selects entities for List.
type Filter[K, V any] interface {
	Matches(key K, value V) bool
}

// Sorter orders entities for List.
type Sorter[K, V any] interface {
	Sort(entries []Entry[K, V]) []Entry[K, V]
}

// FilterFunc adapts a function to Filter.
type FilterFunc[K, V any] func(K, V) bool

func (f FilterFunc[K, V]) Matches(key K, value V) bool { return f(key, value) }

// SortFunc adapts a comparison to a stable Sorter.
type SortFunc[K, V any] func(a, b Entry[K, V]) int

func (f SortFunc[K, V]) Sort(entries []Entry[K, V]) []Entry[K, V] {
	slices.SortStableFunc(entries, f)
	return entries
}

// Reverse inverts a comparison.
func Reverse[K, V any](f SortFunc[K, V]) SortFunc[K, V] {
	return func(a, b Entry[K, V]) int { return f(b, a) }
}

// List returns one page of the entities matching every filter, ordered by
// sorter (key order when nil).
func List[K, V any](repo Queryable[K, V], filters []Filter[K, V], sorter Sorter[K, V], page, limit int) (domain.PagedResponse[Entry[K, V]], error) {
	matched, err := repo.Filter(func(k K, v V) bool {
		for _, f := range filters {
			if !f.Matches(k, v) {
				return false
			}
		}
		return true
	})
	if err != nil {
		return domain.PagedResponse[Entry[K, V]]{}, err
	}

	if sorter != nil {
		matched = sorter.Sort(matched)
	}
	return domain.NewPagedResponse(page, limit, matched), nil
}
