// Package listing is the one shared filter/sort/paginate utility for list
// views. Pages declare predicates and comparators instead of re-implementing
// the loop per screen.
package listing

import "sort"

type Predicate[T any] func(T) bool

type Comparator[T any] func(a, b T) bool

// Filter returns the items matching every predicate, preserving order.
func Filter[T any](items []T, predicates ...Predicate[T]) []T {
	if len(predicates) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, pred := range predicates {
			if !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// Sort orders items by the comparator, stably, in place.
func Sort[T any](items []T, less Comparator[T]) {
	if less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}

// Descending inverts a comparator.
func Descending[T any](less Comparator[T]) Comparator[T] {
	return func(a, b T) bool {
		return less(b, a)
	}
}

// Page slices [offset, offset+limit) with clamping; limit <= 0 means all.
func Page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// Apply runs filter, sort, and pagination in one pass over a copy, leaving the
// input slice untouched.
func Apply[T any](items []T, less Comparator[T], limit, offset int, predicates ...Predicate[T]) []T {
	filtered := Filter(items, predicates...)
	if len(predicates) == 0 {
		// Filter returned the input; copy before sorting in place.
		filtered = append([]T(nil), items...)
	}
	Sort(filtered, less)
	return Page(filtered, limit, offset)
}
