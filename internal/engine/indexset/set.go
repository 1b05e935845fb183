// Package indexset provides sorted, duplicate-free index containers.
//
// Selections and batch edits address items through these sets. Iteration
// order is always ascending, and the batch move algorithms rely on it:
// raising walks a set front to back, lowering walks it back to front.
//
//	s := indexset.New(5, 1, 3, 1) // {1, 3, 5}
//	s.Insert(2)                   // {1, 2, 3, 5}
//	for i, idx := range s.Backward() { ... }
//
// Set is backed by a sorted slice; inserts and lookups binary search it.
package indexset

import (
	"cmp"
	"iter"
	"slices"
)

// Set is a sorted set of unique values.
// The zero value is an empty set ready to use.
type Set[T cmp.Ordered] struct {
	items []T
}

// New creates a set from values, sorting them and removing duplicates.
func New[T cmp.Ordered](values ...T) Set[T] {
	items := slices.Clone(values)
	slices.Sort(items)
	return Set[T]{items: slices.Compact(items)}
}

// Len returns the number of values in the set.
func (s Set[T]) Len() int {
	return len(s.items)
}

// IsEmpty returns true if the set has no values.
func (s Set[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// At returns the i-th smallest value.
func (s Set[T]) At(i int) T {
	return s.items[i]
}

// Front returns the smallest value.
// Panics on an empty set.
func (s Set[T]) Front() T {
	return s.items[0]
}

// Back returns the largest value.
// Panics on an empty set.
func (s Set[T]) Back() T {
	return s.items[len(s.items)-1]
}

// Contains reports whether v is in the set.
func (s Set[T]) Contains(v T) bool {
	_, found := slices.BinarySearch(s.items, v)
	return found
}

// Insert adds v, keeping the set sorted.
// Returns false if v was already present.
func (s *Set[T]) Insert(v T) bool {
	i, found := slices.BinarySearch(s.items, v)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, i, v)
	return true
}

// Remove deletes v from the set.
// Returns false if v was not present.
func (s *Set[T]) Remove(v T) bool {
	i, found := slices.BinarySearch(s.items, v)
	if !found {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Clear removes all values.
func (s *Set[T]) Clear() {
	s.items = nil
}

// Values returns a copy of the values in ascending order.
func (s Set[T]) Values() []T {
	return slices.Clone(s.items)
}

// All iterates the values in ascending order with their rank.
func (s Set[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Backward iterates the values in descending order with their rank.
func (s Set[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(s.items) - 1; i >= 0; i-- {
			if !yield(i, s.items[i]) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same values.
func (s Set[T]) Equal(other Set[T]) bool {
	return slices.Equal(s.items, other.items)
}

// Map applies fn to every value. Values for which fn returns false are
// dropped, and the result is re-sorted and de-duplicated.
func (s Set[T]) Map(fn func(T) (T, bool)) Set[T] {
	out := make([]T, 0, len(s.items))
	for _, v := range s.items {
		if nv, ok := fn(v); ok {
			out = append(out, nv)
		}
	}
	slices.Sort(out)
	return Set[T]{items: slices.Compact(out)}
}

// Clone returns an independent copy of the set.
func (s Set[T]) Clone() Set[T] {
	return Set[T]{items: slices.Clone(s.items)}
}
