package indexset

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"
)

// Pair addresses a child item inside a nested collection.
type Pair struct {
	Parent int
	Child  int
}

// String returns the pair as "(parent,child)".
func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.Parent, p.Child)
}

// ComparePairs orders pairs by parent, then by child.
func ComparePairs(a, b Pair) int {
	if c := cmp.Compare(a.Parent, b.Parent); c != 0 {
		return c
	}
	return cmp.Compare(a.Child, b.Child)
}

// PairSet is a sorted set of unique pairs.
// Entries sharing a parent are contiguous and ordered by child index.
type PairSet struct {
	items []Pair
}

// NewPairs creates a pair set, sorting and de-duplicating the input.
func NewPairs(pairs ...Pair) PairSet {
	items := slices.Clone(pairs)
	slices.SortFunc(items, ComparePairs)
	return PairSet{items: slices.Compact(items)}
}

// Len returns the number of pairs.
func (s PairSet) Len() int {
	return len(s.items)
}

// IsEmpty returns true if the set has no pairs.
func (s PairSet) IsEmpty() bool {
	return len(s.items) == 0
}

// At returns the i-th pair in sort order.
func (s PairSet) At(i int) Pair {
	return s.items[i]
}

// Contains reports whether p is in the set.
func (s PairSet) Contains(p Pair) bool {
	_, found := slices.BinarySearchFunc(s.items, p, ComparePairs)
	return found
}

// Insert adds p. Returns false if it was already present.
func (s *PairSet) Insert(p Pair) bool {
	i, found := slices.BinarySearchFunc(s.items, p, ComparePairs)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, i, p)
	return true
}

// Remove deletes p. Returns false if it was not present.
func (s *PairSet) Remove(p Pair) bool {
	i, found := slices.BinarySearchFunc(s.items, p, ComparePairs)
	if !found {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Clear removes all pairs.
func (s *PairSet) Clear() {
	s.items = nil
}

// Values returns a copy of the pairs in sort order.
func (s PairSet) Values() []Pair {
	return slices.Clone(s.items)
}

// All iterates the pairs in ascending order.
func (s PairSet) All() iter.Seq2[int, Pair] {
	return func(yield func(int, Pair) bool) {
		for i, p := range s.items {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same pairs.
func (s PairSet) Equal(other PairSet) bool {
	return slices.Equal(s.items, other.items)
}

// Parents returns the distinct parent indexes in ascending order.
func (s PairSet) Parents() []int {
	var parents []int
	for _, p := range s.items {
		if len(parents) == 0 || parents[len(parents)-1] != p.Parent {
			parents = append(parents, p.Parent)
		}
	}
	return parents
}

// Children returns the child indexes selected under parent.
func (s PairSet) Children(parent int) Set[int] {
	start, _ := slices.BinarySearchFunc(s.items, Pair{Parent: parent, Child: math.MinInt}, ComparePairs)
	var children []int
	for _, p := range s.items[start:] {
		if p.Parent != parent {
			break
		}
		children = append(children, p.Child)
	}
	return Set[int]{items: children}
}

// Groups iterates the set one parent at a time, yielding the parent index
// and its selected children.
func (s PairSet) Groups() iter.Seq2[int, Set[int]] {
	return func(yield func(int, Set[int]) bool) {
		for _, parent := range s.Parents() {
			if !yield(parent, s.Children(parent)) {
				return
			}
		}
	}
}

// Map applies fn to every pair. Pairs for which fn returns false are
// dropped, and the result is re-sorted and de-duplicated.
func (s PairSet) Map(fn func(Pair) (Pair, bool)) PairSet {
	out := make([]Pair, 0, len(s.items))
	for _, p := range s.items {
		if np, ok := fn(p); ok {
			out = append(out, np)
		}
	}
	slices.SortFunc(out, ComparePairs)
	return PairSet{items: slices.Compact(out)}
}

// Clone returns an independent copy of the set.
func (s PairSet) Clone() PairSet {
	return PairSet{items: slices.Clone(s.items)}
}
