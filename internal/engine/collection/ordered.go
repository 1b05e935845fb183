package collection

import (
	"errors"
	"fmt"
	"slices"
)

// Errors describing broken collection invariants.
//
// These are never returned. A command that reaches a collection with an
// out-of-range index means something mutated the list without going through
// the command engine, so the collection panics with an error wrapping one of
// these sentinels.
var (
	// ErrIndexOutOfRange indicates an index outside the collection bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrDuplicateName indicates two items of a named collection share a name.
	ErrDuplicateName = errors.New("duplicate name")
)

// Mutable is the list contract commands operate on.
// Ordered and Named both implement it.
type Mutable[T comparable] interface {
	Len() int
	At(i int) T
	Items() []T

	Insert(i int, v T)
	Remove(i int) T
	Move(from, to int)
	Update(i int, fn func(*T))
}

// Ordered is a mutable sequence of items addressed by position.
// The zero value is an empty list ready to use.
type Ordered[T comparable] struct {
	items []T
}

// NewOrdered creates a list holding a copy of items.
func NewOrdered[T comparable](items ...T) *Ordered[T] {
	return &Ordered[T]{items: slices.Clone(items)}
}

// Len returns the number of items.
func (l *Ordered[T]) Len() int {
	return len(l.items)
}

// At returns the item at i.
func (l *Ordered[T]) At(i int) T {
	l.check(i, len(l.items))
	return l.items[i]
}

// Items returns a copy of the items.
func (l *Ordered[T]) Items() []T {
	return slices.Clone(l.items)
}

// Insert places v at position i, shifting later items up.
// i may equal Len() to append.
func (l *Ordered[T]) Insert(i int, v T) {
	l.check(i, len(l.items)+1)
	l.items = slices.Insert(l.items, i, v)
}

// Remove deletes and returns the item at i.
func (l *Ordered[T]) Remove(i int) T {
	l.check(i, len(l.items))
	v := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return v
}

// Move relocates the item at from so that it ends up at position to.
func (l *Ordered[T]) Move(from, to int) {
	l.check(from, len(l.items))
	l.check(to, len(l.items))
	if from == to {
		return
	}
	v := l.items[from]
	if from < to {
		copy(l.items[from:to], l.items[from+1:to+1])
	} else {
		copy(l.items[to+1:from+1], l.items[to:from])
	}
	l.items[to] = v
}

// Update modifies the item at i in place.
func (l *Ordered[T]) Update(i int, fn func(*T)) {
	l.check(i, len(l.items))
	fn(&l.items[i])
}

// Set replaces the item at i.
func (l *Ordered[T]) Set(i int, v T) {
	l.check(i, len(l.items))
	l.items[i] = v
}

// Equal reports whether both lists hold equal items in the same order.
func (l *Ordered[T]) Equal(other *Ordered[T]) bool {
	return slices.Equal(l.items, other.items)
}

func (l *Ordered[T]) check(i, limit int) {
	if i < 0 || i >= limit {
		panic(fmt.Errorf("collection: index %d (size %d): %w", i, len(l.items), ErrIndexOutOfRange))
	}
}
