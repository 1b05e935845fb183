package collection

import "fmt"

// Nested is an ordered sequence of parents, each owning one child list.
// A (parent, child) pair addresses a leaf item.
type Nested[T comparable] struct {
	parents []*Ordered[T]
}

// NewNested creates a nested collection with one parent per children slice.
func NewNested[T comparable](children ...[]T) *Nested[T] {
	n := &Nested[T]{}
	for _, c := range children {
		n.parents = append(n.parents, NewOrdered(c...))
	}
	return n
}

// ParentCount returns the number of parents.
func (n *Nested[T]) ParentCount() int {
	return len(n.parents)
}

// Children returns the child list of parent, or nil if parent is out of range.
func (n *Nested[T]) Children(parent int) *Ordered[T] {
	if parent < 0 || parent >= len(n.parents) {
		return nil
	}
	return n.parents[parent]
}

// ChildCount returns the number of children of parent, or 0 if parent is
// out of range.
func (n *Nested[T]) ChildCount(parent int) int {
	if c := n.Children(parent); c != nil {
		return c.Len()
	}
	return 0
}

// At returns the child at (parent, child).
func (n *Nested[T]) At(parent, child int) T {
	c := n.Children(parent)
	if c == nil {
		panic(fmt.Errorf("collection: parent %d (count %d): %w", parent, len(n.parents), ErrIndexOutOfRange))
	}
	return c.At(child)
}

// AppendParent adds a new parent with a fresh child list holding children.
// Parents are document structure and are not edited through commands.
func (n *Nested[T]) AppendParent(children ...T) int {
	n.parents = append(n.parents, NewOrdered(children...))
	return len(n.parents) - 1
}

// Snapshot returns a copy of every child list.
func (n *Nested[T]) Snapshot() [][]T {
	out := make([][]T, len(n.parents))
	for i, p := range n.parents {
		out[i] = p.Items()
	}
	return out
}
