package collection

import "fmt"

// Namer is implemented by items stored in a Named collection.
type Namer interface {
	comparable
	Name() string
}

// Named is an ordered list with a name to index lookup.
// The lookup is rebuilt after every structural change and every update,
// so it always matches current positions.
type Named[T Namer] struct {
	list  Ordered[T]
	index map[string]int
}

// NewNamed creates a named list holding a copy of items.
func NewNamed[T Namer](items ...T) *Named[T] {
	n := &Named[T]{list: Ordered[T]{items: append([]T(nil), items...)}}
	n.rebuild()
	return n
}

// Len returns the number of items.
func (n *Named[T]) Len() int { return n.list.Len() }

// At returns the item at i.
func (n *Named[T]) At(i int) T { return n.list.At(i) }

// Items returns a copy of the items.
func (n *Named[T]) Items() []T { return n.list.Items() }

// Insert places v at position i.
func (n *Named[T]) Insert(i int, v T) {
	n.list.Insert(i, v)
	n.rebuild()
}

// Remove deletes and returns the item at i.
func (n *Named[T]) Remove(i int) T {
	v := n.list.Remove(i)
	n.rebuild()
	return v
}

// Move relocates the item at from to position to.
func (n *Named[T]) Move(from, to int) {
	n.list.Move(from, to)
	n.rebuild()
}

// Update modifies the item at i in place.
func (n *Named[T]) Update(i int, fn func(*T)) {
	n.list.Update(i, fn)
	n.rebuild()
}

// Find returns the index of the item called name.
func (n *Named[T]) Find(name string) (int, bool) {
	i, ok := n.index[name]
	return i, ok
}

// Contains reports whether an item called name exists.
func (n *Named[T]) Contains(name string) bool {
	_, ok := n.index[name]
	return ok
}

// Validate checks that every name is unique.
func (n *Named[T]) Validate() error {
	seen := make(map[string]int, n.list.Len())
	for i, v := range n.list.items {
		if j, ok := seen[v.Name()]; ok {
			return fmt.Errorf("items %d and %d named %q: %w", j, i, v.Name(), ErrDuplicateName)
		}
		seen[v.Name()] = i
	}
	return nil
}

func (n *Named[T]) rebuild() {
	n.index = make(map[string]int, n.list.Len())
	for i, v := range n.list.items {
		if _, ok := n.index[v.Name()]; !ok {
			n.index[v.Name()] = i
		}
	}
}
