package command

import (
	"errors"
	"fmt"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/collection"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/notify"
)

// ErrListUnavailable is the panic value wrapped when a command executes
// against a list its target no longer provides.
var ErrListUnavailable = errors.New("list unavailable")

// Target is the owner of the lists a command edits.
//
// Implementations must be comparable, normally a pointer, because merging
// compares targets to tell edits of different documents apart.
type Target[T comparable] interface {
	// List returns the list belonging to parent, or nil if there is none.
	// Flat targets are asked with notify.NoParent.
	List(parent int) collection.Mutable[T]

	// MaxSize returns the maximum number of items per list.
	// Zero or less means unbounded.
	MaxSize() int

	// Notifier returns the notifier structural events are sent to.
	Notifier() *notify.Notifier

	// Touch is called after every redo and undo.
	Touch()
}

// Field identifies one member of an item.
//
// Name distinguishes fields when merging, so two fields of the same item
// type must never share a name.
type Field[T, V any] struct {
	Name string
	Ref  func(item *T) *V
}

// Whole returns a field addressing the entire item.
func Whole[T any]() Field[T, T] {
	return Field[T, T]{
		Name: "",
		Ref:  func(item *T) *T { return item },
	}
}

func (f Field[T, V]) get(item T) V {
	return *f.Ref(&item)
}

func (f Field[T, V]) label() string {
	if f.Name == "" {
		return "item"
	}
	return f.Name
}

// mustList returns the list of parent or panics.
func mustList[T comparable](t Target[T], parent int) collection.Mutable[T] {
	l := t.List(parent)
	if l == nil {
		panic(fmt.Errorf("command: parent %d: %w", parent, ErrListUnavailable))
	}
	return l
}

// listSize returns the size of the list of parent, or -1 if there is none.
func listSize[T comparable](t Target[T], parent int) int {
	l := t.List(parent)
	if l == nil {
		return -1
	}
	return l.Len()
}

// fits reports whether a list of size can grow by n items.
func fits[T comparable](t Target[T], size, n int) bool {
	max := t.MaxSize()
	return max <= 0 || size+n <= max
}

// parentsOf returns the distinct parents of pairs in ascending order.
// pairs must be sorted.
func parentsOf(pairs []indexset.Pair) []int {
	var out []int
	for _, p := range pairs {
		if len(out) == 0 || out[len(out)-1] != p.Parent {
			out = append(out, p.Parent)
		}
	}
	return out
}

// bracket sends ListAboutToChange for every parent, runs fn and then sends
// ListChanged for every parent.
func bracket(n *notify.Notifier, parents []int, fn func()) {
	for _, p := range parents {
		n.AboutToChange(p)
	}
	fn()
	for _, p := range parents {
		n.Changed(p)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
