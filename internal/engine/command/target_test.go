package command

import (
	"fmt"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/collection"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/notify"
)

// testTarget is a Target backed by a map of ordered lists.
type testTarget[T comparable] struct {
	lists   map[int]*collection.Ordered[T]
	max     int
	n       *notify.Notifier
	touched int
	events  []string
}

func newFlatTarget[T comparable](items ...T) *testTarget[T] {
	return newTarget(map[int][]T{notify.NoParent: items})
}

func newTarget[T comparable](lists map[int][]T) *testTarget[T] {
	t := &testTarget[T]{
		lists: make(map[int]*collection.Ordered[T]),
		n:     notify.New(),
	}
	for p, items := range lists {
		t.lists[p] = collection.NewOrdered(items...)
	}
	t.n.Subscribe(func(c notify.Change) {
		t.events = append(t.events, describe(c))
	})
	return t
}

func describe(c notify.Change) string {
	switch c.Kind {
	case notify.ItemAdded, notify.ItemAboutToBeRemoved, notify.DataChanged:
		return fmt.Sprintf("%s %d:%d", c.Kind, c.Parent, c.Index)
	case notify.ItemMoved:
		return fmt.Sprintf("%s %d:%d>%d", c.Kind, c.Parent, c.From, c.To)
	case notify.ItemMovedAcross:
		return fmt.Sprintf("%s %s>%s", c.Kind, c.Source(), c.Destination())
	default:
		return fmt.Sprintf("%s %d", c.Kind, c.Parent)
	}
}

func (t *testTarget[T]) List(parent int) collection.Mutable[T] {
	l, ok := t.lists[parent]
	if !ok {
		return nil
	}
	return l
}

func (t *testTarget[T]) MaxSize() int               { return t.max }
func (t *testTarget[T]) Notifier() *notify.Notifier { return t.n }
func (t *testTarget[T]) Touch()                     { t.touched++ }

func (t *testTarget[T]) items(parent int) []T {
	return t.lists[parent].Items()
}

func (t *testTarget[T]) size(parent int) int {
	if l, ok := t.lists[parent]; ok {
		return l.Len()
	}
	return 0
}

func (t *testTarget[T]) flat() []T {
	return t.items(notify.NoParent)
}

func (t *testTarget[T]) resetEvents() {
	t.events = nil
}
