package command

import (
	"fmt"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
)

// Placed is an item together with the position it occupies.
type Placed[T any] struct {
	At    indexset.Pair
	Value T
}

// AddCommand inserts items. Positions are final positions, applied in
// ascending order.
type AddCommand[T comparable] struct {
	target  Target[T]
	items   []Placed[T]
	parents []int
	text    string
}

func newAddCommand[T comparable](t Target[T], items []Placed[T], text string) *AddCommand[T] {
	pairs := make([]indexset.Pair, len(items))
	for i, it := range items {
		pairs[i] = it.At
	}
	return &AddCommand[T]{target: t, items: items, parents: parentsOf(pairs), text: text}
}

// NewAdd creates a command inserting value at index of the list of parent.
// Returns nil if index is outside [0, size] or the list is full.
func NewAdd[T comparable](t Target[T], parent, index int, value T) *AddCommand[T] {
	size := listSize(t, parent)
	if index < 0 || index > size || !fits(t, size, 1) {
		return nil
	}
	return newAddCommand(t, []Placed[T]{{At: indexset.Pair{Parent: parent, Child: index}, Value: value}}, "Add item")
}

// NewAddMultiple creates a command inserting values at the positions of
// indexes, where positions are the ones the items occupy after the insert.
// Returns nil if the counts differ, a position cannot be reached or the
// list would exceed its maximum size.
func NewAddMultiple[T comparable](t Target[T], parent int, indexes indexset.Set[int], values []T) *AddCommand[T] {
	size := listSize(t, parent)
	if indexes.IsEmpty() || indexes.Len() != len(values) || size < 0 || !fits(t, size, len(values)) {
		return nil
	}
	items := make([]Placed[T], 0, len(values))
	for k, i := range indexes.All() {
		if i < 0 || i > size+k {
			return nil
		}
		items = append(items, Placed[T]{At: indexset.Pair{Parent: parent, Child: i}, Value: values[k]})
	}
	return newAddCommand(t, items, fmt.Sprintf("Add %d %s", len(items), plural(len(items), "item", "items")))
}

// NewClone creates a command inserting a copy of the item at index
// directly after it.
func NewClone[T comparable](t Target[T], parent, index int) *AddCommand[T] {
	c := NewCloneMultiple(t, parent, indexset.New(index))
	if c != nil {
		c.text = "Clone item"
	}
	return c
}

// NewCloneMultiple creates a command inserting a copy of every item of
// indexes directly after its original.
// Returns nil if an index is out of range or the list would exceed its
// maximum size.
func NewCloneMultiple[T comparable](t Target[T], parent int, indexes indexset.Set[int]) *AddCommand[T] {
	items, ok := planClone(t, parent, indexes)
	if !ok {
		return nil
	}
	return newAddCommand(t, items, fmt.Sprintf("Clone %d %s", len(items), plural(len(items), "item", "items")))
}

// NewClonePairs clones the selected children of every parent of pairs.
// Returns nil if any parent cannot be cloned.
func NewClonePairs[T comparable](t Target[T], pairs indexset.PairSet) *AddCommand[T] {
	var items []Placed[T]
	for parent, children := range pairs.Groups() {
		p, ok := planClone(t, parent, children)
		if !ok {
			return nil
		}
		items = append(items, p...)
	}
	if len(items) == 0 {
		return nil
	}
	return newAddCommand(t, items, fmt.Sprintf("Clone %d %s", len(items), plural(len(items), "item", "items")))
}

func planClone[T comparable](t Target[T], parent int, indexes indexset.Set[int]) ([]Placed[T], bool) {
	l := t.List(parent)
	if l == nil {
		return nil, false
	}
	positions, ok := PlanClones(indexes, l.Len())
	if !ok || !fits(t, l.Len(), len(positions)) {
		return nil, false
	}
	items := make([]Placed[T], len(positions))
	for k, i := range indexes.All() {
		items[k] = Placed[T]{At: indexset.Pair{Parent: parent, Child: positions[k]}, Value: l.At(i)}
	}
	return items, true
}

// Redo inserts the items.
func (c *AddCommand[T]) Redo() {
	n := c.target.Notifier()
	bracket(n, c.parents, func() {
		for _, it := range c.items {
			mustList(c.target, it.At.Parent).Insert(it.At.Child, it.Value)
			n.Added(it.At.Parent, it.At.Child)
		}
	})
	c.target.Touch()
}

// Undo removes the items.
func (c *AddCommand[T]) Undo() {
	n := c.target.Notifier()
	bracket(n, c.parents, func() {
		for i := len(c.items) - 1; i >= 0; i-- {
			at := c.items[i].At
			n.AboutToBeRemoved(at.Parent, at.Child)
			mustList(c.target, at.Parent).Remove(at.Child)
		}
	})
	c.target.Touch()
}

// Description returns a human-readable description.
func (c *AddCommand[T]) Description() string { return c.text }

// Positions returns where the items are placed once the command is done.
func (c *AddCommand[T]) Positions() indexset.PairSet {
	var s indexset.PairSet
	for _, it := range c.items {
		s.Insert(it.At)
	}
	return s
}

// RemoveCommand deletes items. Items are removed in descending order and
// restored in ascending order.
type RemoveCommand[T comparable] struct {
	target  Target[T]
	items   []Placed[T]
	parents []int
	text    string
}

// NewRemove creates a command deleting the item at index.
func NewRemove[T comparable](t Target[T], parent, index int) *RemoveCommand[T] {
	c := NewRemoveMultiple(t, parent, indexset.New(index))
	if c != nil {
		c.text = "Remove item"
	}
	return c
}

// NewRemoveMultiple creates a command deleting every item of indexes.
// Returns nil if indexes is empty or out of range.
func NewRemoveMultiple[T comparable](t Target[T], parent int, indexes indexset.Set[int]) *RemoveCommand[T] {
	items, ok := captureRemoved(t, parent, indexes)
	if !ok {
		return nil
	}
	return newRemoveCommand(t, items)
}

// NewRemovePairs creates a command deleting the selected children of
// every parent of pairs. Parents whose selection is out of range are
// skipped; returns nil if no parent remains.
func NewRemovePairs[T comparable](t Target[T], pairs indexset.PairSet) *RemoveCommand[T] {
	var items []Placed[T]
	for parent, children := range pairs.Groups() {
		if p, ok := captureRemoved(t, parent, children); ok {
			items = append(items, p...)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return newRemoveCommand(t, items)
}

func newRemoveCommand[T comparable](t Target[T], items []Placed[T]) *RemoveCommand[T] {
	pairs := make([]indexset.Pair, len(items))
	for i, it := range items {
		pairs[i] = it.At
	}
	return &RemoveCommand[T]{
		target:  t,
		items:   items,
		parents: parentsOf(pairs),
		text:    fmt.Sprintf("Remove %d %s", len(items), plural(len(items), "item", "items")),
	}
}

func captureRemoved[T comparable](t Target[T], parent int, indexes indexset.Set[int]) ([]Placed[T], bool) {
	l := t.List(parent)
	if l == nil || !inRange(indexes, l.Len()) {
		return nil, false
	}
	items := make([]Placed[T], 0, indexes.Len())
	for _, i := range indexes.All() {
		items = append(items, Placed[T]{At: indexset.Pair{Parent: parent, Child: i}, Value: l.At(i)})
	}
	return items, true
}

// Redo removes the items.
func (c *RemoveCommand[T]) Redo() {
	n := c.target.Notifier()
	bracket(n, c.parents, func() {
		for i := len(c.items) - 1; i >= 0; i-- {
			at := c.items[i].At
			n.AboutToBeRemoved(at.Parent, at.Child)
			mustList(c.target, at.Parent).Remove(at.Child)
		}
	})
	c.target.Touch()
}

// Undo reinserts the items at their original positions.
func (c *RemoveCommand[T]) Undo() {
	n := c.target.Notifier()
	bracket(n, c.parents, func() {
		for _, it := range c.items {
			mustList(c.target, it.At.Parent).Insert(it.At.Child, it.Value)
			n.Added(it.At.Parent, it.At.Child)
		}
	})
	c.target.Touch()
}

// Description returns a human-readable description.
func (c *RemoveCommand[T]) Description() string { return c.text }

// MoveCommand applies a plan of moves.
type MoveCommand[T comparable] struct {
	target  Target[T]
	steps   []Step
	parents []int
	text    string
}

// NewMove creates a command moving the item at from so it ends up at to.
// Returns nil if either index is out of range or from equals to.
func NewMove[T comparable](t Target[T], parent, from, to int) *MoveCommand[T] {
	size := listSize(t, parent)
	if from == to || from < 0 || from >= size || to < 0 || to >= size {
		return nil
	}
	return &MoveCommand[T]{
		target:  t,
		steps:   []Step{{Parent: parent, From: from, To: to}},
		parents: []int{parent},
		text:    "Move item",
	}
}

// NewMoveMultiple creates a command moving the items of indexes in dir.
// Returns nil if PlanMoves declines.
func NewMoveMultiple[T comparable](t Target[T], parent int, indexes indexset.Set[int], dir Direction) *MoveCommand[T] {
	steps, ok := PlanMoves(parent, indexes, listSize(t, parent), dir)
	if !ok {
		return nil
	}
	return newMoveCommand(t, steps, dir, indexes.Len())
}

// NewMovePairs creates a command moving the selected children of every
// parent of pairs in dir. Returns nil if PlanPairMoves declines.
func NewMovePairs[T comparable](t Target[T], pairs indexset.PairSet, dir Direction) *MoveCommand[T] {
	size := func(parent int) int { return listSize(t, parent) }
	steps, ok := PlanPairMoves(pairs, size, dir)
	if !ok {
		return nil
	}
	return newMoveCommand(t, steps, dir, pairs.Len())
}

func newMoveCommand[T comparable](t Target[T], steps []Step, dir Direction, count int) *MoveCommand[T] {
	var parents []int
	for _, s := range steps {
		if len(parents) == 0 || parents[len(parents)-1] != s.Parent {
			parents = append(parents, s.Parent)
		}
	}
	return &MoveCommand[T]{
		target:  t,
		steps:   steps,
		parents: parents,
		text:    fmt.Sprintf("%s %d %s", dir.verb(), count, plural(count, "item", "items")),
	}
}

// Steps returns a copy of the planned moves.
func (c *MoveCommand[T]) Steps() []Step {
	return append([]Step(nil), c.steps...)
}

// Redo applies the steps in order.
func (c *MoveCommand[T]) Redo() {
	n := c.target.Notifier()
	bracket(n, c.parents, func() {
		for _, s := range c.steps {
			c.apply(s)
		}
	})
	c.target.Touch()
}

// Undo applies the inverse steps in reverse order.
func (c *MoveCommand[T]) Undo() {
	n := c.target.Notifier()
	bracket(n, c.parents, func() {
		for i := len(c.steps) - 1; i >= 0; i-- {
			c.apply(c.steps[i].inverse())
		}
	})
	c.target.Touch()
}

func (c *MoveCommand[T]) apply(s Step) {
	mustList(c.target, s.Parent).Move(s.From, s.To)
	c.target.Notifier().Moved(s.Parent, s.From, s.To)
}

// Description returns a human-readable description.
func (c *MoveCommand[T]) Description() string { return c.text }

// MoveAcrossCommand moves one child to a different parent.
type MoveAcrossCommand[T comparable] struct {
	target Target[T]
	from   indexset.Pair
	to     indexset.Pair
}

// NewMoveAcross creates a command moving the child at from so that it ends
// up at to. to.Child may equal the destination size to append.
// Returns nil if from is out of range, to cannot be reached, the
// destination is full, or both pairs share a parent.
func NewMoveAcross[T comparable](t Target[T], from, to indexset.Pair) *MoveAcrossCommand[T] {
	if from.Parent == to.Parent {
		return nil
	}
	src, dst := listSize(t, from.Parent), listSize(t, to.Parent)
	if from.Child < 0 || from.Child >= src || to.Child < 0 || to.Child > dst || !fits(t, dst, 1) {
		return nil
	}
	return &MoveAcrossCommand[T]{target: t, from: from, to: to}
}

// Redo moves the child from source to destination.
func (c *MoveAcrossCommand[T]) Redo() {
	c.move(c.from, c.to)
}

// Undo moves the child back.
func (c *MoveAcrossCommand[T]) Undo() {
	c.move(c.to, c.from)
}

func (c *MoveAcrossCommand[T]) move(from, to indexset.Pair) {
	n := c.target.Notifier()
	src, dst := mustList(c.target, from.Parent), mustList(c.target, to.Parent)

	n.AboutToChange(from.Parent)
	n.AboutToChange(to.Parent)
	dst.Insert(to.Child, src.Remove(from.Child))
	n.MovedAcross(from, to)
	n.Changed(from.Parent)
	n.Changed(to.Parent)

	c.target.Touch()
}

// Description returns a human-readable description.
func (c *MoveAcrossCommand[T]) Description() string {
	return fmt.Sprintf("Move item %s to %s", c.from, c.to)
}
