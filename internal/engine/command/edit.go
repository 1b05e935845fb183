package command

import (
	"fmt"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/history"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
)

// EditCommand assigns one field of one item.
type EditCommand[T comparable, V comparable] struct {
	target Target[T]
	at     indexset.Pair
	field  Field[T, V]
	old    V
	new    V
}

// NewEdit creates a command setting field of the item at index to value.
// Returns nil if index is out of range or the field already holds value.
func NewEdit[T comparable, V comparable](t Target[T], parent, index int, field Field[T, V], value V) *EditCommand[T, V] {
	old, ok := currentValue(t, parent, index, field)
	if !ok || old == value {
		return nil
	}
	return &EditCommand[T, V]{
		target: t,
		at:     indexset.Pair{Parent: parent, Child: index},
		field:  field,
		old:    old,
		new:    value,
	}
}

func currentValue[T comparable, V comparable](t Target[T], parent, index int, field Field[T, V]) (V, bool) {
	var zero V
	l := t.List(parent)
	if l == nil || index < 0 || index >= l.Len() {
		return zero, false
	}
	return field.get(l.At(index)), true
}

// Redo assigns the new value.
func (c *EditCommand[T, V]) Redo() { c.assign(c.new) }

// Undo assigns the old value.
func (c *EditCommand[T, V]) Undo() { c.assign(c.old) }

func (c *EditCommand[T, V]) assign(v V) {
	c.write(v)
	c.target.Touch()
}

// write sets the field and notifies views without touching the target.
func (c *EditCommand[T, V]) write(v V) {
	mustList(c.target, c.at.Parent).Update(c.at.Child, func(item *T) {
		*c.field.Ref(item) = v
	})
	c.target.Notifier().DataChanged(c.at.Parent, c.at.Child)
}

// Description returns a human-readable description.
func (c *EditCommand[T, V]) Description() string {
	return "Edit " + c.field.label()
}

// At returns the position of the edited item.
func (c *EditCommand[T, V]) At() indexset.Pair { return c.at }

// Field returns the edited field.
func (c *EditCommand[T, V]) Field() Field[T, V] { return c.field }

// Old returns the value before the edit.
func (c *EditCommand[T, V]) Old() V { return c.old }

// New returns the value after the edit.
func (c *EditCommand[T, V]) New() V { return c.new }

// MergeCommand is an EditCommand that absorbs directly following edits of
// the same field, so a continuous gesture becomes a single undo step.
type MergeCommand[T comparable, V comparable] struct {
	EditCommand[T, V]
	first bool
}

var _ history.Mergeable = (*MergeCommand[int, int])(nil)

// NewEditMerge creates a mergeable edit. A command created with first set
// starts a new gesture and never merges into the command before it.
func NewEditMerge[T comparable, V comparable](t Target[T], parent, index int, field Field[T, V], value V, first bool) *MergeCommand[T, V] {
	e := NewEdit(t, parent, index, field, value)
	if e == nil {
		return nil
	}
	return &MergeCommand[T, V]{EditCommand: *e, first: first}
}

// First reports whether the command starts a gesture.
func (c *MergeCommand[T, V]) First() bool { return c.first }

// MergeWith absorbs next if it continues this edit: same target, item and
// field, not the start of a new gesture, and starting from this command's
// new value.
func (c *MergeCommand[T, V]) MergeWith(next history.Command) bool {
	o, ok := next.(*MergeCommand[T, V])
	if !ok || o.first {
		return false
	}
	if o.target != c.target || o.at != c.at || o.field.Name != c.field.Name || o.old != c.new {
		return false
	}
	c.new = o.new
	return true
}

// IncompleteCommand is an edit whose value is still being chosen.
//
// The caller previews values with SetValue and Redo. When the gesture ends
// the command is either recorded and pushed, if HasChanged, or undone once
// and dropped. Previews only notify views; the target is touched once the
// command has been recorded.
type IncompleteCommand[T comparable, V comparable] struct {
	EditCommand[T, V]
	recorded bool
}

// NewIncomplete creates an edit of field whose new value starts out equal
// to the current one. Returns nil if index is out of range.
func NewIncomplete[T comparable, V comparable](t Target[T], parent, index int, field Field[T, V]) *IncompleteCommand[T, V] {
	old, ok := currentValue(t, parent, index, field)
	if !ok {
		return nil
	}
	return &IncompleteCommand[T, V]{EditCommand: EditCommand[T, V]{
		target: t,
		at:     indexset.Pair{Parent: parent, Child: index},
		field:  field,
		old:    old,
		new:    old,
	}}
}

// SetValue changes the value Redo assigns.
func (c *IncompleteCommand[T, V]) SetValue(v V) { c.new = v }

// Redo assigns the new value.
func (c *IncompleteCommand[T, V]) Redo() { c.apply(c.new) }

// Undo assigns the old value.
func (c *IncompleteCommand[T, V]) Undo() { c.apply(c.old) }

func (c *IncompleteCommand[T, V]) apply(v V) {
	if c.recorded {
		c.assign(v)
		return
	}
	c.write(v)
}

// Record ends the preview. From then on Redo and Undo touch the target like
// any other edit; call it just before pushing the command.
func (c *IncompleteCommand[T, V]) Record() { c.recorded = true }

// Recorded reports whether Record was called.
func (c *IncompleteCommand[T, V]) Recorded() bool { return c.recorded }

// HasChanged reports whether the new value differs from the original.
func (c *IncompleteCommand[T, V]) HasChanged() bool { return c.new != c.old }

// MultiEditCommand assigns one field of several items in a single step.
type MultiEditCommand[T comparable, V comparable] struct {
	target Target[T]
	field  Field[T, V]
	edits  []fieldChange[V]
}

type fieldChange[V any] struct {
	at       indexset.Pair
	old, new V
}

// NewEditMultiple creates a command applying transform to field of every
// item of indexes. Items whose value does not change are left out.
// Returns nil if nothing changes or an index is out of range.
func NewEditMultiple[T comparable, V comparable](t Target[T], parent int, indexes indexset.Set[int], field Field[T, V], transform func(V) V) *MultiEditCommand[T, V] {
	var pairs indexset.PairSet
	for _, i := range indexes.All() {
		pairs.Insert(indexset.Pair{Parent: parent, Child: i})
	}
	return NewEditPairs(t, pairs, field, transform)
}

// NewEditPairs is NewEditMultiple over a pair selection.
func NewEditPairs[T comparable, V comparable](t Target[T], pairs indexset.PairSet, field Field[T, V], transform func(V) V) *MultiEditCommand[T, V] {
	var edits []fieldChange[V]
	for _, p := range pairs.All() {
		old, ok := currentValue(t, p.Parent, p.Child, field)
		if !ok {
			return nil
		}
		if v := transform(old); v != old {
			edits = append(edits, fieldChange[V]{at: p, old: old, new: v})
		}
	}
	if len(edits) == 0 {
		return nil
	}
	return &MultiEditCommand[T, V]{target: t, field: field, edits: edits}
}

// Redo assigns the new values.
func (c *MultiEditCommand[T, V]) Redo() {
	for _, e := range c.edits {
		c.assign(e.at, e.new)
	}
	c.target.Touch()
}

// Undo assigns the old values.
func (c *MultiEditCommand[T, V]) Undo() {
	for i := len(c.edits) - 1; i >= 0; i-- {
		c.assign(c.edits[i].at, c.edits[i].old)
	}
	c.target.Touch()
}

func (c *MultiEditCommand[T, V]) assign(at indexset.Pair, v V) {
	mustList(c.target, at.Parent).Update(at.Child, func(item *T) {
		*c.field.Ref(item) = v
	})
	c.target.Notifier().DataChanged(at.Parent, at.Child)
}

// Changed returns the positions of the items the command edits.
func (c *MultiEditCommand[T, V]) Changed() indexset.PairSet {
	var s indexset.PairSet
	for _, e := range c.edits {
		s.Insert(e.at)
	}
	return s
}

// Description returns a human-readable description.
func (c *MultiEditCommand[T, V]) Description() string {
	return fmt.Sprintf("Edit %s of %d %s", c.field.label(), len(c.edits), plural(len(c.edits), "item", "items"))
}
