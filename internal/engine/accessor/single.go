package accessor

import (
	"go.uber.org/zap"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/command"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/notify"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/selection"
)

// Single edits a list through a single-item selection.
//
// The list edited is the one of the selection's parent, notify.NoParent
// for flat lists. Retargeting the parent clears the selection.
type Single[T comparable] struct {
	core[T]
	sel *selection.Single
}

// NewSingle creates an accessor for the lists of src.
func NewSingle[T comparable](res Resource, src Source[T], opts ...Option) *Single[T] {
	a := &Single[T]{core: newCore(res, src, opts)}
	a.sel = selection.NewSingle(a.Notifier(), notify.NoParent, a.Size)
	return a
}

// Selection returns the selection model.
func (a *Single[T]) Selection() *selection.Single { return a.sel }

// Parent returns the parent of the edited list.
func (a *Single[T]) Parent() int { return a.sel.Parent() }

// SetParent switches to the list of parent and clears the selection.
func (a *Single[T]) SetParent(parent int) { a.sel.SetParent(parent) }

// Select selects the item at i. An out of range index clears the selection.
func (a *Single[T]) Select(i int) { a.sel.Select(i) }

// Selected returns the selected index.
func (a *Single[T]) Selected() (int, bool) {
	i, ok := a.sel.Selected().Get()
	if !ok || i >= a.Size(a.Parent()) {
		return 0, false
	}
	return i, true
}

// Close detaches the selection from the notifier.
func (a *Single[T]) Close() { a.sel.Close() }

// Add inserts value after the selected item, or at the end if nothing is
// selected, and selects it.
func (a *Single[T]) Add(value T) bool {
	index := a.Size(a.Parent())
	if i, ok := a.Selected(); ok {
		index = i + 1
	}
	return a.AddAt(index, value)
}

// AddAt inserts value at index and selects it.
func (a *Single[T]) AddAt(index int, value T) bool {
	parent := a.Parent()
	cmd := command.NewAdd(a.target(), parent, index, value)
	if cmd == nil {
		return a.declined("add", zap.Int("index", index))
	}
	if a.duplicatesName(parent, func(items []T) []T { return append(items, value) }) {
		return a.declined("add", zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	a.sel.Select(index)
	return true
}

// Clone inserts a copy of the selected item after it and selects the copy.
func (a *Single[T]) Clone() bool {
	i, ok := a.Selected()
	if !ok {
		return a.declined("clone")
	}
	parent := a.Parent()
	cmd := command.NewClone(a.target(), parent, i)
	if cmd == nil {
		return a.declined("clone", zap.Int("index", i))
	}
	if a.duplicatesName(parent, func(items []T) []T { return append(items, items[i]) }) {
		return a.declined("clone", zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	a.sel.Select(i + 1)
	return true
}

// Remove deletes the selected item.
func (a *Single[T]) Remove() bool {
	i, ok := a.Selected()
	if !ok {
		return a.declined("remove")
	}
	cmd := command.NewRemove(a.target(), a.Parent(), i)
	if cmd == nil {
		return a.declined("remove", zap.Int("index", i))
	}
	a.push(cmd)
	return true
}

// Raise moves the selected item up by one.
func (a *Single[T]) Raise() bool { return a.moveSelected(command.Raise) }

// Lower moves the selected item down by one.
func (a *Single[T]) Lower() bool { return a.moveSelected(command.Lower) }

// RaiseToTop moves the selected item to the start of the list.
func (a *Single[T]) RaiseToTop() bool { return a.moveSelected(command.RaiseToTop) }

// LowerToBottom moves the selected item to the end of the list.
func (a *Single[T]) LowerToBottom() bool { return a.moveSelected(command.LowerToBottom) }

func (a *Single[T]) moveSelected(dir command.Direction) bool {
	i, ok := a.Selected()
	if !ok {
		return a.declined(dir.String())
	}
	cmd := command.NewMoveMultiple(a.target(), a.Parent(), indexset.New(i), dir)
	if cmd == nil {
		return a.declined(dir.String(), zap.Int("index", i))
	}
	a.push(cmd)
	return true
}

// MoveTo moves the selected item so that it ends up at to.
func (a *Single[T]) MoveTo(to int) bool {
	i, ok := a.Selected()
	if !ok {
		return a.declined("move")
	}
	cmd := command.NewMove(a.target(), a.Parent(), i, to)
	if cmd == nil {
		return a.declined("move", zap.Int("from", i), zap.Int("to", to))
	}
	a.push(cmd)
	return true
}

// Status reports the actions available for the selection.
func (a *Single[T]) Status() ListActionStatus {
	var sel indexset.Set[int]
	if i, ok := a.sel.Selected().Get(); ok {
		sel.Insert(i)
	}
	return a.setStatus(a.Parent(), sel)
}

// CopySelected encodes the selected item for the clipboard.
func (a *Single[T]) CopySelected() ([]byte, error) {
	var indexes []int
	if i, ok := a.Selected(); ok {
		indexes = append(indexes, i)
	}
	return a.copyItems(a.Parent(), indexes)
}
