package accessor

import (
	"go.uber.org/zap"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/clipboard"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/command"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/notify"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/selection"
)

// Multi edits a list through a set of selected indexes.
type Multi[T comparable] struct {
	core[T]
	sel *selection.Multi
}

// NewMulti creates an accessor for the lists of src.
func NewMulti[T comparable](res Resource, src Source[T], opts ...Option) *Multi[T] {
	a := &Multi[T]{core: newCore(res, src, opts)}
	a.sel = selection.NewMulti(a.Notifier(), notify.NoParent, a.Size)
	return a
}

// Selection returns the selection model.
func (a *Multi[T]) Selection() *selection.Multi { return a.sel }

// Parent returns the parent of the edited list.
func (a *Multi[T]) Parent() int { return a.sel.Parent() }

// SetParent switches to the list of parent and clears the selection.
func (a *Multi[T]) SetParent(parent int) { a.sel.SetParent(parent) }

// Select replaces the selection.
func (a *Multi[T]) Select(indexes ...int) { a.sel.Select(indexes...) }

// Selected returns the selected indexes.
func (a *Multi[T]) Selected() indexset.Set[int] { return a.sel.Selected() }

// Close detaches the selection from the notifier.
func (a *Multi[T]) Close() { a.sel.Close() }

// insertPoint returns the position after the last selected item, or the
// end of the list.
func (a *Multi[T]) insertPoint() int {
	sel := a.sel.Selected()
	if size := a.Size(a.Parent()); !sel.IsEmpty() && sel.Back() < size {
		return sel.Back() + 1
	}
	return a.Size(a.Parent())
}

// Add inserts value after the selection and selects it.
func (a *Multi[T]) Add(value T) bool {
	return a.AddMultiple([]T{value})
}

// AddMultiple inserts values after the selection, in order, and selects
// them.
func (a *Multi[T]) AddMultiple(values []T) bool {
	parent := a.Parent()
	start := a.insertPoint()

	var indexes indexset.Set[int]
	for i := range values {
		indexes.Insert(start + i)
	}
	cmd := command.NewAddMultiple(a.target(), parent, indexes, values)
	if cmd == nil {
		return a.declined("add", zap.Int("index", start), zap.Int("count", len(values)))
	}
	if a.duplicatesName(parent, func(items []T) []T { return append(items, values...) }) {
		return a.declined("add", zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	a.sel.Select(indexes.Values()...)
	return true
}

// Clone copies every selected item to directly after its original and
// selects the copies.
func (a *Multi[T]) Clone() bool {
	parent := a.Parent()
	sel := a.sel.Selected()
	cmd := command.NewCloneMultiple(a.target(), parent, sel)
	if cmd == nil {
		return a.declined("clone", zap.Ints("indexes", sel.Values()))
	}
	if a.duplicatesName(parent, func(items []T) []T {
		for _, i := range sel.Values() {
			items = append(items, items[i])
		}
		return items
	}) {
		return a.declined("clone", zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	a.sel.Select(cmd.Positions().Children(parent).Values()...)
	return true
}

// Remove deletes the selected items.
func (a *Multi[T]) Remove() bool {
	sel := a.sel.Selected()
	cmd := command.NewRemoveMultiple(a.target(), a.Parent(), sel)
	if cmd == nil {
		return a.declined("remove", zap.Ints("indexes", sel.Values()))
	}
	a.push(cmd)
	return true
}

// Raise moves every selected item up by one.
func (a *Multi[T]) Raise() bool { return a.Move(command.Raise) }

// Lower moves every selected item down by one.
func (a *Multi[T]) Lower() bool { return a.Move(command.Lower) }

// RaiseToTop moves the selected items to the start of the list.
func (a *Multi[T]) RaiseToTop() bool { return a.Move(command.RaiseToTop) }

// LowerToBottom moves the selected items to the end of the list.
func (a *Multi[T]) LowerToBottom() bool { return a.Move(command.LowerToBottom) }

// Move moves the selected items in dir. The selection follows them.
func (a *Multi[T]) Move(dir command.Direction) bool {
	sel := a.sel.Selected()
	cmd := command.NewMoveMultiple(a.target(), a.Parent(), sel, dir)
	if cmd == nil {
		return a.declined(dir.String(), zap.Ints("indexes", sel.Values()))
	}
	a.push(cmd)
	return true
}

// Status reports the actions available for the selection.
func (a *Multi[T]) Status() ListActionStatus {
	return a.setStatus(a.Parent(), a.sel.Selected())
}

// CopySelected encodes the selected items for the clipboard.
func (a *Multi[T]) CopySelected() ([]byte, error) {
	return a.copyItems(a.Parent(), a.sel.Selected().Values())
}

// PasteAfterSelected decodes items copied from a list of the same name and
// inserts them after the selection. The pasted items become the selection.
// It returns false, with a nil error, when the list cannot take them.
func (a *Multi[T]) PasteAfterSelected(data []byte) (bool, error) {
	items, err := clipboard.Paste[T](data, a.Name())
	if err != nil {
		return false, err
	}
	h := a.History()
	h.BeginMacro("Paste")
	defer h.EndMacro()
	return a.AddMultiple(items), nil
}
