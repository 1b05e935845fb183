package accessor

import (
	"go.uber.org/zap"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/command"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/selection"
)

// Nested edits the child lists of a nested collection through a set of
// selected (parent, child) pairs.
type Nested[T comparable] struct {
	core[T]
	sel *selection.Pairs
}

// NewNested creates an accessor for the child lists of src.
func NewNested[T comparable](res Resource, src Source[T], opts ...Option) *Nested[T] {
	a := &Nested[T]{core: newCore(res, src, opts)}
	a.sel = selection.NewPairs(a.Notifier(), a.Size)
	return a
}

// Selection returns the selection model.
func (a *Nested[T]) Selection() *selection.Pairs { return a.sel }

// Select replaces the selection.
func (a *Nested[T]) Select(pairs ...indexset.Pair) { a.sel.Select(pairs...) }

// Selected returns the selected pairs.
func (a *Nested[T]) Selected() indexset.PairSet { return a.sel.Selected() }

// Close detaches the selection from the notifier.
func (a *Nested[T]) Close() { a.sel.Close() }

// Add inserts value into the parent of the last selected pair, after its
// last selected child, and selects it.
func (a *Nested[T]) Add(value T) bool {
	sel := a.sel.Selected()
	if sel.IsEmpty() {
		return a.declined("add")
	}
	return a.AddTo(sel.At(sel.Len()-1).Parent, value)
}

// AddTo inserts value into the list of parent after its last selected
// child, or at the end, and selects it.
func (a *Nested[T]) AddTo(parent int, value T) bool {
	index := a.Size(parent)
	if children := a.sel.Selected().Children(parent); !children.IsEmpty() && children.Back() < index {
		index = children.Back() + 1
	}

	cmd := command.NewAdd(a.target(), parent, index, value)
	if cmd == nil {
		return a.declined("add", zap.Int("parent", parent), zap.Int("index", index))
	}
	if a.duplicatesName(parent, func(items []T) []T { return append(items, value) }) {
		return a.declined("add", zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	a.sel.Select(indexset.Pair{Parent: parent, Child: index})
	return true
}

// Clone copies every selected child to directly after its original and
// selects the copies. Declined unless every touched parent can take them.
func (a *Nested[T]) Clone() bool {
	sel := a.sel.Selected()
	cmd := command.NewClonePairs(a.target(), sel)
	if cmd == nil {
		return a.declined("clone", zap.Stringers("pairs", sel.Values()))
	}
	for parent, children := range sel.Groups() {
		if a.duplicatesName(parent, func(items []T) []T {
			for _, i := range children.Values() {
				items = append(items, items[i])
			}
			return items
		}) {
			return a.declined("clone", zap.String("reason", "duplicate name"))
		}
	}
	a.push(cmd)
	a.sel.Select(cmd.Positions().Values()...)
	return true
}

// Remove deletes the selected children of every parent whose selection is
// still in range.
func (a *Nested[T]) Remove() bool {
	sel := a.sel.Selected()
	cmd := command.NewRemovePairs(a.target(), sel)
	if cmd == nil {
		return a.declined("remove", zap.Stringers("pairs", sel.Values()))
	}
	a.push(cmd)
	return true
}

// Raise moves the selected children up by one within their parent.
func (a *Nested[T]) Raise() bool { return a.Move(command.Raise) }

// Lower moves the selected children down by one within their parent.
func (a *Nested[T]) Lower() bool { return a.Move(command.Lower) }

// RaiseToTop moves the selected children to the start of their parent.
func (a *Nested[T]) RaiseToTop() bool { return a.Move(command.RaiseToTop) }

// LowerToBottom moves the selected children to the end of their parent.
func (a *Nested[T]) LowerToBottom() bool { return a.Move(command.LowerToBottom) }

// Move moves the selected children of every parent in dir. Parents that
// cannot move are left alone.
func (a *Nested[T]) Move(dir command.Direction) bool {
	sel := a.sel.Selected()
	cmd := command.NewMovePairs(a.target(), sel, dir)
	if cmd == nil {
		return a.declined(dir.String(), zap.Stringers("pairs", sel.Values()))
	}
	a.push(cmd)
	return true
}

// MoveAcross moves the child at from into another parent so that it ends
// up at to.
func (a *Nested[T]) MoveAcross(from, to indexset.Pair) bool {
	cmd := command.NewMoveAcross(a.target(), from, to)
	if cmd == nil {
		return a.declined("move across", zap.Stringer("from", from), zap.Stringer("to", to))
	}
	moved := a.source(from.Parent).At(from.Child)
	if a.duplicatesName(to.Parent, func(items []T) []T { return append(items, moved) }) {
		return a.declined("move across", zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	return true
}

// Status reports the actions available for the selection.
func (a *Nested[T]) Status() ListActionStatus {
	return a.pairStatus(a.sel.Selected())
}
