package accessor

import (
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/command"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
)

// ListActionStatus reports which list actions the current selection
// allows. Views use it to enable or disable their buttons.
type ListActionStatus struct {
	// SelectionValid is false when a selected index no longer exists,
	// which means the list shrank after the selection was captured.
	SelectionValid bool

	CanAdd    bool
	CanClone  bool
	CanRemove bool
	CanRaise  bool
	CanLower  bool
}

func (l *core[T]) fits(size, n int) bool {
	max := l.settings.maxSize
	return max <= 0 || size+n <= max
}

func (l *core[T]) canAdd(parent int) bool {
	c := l.source(parent)
	return c != nil && l.fits(c.Len(), 1)
}

// setStatus computes the status of a multi-selection in the list of parent.
func (l *core[T]) setStatus(parent int, sel indexset.Set[int]) ListActionStatus {
	size := l.Size(parent)
	valid := sel.IsEmpty() || (sel.Front() >= 0 && sel.Back() < size)
	inRange := !sel.IsEmpty() && valid && l.source(parent) != nil

	_, canRaise := command.PlanMoves(parent, sel, size, command.Raise)
	_, canLower := command.PlanMoves(parent, sel, size, command.Lower)

	return ListActionStatus{
		SelectionValid: valid,
		CanAdd:         l.canAdd(parent),
		CanClone:       inRange && l.fits(size, sel.Len()),
		CanRemove:      inRange,
		CanRaise:       canRaise,
		CanLower:       canLower,
	}
}

// pairStatus aggregates the status of a pair selection across every parent
// it touches. Add targets the parent of the last selected pair. Clone and
// validity need every parent to agree; remove, raise and lower need only
// one.
func (l *core[T]) pairStatus(sel indexset.PairSet) ListActionStatus {
	if sel.IsEmpty() {
		return ListActionStatus{SelectionValid: true}
	}

	st := ListActionStatus{
		SelectionValid: true,
		CanAdd:         l.canAdd(sel.At(sel.Len() - 1).Parent),
		CanClone:       true,
	}
	for parent, children := range sel.Groups() {
		p := l.setStatus(parent, children)

		st.SelectionValid = st.SelectionValid && p.SelectionValid
		st.CanClone = st.CanClone && p.CanClone
		st.CanRemove = st.CanRemove || p.CanRemove
		st.CanRaise = st.CanRaise || p.CanRaise
		st.CanLower = st.CanLower || p.CanLower
	}
	return st
}
