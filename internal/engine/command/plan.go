package command

import (
	"fmt"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
)

// Direction selects how a batch move repositions the selected items.
type Direction int

const (
	// Raise moves every selected item up by one.
	Raise Direction = iota

	// Lower moves every selected item down by one.
	Lower

	// RaiseToTop moves the selected items to the start of the list,
	// keeping their relative order.
	RaiseToTop

	// LowerToBottom moves the selected items to the end of the list,
	// keeping their relative order.
	LowerToBottom
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Raise:
		return "raise"
	case Lower:
		return "lower"
	case RaiseToTop:
		return "raise to top"
	case LowerToBottom:
		return "lower to bottom"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) verb() string {
	switch d {
	case Raise:
		return "Raise"
	case Lower:
		return "Lower"
	case RaiseToTop:
		return "Raise to top"
	case LowerToBottom:
		return "Lower to bottom"
	default:
		return "Move"
	}
}

// Step is a single move of one item within a list.
type Step struct {
	Parent int
	From   int
	To     int
}

// inverse returns the step that undoes s.
func (s Step) inverse() Step {
	return Step{Parent: s.Parent, From: s.To, To: s.From}
}

// inRange reports whether every index of set lies in [0, size).
func inRange(set indexset.Set[int], size int) bool {
	return !set.IsEmpty() && set.Front() >= 0 && set.Back() < size
}

// PlanMoves computes the steps that move the indexes of set in the list
// of parent, which holds size items.
//
// Steps are ordered for sequential application: ascending for Raise and
// RaiseToTop, descending for Lower and LowerToBottom. Moves that would not
// change a position are skipped. It returns false if the move is declined:
// the set is empty or out of range, the items are already against the
// edge they move towards, or no step remains.
func PlanMoves(parent int, set indexset.Set[int], size int, dir Direction) ([]Step, bool) {
	if !inRange(set, size) {
		return nil, false
	}

	var steps []Step
	switch dir {
	case Raise:
		if set.Front() <= 0 {
			return nil, false
		}
		for _, i := range set.All() {
			steps = append(steps, Step{Parent: parent, From: i, To: i - 1})
		}

	case Lower:
		if set.Back()+1 >= size {
			return nil, false
		}
		for _, i := range set.Backward() {
			steps = append(steps, Step{Parent: parent, From: i, To: i + 1})
		}

	case RaiseToTop:
		for k, i := range set.All() {
			if i != k {
				steps = append(steps, Step{Parent: parent, From: i, To: k})
			}
		}

	case LowerToBottom:
		k := 0
		for _, i := range set.Backward() {
			if to := size - 1 - k; i != to {
				steps = append(steps, Step{Parent: parent, From: i, To: to})
			}
			k++
		}

	default:
		return nil, false
	}

	if len(steps) == 0 {
		return nil, false
	}
	return steps, true
}

// PlanPairMoves runs PlanMoves for every parent of pairs. Parents whose
// move is declined are skipped. It returns false only if no parent
// produced a step.
func PlanPairMoves(pairs indexset.PairSet, size func(parent int) int, dir Direction) ([]Step, bool) {
	var steps []Step
	for parent, children := range pairs.Groups() {
		s, ok := PlanMoves(parent, children, size(parent), dir)
		if ok {
			steps = append(steps, s...)
		}
	}
	if len(steps) == 0 {
		return nil, false
	}
	return steps, true
}

// PlanClones returns the insert positions of the copies made by cloning
// the indexes of set: the i-th smallest index is copied to index+i+1,
// directly after its (already shifted) original. Positions are ascending.
// It returns false if set is empty or out of range.
func PlanClones(set indexset.Set[int], size int) ([]int, bool) {
	if !inRange(set, size) {
		return nil, false
	}
	out := make([]int, 0, set.Len())
	for i, idx := range set.All() {
		out = append(out, idx+i+1)
	}
	return out, true
}
