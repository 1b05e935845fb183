package selection

import (
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
)

// The adjustment functions map a selection through one structural event.
// They are pure: the input is never modified.

// adjustAdded applies an insertion at `at` to position i.
func adjustAdded(i, at int) int {
	if i >= at {
		return i + 1
	}
	return i
}

// adjustRemoved applies a removal at `at` to position i.
// Returns false if i was the removed position.
func adjustRemoved(i, at int) (int, bool) {
	switch {
	case i == at:
		return 0, false
	case i > at:
		return i - 1, true
	default:
		return i, true
	}
}

// adjustMoved applies a move from `from` to `to` to position i.
func adjustMoved(i, from, to int) int {
	switch {
	case i == from:
		return to
	case from < i && i <= to:
		return i - 1
	case to <= i && i < from:
		return i + 1
	default:
		return i
	}
}

// AdjustAdded maps a single selection through an insertion at `at`.
func AdjustAdded(sel Index, at int) Index {
	i, ok := sel.Get()
	if !ok {
		return sel
	}
	return At(adjustAdded(i, at))
}

// AdjustRemoved maps a single selection through a removal at `at`.
// Selecting the removed item yields None.
func AdjustRemoved(sel Index, at int) Index {
	i, ok := sel.Get()
	if !ok {
		return sel
	}
	if ni, kept := adjustRemoved(i, at); kept {
		return At(ni)
	}
	return None
}

// AdjustMoved maps a single selection through a move.
func AdjustMoved(sel Index, from, to int) Index {
	i, ok := sel.Get()
	if !ok {
		return sel
	}
	return At(adjustMoved(i, from, to))
}

// AdjustSetAdded maps an index set through an insertion at `at`.
func AdjustSetAdded(s indexset.Set[int], at int) indexset.Set[int] {
	return s.Map(func(i int) (int, bool) {
		return adjustAdded(i, at), true
	})
}

// AdjustSetRemoved maps an index set through a removal at `at`.
// The removed member is dropped from the set.
func AdjustSetRemoved(s indexset.Set[int], at int) indexset.Set[int] {
	return s.Map(func(i int) (int, bool) {
		return adjustRemoved(i, at)
	})
}

// AdjustSetMoved maps an index set through a move.
func AdjustSetMoved(s indexset.Set[int], from, to int) indexset.Set[int] {
	return s.Map(func(i int) (int, bool) {
		return adjustMoved(i, from, to), true
	})
}

// AdjustPairsAdded maps a pair set through an insertion at (parent, at).
// Only entries of parent are affected.
func AdjustPairsAdded(s indexset.PairSet, parent, at int) indexset.PairSet {
	return s.Map(func(p indexset.Pair) (indexset.Pair, bool) {
		if p.Parent == parent {
			p.Child = adjustAdded(p.Child, at)
		}
		return p, true
	})
}

// AdjustPairsRemoved maps a pair set through a removal at (parent, at).
func AdjustPairsRemoved(s indexset.PairSet, parent, at int) indexset.PairSet {
	return s.Map(func(p indexset.Pair) (indexset.Pair, bool) {
		if p.Parent != parent {
			return p, true
		}
		c, kept := adjustRemoved(p.Child, at)
		p.Child = c
		return p, kept
	})
}

// AdjustPairsMoved maps a pair set through a move inside parent.
func AdjustPairsMoved(s indexset.PairSet, parent, from, to int) indexset.PairSet {
	return s.Map(func(p indexset.Pair) (indexset.Pair, bool) {
		if p.Parent == parent {
			p.Child = adjustMoved(p.Child, from, to)
		}
		return p, true
	})
}

// AdjustPairsMovedAcross maps a pair set through a child moving from one
// parent to another. The moved entry follows the item; children after the
// source position shift down and children at or after the destination
// position shift up.
func AdjustPairsMovedAcross(s indexset.PairSet, from, to indexset.Pair) indexset.PairSet {
	if from.Parent == to.Parent {
		return AdjustPairsMoved(s, from.Parent, from.Child, to.Child)
	}
	return s.Map(func(p indexset.Pair) (indexset.Pair, bool) {
		switch {
		case p == from:
			return to, true
		case p.Parent == from.Parent && p.Child > from.Child:
			p.Child--
		case p.Parent == to.Parent && p.Child >= to.Child:
			p.Child++
		}
		return p, true
	})
}
