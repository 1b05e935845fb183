package selection

import (
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/notify"
)

// SizeFunc returns the current size of the list belonging to parent.
// Flat lists are asked with notify.NoParent.
type SizeFunc func(parent int) int

// base holds the notifier subscription and change listeners shared by all
// selection models.
type base struct {
	size      SizeFunc
	sub       *notify.Subscription
	listeners []func()
}

func (b *base) attach(n *notify.Notifier, size SizeFunc, handle notify.Observer) {
	b.size = size
	b.sub = n.SubscribePriority(notify.PrioritySelection, handle)
}

// OnChanged registers fn to be called whenever the selection changes.
func (b *base) OnChanged(fn func()) {
	b.listeners = append(b.listeners, fn)
}

// Close detaches the model from its notifier.
func (b *base) Close() {
	b.sub.Unsubscribe()
}

func (b *base) emit() {
	for _, fn := range b.listeners {
		fn()
	}
}

// Single selects at most one item of one list.
type Single struct {
	base
	parent int
	sel    Index
}

// NewSingle creates a single selection for the list of parent.
// The model follows every change delivered by n.
func NewSingle(n *notify.Notifier, parent int, size SizeFunc) *Single {
	s := &Single{parent: parent}
	s.attach(n, size, s.handle)
	return s
}

// Parent returns the parent index of the targeted list.
func (s *Single) Parent() int { return s.parent }

// Selected returns the selected index.
func (s *Single) Selected() Index { return s.sel }

// SetParent retargets the selection to another parent's list and clears it.
func (s *Single) SetParent(parent int) {
	if parent == s.parent {
		return
	}
	s.parent = parent
	s.set(None)
}

// Select selects position i. Out-of-range positions clear the selection.
func (s *Single) Select(i int) {
	if i < 0 || i >= s.size(s.parent) {
		s.set(None)
		return
	}
	s.set(At(i))
}

// Clear removes the selection.
func (s *Single) Clear() {
	s.set(None)
}

func (s *Single) set(sel Index) {
	if sel == s.sel {
		return
	}
	s.sel = sel
	s.emit()
}

func (s *Single) handle(c notify.Change) {
	switch c.Kind {
	case notify.ItemMovedAcross:
		sel := s.sel
		if c.Parent == s.parent {
			sel = AdjustRemoved(sel, c.From)
		}
		if c.ToParent == s.parent {
			sel = AdjustAdded(sel, c.To)
		}
		s.set(sel)
		return
	}
	if c.Parent != s.parent {
		return
	}
	switch c.Kind {
	case notify.ItemAdded:
		s.set(AdjustAdded(s.sel, c.Index))
	case notify.ItemAboutToBeRemoved:
		s.set(AdjustRemoved(s.sel, c.Index))
	case notify.ItemMoved:
		s.set(AdjustMoved(s.sel, c.From, c.To))
	case notify.ListChanged:
		if s.sel.Valid() && !s.sel.InRange(s.size(s.parent)) {
			s.set(None)
		}
	}
}

// Multi selects a set of items of one list.
type Multi struct {
	base
	parent int
	sel    indexset.Set[int]
}

// NewMulti creates a multiple selection for the list of parent.
func NewMulti(n *notify.Notifier, parent int, size SizeFunc) *Multi {
	m := &Multi{parent: parent}
	m.attach(n, size, m.handle)
	return m
}

// Parent returns the parent index of the targeted list.
func (m *Multi) Parent() int { return m.parent }

// Selected returns a copy of the selected indexes.
func (m *Multi) Selected() indexset.Set[int] { return m.sel.Clone() }

// SetParent retargets the selection to another parent's list and clears it.
func (m *Multi) SetParent(parent int) {
	if parent == m.parent {
		return
	}
	m.parent = parent
	m.set(indexset.Set[int]{})
}

// Select replaces the selection. Out-of-range indexes are dropped.
func (m *Multi) Select(indexes ...int) {
	m.set(m.clamp(indexset.New(indexes...)))
}

// Toggle adds i to the selection, or removes it if already selected.
func (m *Multi) Toggle(i int) {
	sel := m.sel.Clone()
	if !sel.Remove(i) {
		sel.Insert(i)
	}
	m.set(m.clamp(sel))
}

// Clear removes the selection.
func (m *Multi) Clear() {
	m.set(indexset.Set[int]{})
}

func (m *Multi) clamp(sel indexset.Set[int]) indexset.Set[int] {
	size := m.size(m.parent)
	return sel.Map(func(i int) (int, bool) {
		return i, i >= 0 && i < size
	})
}

func (m *Multi) set(sel indexset.Set[int]) {
	if sel.Equal(m.sel) {
		return
	}
	m.sel = sel
	m.emit()
}

func (m *Multi) handle(c notify.Change) {
	switch c.Kind {
	case notify.ItemMovedAcross:
		sel := m.sel
		if c.Parent == m.parent {
			sel = AdjustSetRemoved(sel, c.From)
		}
		if c.ToParent == m.parent {
			sel = AdjustSetAdded(sel, c.To)
		}
		m.set(sel)
		return
	}
	if c.Parent != m.parent {
		return
	}
	switch c.Kind {
	case notify.ItemAdded:
		m.set(AdjustSetAdded(m.sel, c.Index))
	case notify.ItemAboutToBeRemoved:
		m.set(AdjustSetRemoved(m.sel, c.Index))
	case notify.ItemMoved:
		m.set(AdjustSetMoved(m.sel, c.From, c.To))
	case notify.ListChanged:
		m.set(m.clamp(m.sel))
	}
}

// Pairs selects (parent, child) entries across a nested collection.
type Pairs struct {
	base
	sel indexset.PairSet
}

// NewPairs creates a pair selection following the changes delivered by n.
func NewPairs(n *notify.Notifier, size SizeFunc) *Pairs {
	p := &Pairs{}
	p.attach(n, size, p.handle)
	return p
}

// Selected returns a copy of the selected pairs.
func (p *Pairs) Selected() indexset.PairSet { return p.sel.Clone() }

// Select replaces the selection. Out-of-range pairs are dropped.
func (p *Pairs) Select(pairs ...indexset.Pair) {
	p.set(p.clamp(indexset.NewPairs(pairs...)))
}

// Toggle adds pair to the selection, or removes it if already selected.
func (p *Pairs) Toggle(pair indexset.Pair) {
	sel := p.sel.Clone()
	if !sel.Remove(pair) {
		sel.Insert(pair)
	}
	p.set(p.clamp(sel))
}

// Clear removes the selection.
func (p *Pairs) Clear() {
	p.set(indexset.PairSet{})
}

func (p *Pairs) clamp(sel indexset.PairSet) indexset.PairSet {
	return sel.Map(func(e indexset.Pair) (indexset.Pair, bool) {
		return e, e.Child >= 0 && e.Child < p.size(e.Parent)
	})
}

func (p *Pairs) set(sel indexset.PairSet) {
	if sel.Equal(p.sel) {
		return
	}
	p.sel = sel
	p.emit()
}

func (p *Pairs) handle(c notify.Change) {
	switch c.Kind {
	case notify.ItemAdded:
		p.set(AdjustPairsAdded(p.sel, c.Parent, c.Index))
	case notify.ItemAboutToBeRemoved:
		p.set(AdjustPairsRemoved(p.sel, c.Parent, c.Index))
	case notify.ItemMoved:
		p.set(AdjustPairsMoved(p.sel, c.Parent, c.From, c.To))
	case notify.ItemMovedAcross:
		p.set(AdjustPairsMovedAcross(p.sel, c.Source(), c.Destination()))
	case notify.ListChanged:
		p.set(p.clamp(p.sel))
	}
}
