// Package notify delivers structural change notifications for lists.
//
// Every mutation made through a command is bracketed by notifications:
// "about to change" events are delivered strictly before the list is
// touched and "changed" events strictly after. Delivery is synchronous;
// each observer has returned before the next one runs and before the
// mutating code continues.
package notify

import (
	"sort"
	"sync"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
)

// NoParent is the parent index carried by events for flat lists.
const NoParent = -1

// Kind is the type of structural change.
type Kind int

const (
	// ListAboutToChange is sent before any structural change to a list.
	ListAboutToChange Kind = iota

	// ItemAdded is sent after an item was inserted at Index.
	ItemAdded

	// ItemAboutToBeRemoved is sent before the item at Index is removed.
	ItemAboutToBeRemoved

	// ItemMoved is sent after the item at From was moved to To.
	ItemMoved

	// ItemMovedAcross is sent after a child moved from (Parent, From) to
	// (ToParent, To) in a nested collection.
	ItemMovedAcross

	// ListChanged is sent after a structural change completed.
	ListChanged

	// DataChanged is sent after the item at Index was modified in place.
	DataChanged
)

// String returns the change kind name.
func (k Kind) String() string {
	switch k {
	case ListAboutToChange:
		return "listAboutToChange"
	case ItemAdded:
		return "itemAdded"
	case ItemAboutToBeRemoved:
		return "itemAboutToBeRemoved"
	case ItemMoved:
		return "itemMoved"
	case ItemMovedAcross:
		return "itemMovedAcross"
	case ListChanged:
		return "listChanged"
	case DataChanged:
		return "dataChanged"
	default:
		return "unknown"
	}
}

// Change describes one structural event.
type Change struct {
	Kind Kind

	// Parent is the parent index of the affected list, or NoParent.
	Parent int

	// Index is the affected position for ItemAdded, ItemAboutToBeRemoved
	// and DataChanged.
	Index int

	// From and To are the positions for ItemMoved and ItemMovedAcross.
	From int
	To   int

	// ToParent is the destination parent for ItemMovedAcross.
	ToParent int
}

// Source returns the source pair of an ItemMovedAcross change.
func (c Change) Source() indexset.Pair {
	return indexset.Pair{Parent: c.Parent, Child: c.From}
}

// Destination returns the destination pair of an ItemMovedAcross change.
func (c Change) Destination() indexset.Pair {
	return indexset.Pair{Parent: c.ToParent, Child: c.To}
}

// Observer is called for every change delivered by a Notifier.
type Observer func(change Change)

// Priority orders observers. Lower values run first.
type Priority int

const (
	// PrioritySelection is used by selection models so that selections are
	// already adjusted when editors react to the same change.
	PrioritySelection Priority = 0

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 100
)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

type entry struct {
	id       uint64
	priority Priority
	observer Observer
}

// Notifier fans structural changes out to observers.
type Notifier struct {
	mu        sync.RWMutex
	observers []entry
	nextID    uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer at PriorityNormal.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePriority(PriorityNormal, observer)
}

// SubscribePriority registers an observer at the given priority.
// Observers with equal priority run in subscription order.
func (n *Notifier) SubscribePriority(priority Priority, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers = append(n.observers, entry{id: id, priority: priority, observer: observer})
	sort.SliceStable(n.observers, func(i, j int) bool {
		return n.observers[i].priority < n.observers[j].priority
	})

	return &Subscription{id: id, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.observers {
		if e.id == id {
			n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
			return
		}
	}
}

// Count returns the number of active subscriptions.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Notify delivers change to every observer in priority order.
// The observer list is snapshotted first, so observers may unsubscribe
// while being notified.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	observers := make([]entry, len(n.observers))
	copy(observers, n.observers)
	n.mu.RUnlock()

	for _, e := range observers {
		e.observer(change)
	}
}

// AboutToChange sends ListAboutToChange.
func (n *Notifier) AboutToChange(parent int) {
	n.Notify(Change{Kind: ListAboutToChange, Parent: parent})
}

// Added sends ItemAdded.
func (n *Notifier) Added(parent, index int) {
	n.Notify(Change{Kind: ItemAdded, Parent: parent, Index: index})
}

// AboutToBeRemoved sends ItemAboutToBeRemoved.
func (n *Notifier) AboutToBeRemoved(parent, index int) {
	n.Notify(Change{Kind: ItemAboutToBeRemoved, Parent: parent, Index: index})
}

// Moved sends ItemMoved.
func (n *Notifier) Moved(parent, from, to int) {
	n.Notify(Change{Kind: ItemMoved, Parent: parent, From: from, To: to})
}

// MovedAcross sends ItemMovedAcross.
func (n *Notifier) MovedAcross(from, to indexset.Pair) {
	n.Notify(Change{
		Kind:     ItemMovedAcross,
		Parent:   from.Parent,
		From:     from.Child,
		ToParent: to.Parent,
		To:       to.Child,
	})
}

// Changed sends ListChanged.
func (n *Notifier) Changed(parent int) {
	n.Notify(Change{Kind: ListChanged, Parent: parent})
}

// DataChanged sends DataChanged.
func (n *Notifier) DataChanged(parent, index int) {
	n.Notify(Change{Kind: DataChanged, Parent: parent, Index: index})
}
