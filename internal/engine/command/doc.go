// Package command implements the reversible list edits recorded by History.
//
// Every command is generic over the item type and mutates lists through a
// Target, addressing items as (parent, index). Flat lists use
// notify.NoParent as their parent.
//
// Constructors validate their arguments against the current state of the
// target and return nil when the edit is declined (index out of range,
// list at its maximum size, nothing to move, nothing changed). A non-nil
// command is always valid to Redo once.
//
// Commands never touch selections. Each mutation is bracketed by
// notifications and selection models follow those:
//
//	add:    ListAboutToChange, insert, ItemAdded, ListChanged
//	remove: ListAboutToChange, ItemAboutToBeRemoved, remove, ListChanged
//	move:   ListAboutToChange, move, ItemMoved, ListChanged
//	edit:   update, DataChanged
//
// Batch commands send a single ListAboutToChange and ListChanged per
// affected list with one item event per step in between.
//
// Batch moves are computed up front as a plan of (from, to) steps. Redo
// applies the plan in order; Undo applies the inverse steps in reverse
// order, which restores the original positions for every direction.
package command
