// Package selection tracks which list items are selected and keeps the
// selection consistent while the list is edited.
//
// Three models are provided: Single (one optional index), Multi (a sorted
// index set) and Pairs (a sorted (parent, child) set for nested
// collections). Each model subscribes to a notify.Notifier at
// notify.PrioritySelection and maps itself through every insertion, removal
// and move, including edits made by undo and redo. Commands never touch a
// selection directly.
//
// The Adjust* functions hold the mapping rules and are pure, so they can be
// used without a model:
//
//	sel := selection.At(3)
//	sel = selection.AdjustAdded(sel, 1)     // 4
//	sel = selection.AdjustRemoved(sel, 4)   // none
package selection
