// Package accessor is the editing surface views use to change a list.
//
// An accessor pairs the lists of a Resource with a selection model and
// turns user actions (add, clone, remove, raise, lower, edit) into
// commands pushed to the resource's history. Three shapes exist:
//
//   - Single: one selected item of one list.
//   - Multi: a set of selected items of one list.
//   - Nested: a set of (parent, child) pairs across the child lists of a
//     nested collection.
//
// Actions the current state does not allow are declined: nothing is pushed,
// the method returns false and the decline is logged at debug level.
// Status reports in advance which actions would be accepted.
//
// The selection models are driven by the notifications commands send, so
// they stay correct across undo and redo without the accessor's help. The
// accessor only selects explicitly after adding or cloning, to select the
// new items.
//
// Lists with a name lookup, such as collection.Named, are protected against
// duplicate names: adds, clones, moves and edits that would introduce one
// are declined.
package accessor
