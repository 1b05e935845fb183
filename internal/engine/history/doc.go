// Package history provides undo/redo for list edits.
//
// The history system uses the Command pattern: every edit is captured as a
// Command holding enough state to reverse itself. Key concepts:
//
// # History
//
// A History is a linear log of executed commands plus a cursor marking the
// boundary between done and undone commands:
//
//	h := history.NewHistory(history.WithMaxEntries(500))
//
//	h.Push(cmd) // runs cmd.Redo(), drops the redo tail, advances the cursor
//	h.Undo()
//	h.Redo()
//
// Undo and Redo with nothing to do are harmless no-ops that return false.
//
// # Clean State
//
// MarkClean records the cursor position that matches the saved document.
// IsClean reports whether the cursor is back at that position, and
// OnCleanChanged observers are told whenever that answer flips.
//
// # Macros
//
// Commands pushed between BeginMacro and EndMacro execute immediately but
// undo and redo as one step:
//
//	h.BeginMacro("Paste")
//	h.Push(addA)
//	h.Push(addB)
//	h.EndMacro()
//
// GroupScope and Transaction wrap the same calls for use with defer and
// error-returning functions.
//
// # Merging
//
// A command implementing Mergeable may absorb the command pushed after it,
// so a continuous gesture such as dragging a slider produces a single undo
// step. Merging never happens into the command at the clean position.
package history
