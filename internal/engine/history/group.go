package history

// GroupScope provides a convenient way to group commands using defer.
// Usage:
//
//	func pasteItems(h *History, cmds []Command) {
//	    defer h.GroupScope("Paste").End()
//	    for _, cmd := range cmds {
//	        h.Push(cmd)
//	    }
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope opens a macro and returns a scope that closes it.
// Call End() or use with defer to properly close the macro.
func (h *History) GroupScope(label string) *GroupScope {
	h.BeginMacro(label)
	return &GroupScope{
		history: h,
		active:  true,
	}
}

// End closes the macro.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndMacro()
		g.active = false
	}
}

// Abort closes the macro, undoing everything pushed inside it.
func (g *GroupScope) Abort() {
	if g.active {
		g.history.AbortMacro()
		g.active = false
	}
}

// Transaction executes fn within a macro.
// If fn returns an error the macro is aborted, reverting its commands, and
// the error is returned. Otherwise the macro is ended normally.
func (h *History) Transaction(label string, fn func() error) error {
	h.BeginMacro(label)

	if err := fn(); err != nil {
		h.AbortMacro()
		return err
	}

	h.EndMacro()
	return nil
}

// PushGrouped pushes multiple commands as a single undo unit.
func (h *History) PushGrouped(label string, cmds ...Command) {
	switch len(cmds) {
	case 0:
		return
	case 1:
		// Single command doesn't need grouping
		h.Push(cmds[0])
		return
	}

	h.BeginMacro(label)
	for _, cmd := range cmds {
		h.Push(cmd)
	}
	h.EndMacro()
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	index int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History) CreateCheckpoint() Checkpoint {
	return Checkpoint{index: h.Index()}
}

// UndoToCheckpoint undoes all commands since the checkpoint.
func (h *History) UndoToCheckpoint(cp Checkpoint) {
	for h.Index() > cp.index {
		if !h.Undo() {
			return
		}
	}
}

// RedoToCheckpoint redoes commands up to the checkpoint position.
// This only works while the redo tail still holds the commands.
func (h *History) RedoToCheckpoint(cp Checkpoint) {
	for h.Index() < cp.index {
		if !h.Redo() {
			return
		}
	}
}
