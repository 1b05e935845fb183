package history

import "fmt"

// Command is a reversible unit of work.
//
// Redo applies the change and Undo reverses it. A command is executed with
// Redo exactly once by History.Push and afterwards only through History.
type Command interface {
	// Redo performs the change.
	Redo()

	// Undo reverses the change.
	Undo()

	// Description returns a human-readable description of the command.
	Description() string
}

// Mergeable is implemented by commands that can absorb a directly following
// command into themselves.
type Mergeable interface {
	Command

	// MergeWith folds next into the receiver and returns true, or returns
	// false and leaves the receiver unchanged. next has already been
	// executed when MergeWith is called.
	MergeWith(next Command) bool
}

// Macro groups multiple commands as one undo unit.
type Macro struct {
	Label    string
	Commands []Command
}

// NewMacro creates a new macro.
func NewMacro(label string, commands ...Command) *Macro {
	return &Macro{
		Label:    label,
		Commands: commands,
	}
}

// Redo runs all commands in order.
func (m *Macro) Redo() {
	for _, cmd := range m.Commands {
		cmd.Redo()
	}
}

// Undo reverses all commands in reverse order.
func (m *Macro) Undo() {
	for i := len(m.Commands) - 1; i >= 0; i-- {
		m.Commands[i].Undo()
	}
}

// Description returns the macro's label.
func (m *Macro) Description() string {
	if m.Label != "" {
		return m.Label
	}
	if len(m.Commands) == 1 {
		return m.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(m.Commands))
}

// Add appends a command to the macro.
func (m *Macro) Add(cmd Command) {
	m.Commands = append(m.Commands, cmd)
}

// IsEmpty returns true if the macro has no commands.
func (m *Macro) IsEmpty() bool {
	return len(m.Commands) == 0
}

func (m *Macro) last() Command {
	if len(m.Commands) == 0 {
		return nil
	}
	return m.Commands[len(m.Commands)-1]
}

// CommandFunc adapts a pair of functions to the Command interface.
// Useful for small document-level edits that do not warrant their own type.
type CommandFunc struct {
	Text     string
	RedoFunc func()
	UndoFunc func()
}

// Redo calls RedoFunc.
func (c CommandFunc) Redo() { c.RedoFunc() }

// Undo calls UndoFunc.
func (c CommandFunc) Undo() { c.UndoFunc() }

// Description returns Text.
func (c CommandFunc) Description() string { return c.Text }
