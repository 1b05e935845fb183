package history

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrReentrant is the panic value raised when a command is pushed,
// undone or redone while another command of the same History is executing.
var ErrReentrant = errors.New("history: command dispatched while another command is executing")

// DefaultMaxEntries is the undo limit used when none is configured.
const DefaultMaxEntries = 1000

// noClean marks a clean index that can no longer be reached.
const noClean = -1

// undoEntry wraps a command with metadata.
type undoEntry struct {
	id        string
	command   Command
	timestamp time.Time
}

// History manages the undo/redo log for one document or sub-resource.
type History struct {
	mu sync.Mutex

	entries    []*undoEntry
	index      int
	cleanIndex int

	// Open macros, innermost last
	macros []*Macro

	executing bool

	// Configuration
	maxEntries int
	merging    bool
	logger     *zap.Logger

	cleanObservers []func(clean bool)
	indexObservers []func(index int)
	abortObservers []func(label string)
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries sets the maximum number of undo entries.
func WithMaxEntries(max int) Option {
	return func(h *History) {
		if max > 0 {
			h.maxEntries = max
		}
	}
}

// WithMerging enables or disables merging of Mergeable commands.
func WithMerging(enable bool) Option {
	return func(h *History) {
		h.merging = enable
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(h *History) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHistory creates a new, clean history.
func NewHistory(opts ...Option) *History {
	h := &History{
		maxEntries: DefaultMaxEntries,
		merging:    true,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// state is a snapshot of the observable values, used to decide which
// observers to notify after a change.
type state struct {
	index int
	clean bool
}

func (h *History) stateLocked() state {
	return state{index: h.index, clean: h.index == h.cleanIndex}
}

func (h *History) notify(before, after state) {
	h.mu.Lock()
	cleanObservers := slices.Clone(h.cleanObservers)
	indexObservers := slices.Clone(h.indexObservers)
	h.mu.Unlock()

	if before.index != after.index {
		for _, fn := range indexObservers {
			fn(after.index)
		}
	}
	if before.clean != after.clean {
		for _, fn := range cleanObservers {
			fn(after.clean)
		}
	}
}

// run executes fn with the executing flag set.
// The lock is not held while fn runs, so observers reacting to the
// command's notifications may query the history.
func (h *History) run(fn func()) {
	h.mu.Lock()
	if h.executing {
		h.mu.Unlock()
		panic(ErrReentrant)
	}
	h.executing = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.executing = false
		h.mu.Unlock()
	}()

	fn()
}

// Push executes cmd and records it.
//
// Commands after the cursor are discarded. Inside a macro the command is
// recorded as a member of the innermost open macro.
func (h *History) Push(cmd Command) {
	h.run(cmd.Redo)

	h.mu.Lock()
	if n := len(h.macros); n > 0 {
		top := h.macros[n-1]
		if h.mergeLocked(top.last(), cmd) {
			h.mu.Unlock()
			return
		}
		top.Add(cmd)
		h.mu.Unlock()
		h.logger.Debug("macro member pushed",
			zap.String("macro", top.Label),
			zap.String("command", cmd.Description()))
		return
	}

	before := h.stateLocked()
	h.commitLocked(cmd, true)
	after := h.stateLocked()
	h.mu.Unlock()

	h.notify(before, after)
}

// commitLocked appends an already executed command at the cursor.
func (h *History) commitLocked(cmd Command, mergeable bool) {
	// Discard the redo tail
	for i := h.index; i < len(h.entries); i++ {
		h.entries[i] = nil
	}
	h.entries = h.entries[:h.index]
	if h.cleanIndex > h.index {
		h.cleanIndex = noClean
	}

	if mergeable && h.index > 0 && h.index != h.cleanIndex {
		if h.mergeLocked(h.entries[h.index-1].command, cmd) {
			h.entries[h.index-1].timestamp = time.Now()
			return
		}
	}

	h.entries = append(h.entries, &undoEntry{
		id:        uuid.NewString(),
		command:   cmd,
		timestamp: time.Now(),
	})
	h.index++

	h.logger.Debug("command pushed",
		zap.String("command", cmd.Description()),
		zap.Int("index", h.index))

	h.trimLocked()
}

// trimLocked evicts the oldest done commands beyond the undo limit.
// Undone commands are never evicted.
func (h *History) trimLocked() {
	excess := min(len(h.entries)-h.maxEntries, h.index)
	if excess <= 0 {
		return
	}
	clear(h.entries[:excess])
	h.entries = h.entries[excess:]
	h.index -= excess
	if h.cleanIndex != noClean {
		h.cleanIndex -= excess
		if h.cleanIndex < 0 {
			h.cleanIndex = noClean
		}
	}
}

func (h *History) mergeLocked(prev, next Command) bool {
	if !h.merging || prev == nil {
		return false
	}
	m, ok := prev.(Mergeable)
	if !ok || !m.MergeWith(next) {
		return false
	}
	h.logger.Debug("command merged", zap.String("command", prev.Description()))
	return true
}

// Undo undoes the command before the cursor.
// Returns false, changing nothing, if there is nothing to undo or a macro
// is open.
func (h *History) Undo() bool {
	h.mu.Lock()
	if h.index == 0 || len(h.macros) > 0 {
		h.mu.Unlock()
		return false
	}
	entry := h.entries[h.index-1]
	before := h.stateLocked()
	h.mu.Unlock()

	h.run(entry.command.Undo)

	h.mu.Lock()
	h.index--
	after := h.stateLocked()
	h.mu.Unlock()

	h.logger.Debug("undo", zap.String("command", entry.command.Description()), zap.Int("index", after.index))
	h.notify(before, after)
	return true
}

// Redo redoes the command at the cursor.
// Returns false, changing nothing, if there is nothing to redo or a macro
// is open.
func (h *History) Redo() bool {
	h.mu.Lock()
	if h.index == len(h.entries) || len(h.macros) > 0 {
		h.mu.Unlock()
		return false
	}
	entry := h.entries[h.index]
	before := h.stateLocked()
	h.mu.Unlock()

	h.run(entry.command.Redo)

	h.mu.Lock()
	h.index++
	after := h.stateLocked()
	h.mu.Unlock()

	h.logger.Debug("redo", zap.String("command", entry.command.Description()), zap.Int("index", after.index))
	h.notify(before, after)
	return true
}

// SetIndex undoes or redoes until the cursor equals idx.
// idx is clamped to [0, Count()].
func (h *History) SetIndex(idx int) {
	idx = max(0, min(idx, h.Count()))
	for h.Index() > idx {
		if !h.Undo() {
			return
		}
	}
	for h.Index() < idx {
		if !h.Redo() {
			return
		}
	}
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0 && len(h.macros) == 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries) && len(h.macros) == 0
}

// Index returns the cursor position.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Count returns the number of recorded commands, done and undone.
func (h *History) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// MarkClean records the current cursor position as the saved state.
func (h *History) MarkClean() {
	h.mu.Lock()
	before := h.stateLocked()
	h.cleanIndex = h.index
	after := h.stateLocked()
	h.mu.Unlock()

	h.notify(before, after)
}

// IsClean returns true if the cursor is at the saved position.
func (h *History) IsClean() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index == h.cleanIndex
}

// CleanIndex returns the saved cursor position, or -1 if it is no longer
// reachable.
func (h *History) CleanIndex() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cleanIndex
}

// OnCleanChanged registers fn to be called whenever IsClean changes.
func (h *History) OnCleanChanged(fn func(clean bool)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleanObservers = append(h.cleanObservers, fn)
}

// OnIndexChanged registers fn to be called whenever the cursor moves.
func (h *History) OnIndexChanged(fn func(index int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.indexObservers = append(h.indexObservers, fn)
}

// OnMacroAborted registers fn to be called after a macro was aborted and
// its commands undone. The cursor and clean state are unchanged by an
// abort, so observers tracking edits through commands can resynchronise
// here.
func (h *History) OnMacroAborted(fn func(label string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.abortObservers = append(h.abortObservers, fn)
}

// BeginMacro opens a macro. Commands pushed until the matching EndMacro
// are undone and redone as one step. Macros nest; an inner macro becomes a
// single member of the outer one.
func (h *History) BeginMacro(label string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.macros = append(h.macros, NewMacro(label))
}

// EndMacro closes the innermost macro. An empty macro is discarded.
func (h *History) EndMacro() {
	h.mu.Lock()
	n := len(h.macros)
	if n == 0 {
		h.mu.Unlock()
		return
	}

	m := h.macros[n-1]
	h.macros = h.macros[:n-1]

	if m.IsEmpty() {
		h.mu.Unlock()
		return
	}

	if n > 1 {
		h.macros[n-2].Add(m)
		h.mu.Unlock()
		return
	}

	before := h.stateLocked()
	h.commitLocked(m, false)
	after := h.stateLocked()
	h.mu.Unlock()

	h.notify(before, after)
}

// AbortMacro closes the innermost macro, undoing the commands already
// executed inside it in reverse order. Nothing is recorded.
func (h *History) AbortMacro() {
	h.mu.Lock()
	n := len(h.macros)
	if n == 0 {
		h.mu.Unlock()
		return
	}
	m := h.macros[n-1]
	h.macros = h.macros[:n-1]
	h.mu.Unlock()

	h.run(m.Undo)
	h.logger.Debug("macro aborted", zap.String("macro", m.Label), zap.Int("commands", len(m.Commands)))

	h.mu.Lock()
	abortObservers := slices.Clone(h.abortObservers)
	h.mu.Unlock()
	for _, fn := range abortObservers {
		fn(m.Label)
	}
}

// Pending returns the number of commands recorded in open macros that are
// not on the undo stack yet. A closed inner macro counts once.
func (h *History) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.macros {
		n += len(m.Commands)
	}
	return n
}

// InMacro returns true if a macro is open.
func (h *History) InMacro() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.macros) > 0
}

// Clear removes all history. The current state becomes the clean state.
func (h *History) Clear() {
	h.mu.Lock()
	before := h.stateLocked()
	h.entries = nil
	h.index = 0
	h.cleanIndex = 0
	h.macros = nil
	after := h.stateLocked()
	h.mu.Unlock()

	h.notify(before, after)
}

// UndoText returns the description of the command Undo would reverse.
func (h *History) UndoText() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return ""
	}
	return h.entries[h.index-1].command.Description()
}

// RedoText returns the description of the command Redo would apply.
func (h *History) RedoText() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == len(h.entries) {
		return ""
	}
	return h.entries[h.index].command.Description()
}

// Entries returns info about every recorded command, oldest first.
func (h *History) Entries() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]OperationInfo, len(h.entries))
	for i, entry := range h.entries {
		result[i] = OperationInfo{
			ID:          entry.id,
			Description: entry.command.Description(),
			Timestamp:   entry.timestamp,
			Done:        i < h.index,
		}
	}
	return result
}

// SetMaxEntries changes the maximum number of undo entries.
// If more commands are recorded, the oldest are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

// OperationInfo provides read-only info about a recorded command.
// Used for displaying the undo history to users.
type OperationInfo struct {
	ID          string    // Stable identifier of the entry
	Description string    // Human-readable description
	Timestamp   time.Time // When the command was pushed or last merged into
	Done        bool      // True if the command is before the cursor
}
