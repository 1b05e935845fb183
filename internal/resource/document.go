// Package resource provides the editable document that owns a history and
// tracks whether its lists have unsaved or unvalidated changes.
//
// A Document satisfies accessor.Resource: every command executed through an
// accessor touches it, which marks it dirty and unchecked. Saving records
// the history's clean watermark, so undoing back to the saved state clears
// the dirty flag again.
package resource

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/history"
)

var (
	// ErrClosed is returned when saving or checking a closed document.
	ErrClosed = errors.New("resource: document closed")

	// ErrReadOnly is returned when saving a read-only document.
	ErrReadOnly = errors.New("resource: document is read-only")
)

// Document is an open resource with its own undo history.
type Document struct {
	mu sync.RWMutex

	// ID identifies the document for the lifetime of the process.
	ID string

	// Name is the display name of the resource.
	Name string

	// ReadOnly documents can be edited but not saved.
	ReadOnly bool

	history *history.History
	logger  *zap.Logger

	dirty     bool
	unchecked bool
	version   int64

	modifiedAt time.Time
	savedAt    time.Time

	dirtyHandlers []func(dirty bool)
	closed        bool
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithHistory replaces the default history.
func WithHistory(h *history.History) Option {
	return func(d *Document) {
		if h != nil {
			d.history = h
		}
	}
}

// WithReadOnly marks the document read-only.
func WithReadOnly(readOnly bool) Option {
	return func(d *Document) {
		d.ReadOnly = readOnly
	}
}

// New creates a clean, unchecked document.
func New(name string, opts ...Option) *Document {
	d := &Document{
		ID:        uuid.NewString(),
		Name:      name,
		logger:    zap.NewNop(),
		unchecked: true,
		version:   1,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.history == nil {
		d.history = history.NewHistory(history.WithLogger(d.logger))
	}
	d.logger = d.logger.With(zap.String("document", d.Name), zap.String("id", d.ID))
	d.history.OnCleanChanged(d.cleanChanged)
	d.history.OnMacroAborted(func(string) { d.resync() })
	return d
}

// UndoStack returns the document's history.
func (d *Document) UndoStack() *history.History {
	return d.history
}

// MarkDirty records an edit.
func (d *Document) MarkDirty() {
	d.mu.Lock()
	d.version++
	d.modifiedAt = time.Now()
	changed := !d.dirty
	d.dirty = true
	handlers := d.handlersLocked(changed)
	d.mu.Unlock()

	for _, fn := range handlers {
		fn(true)
	}
}

// MarkUnchecked records that the document needs validating again.
func (d *Document) MarkUnchecked() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unchecked = true
}

// cleanChanged follows the history's clean watermark.
func (d *Document) cleanChanged(clean bool) {
	d.mu.Lock()
	changed := d.dirty == clean
	d.dirty = !clean
	handlers := d.handlersLocked(changed)
	d.mu.Unlock()

	for _, fn := range handlers {
		fn(!clean)
	}
}

// resync recomputes the dirty flag from the history after edits that were
// reverted without moving its cursor.
func (d *Document) resync() {
	dirty := !d.history.IsClean() || d.history.Pending() > 0

	d.mu.Lock()
	changed := d.dirty != dirty
	d.dirty = dirty
	handlers := d.handlersLocked(changed)
	d.mu.Unlock()

	for _, fn := range handlers {
		fn(dirty)
	}
	if changed {
		d.logger.Debug("dirty state restored", zap.Bool("dirty", dirty))
	}
}

func (d *Document) handlersLocked(changed bool) []func(bool) {
	if !changed {
		return nil
	}
	return slices.Clone(d.dirtyHandlers)
}

// OnDirty registers fn to be called whenever IsDirty changes.
func (d *Document) OnDirty(fn func(dirty bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirtyHandlers = append(d.dirtyHandlers, fn)
}

// IsDirty returns true if the document has unsaved changes.
func (d *Document) IsDirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

// IsUnchecked returns true if the document changed since it was last
// validated.
func (d *Document) IsUnchecked() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.unchecked
}

// Version is incremented on every edit, including undo and redo.
func (d *Document) Version() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// ModifiedAt returns when the document was last edited.
func (d *Document) ModifiedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modifiedAt
}

// SavedAt returns when the document was last saved, or the zero time.
func (d *Document) SavedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.savedAt
}

// Save calls write and, if it succeeds, marks the current history position
// as the saved state.
func (d *Document) Save(write func() error) error {
	d.mu.RLock()
	closed, readOnly := d.closed, d.ReadOnly
	d.mu.RUnlock()

	switch {
	case closed:
		return ErrClosed
	case readOnly:
		return fmt.Errorf("save %s: %w", d.Name, ErrReadOnly)
	}

	if err := write(); err != nil {
		d.logger.Warn("save failed", zap.Error(err))
		return fmt.Errorf("save %s: %w", d.Name, err)
	}

	d.history.MarkClean()

	d.mu.Lock()
	d.savedAt = time.Now()
	wasDirty := d.dirty
	d.dirty = false
	handlers := d.handlersLocked(wasDirty)
	d.mu.Unlock()

	for _, fn := range handlers {
		fn(false)
	}
	d.logger.Info("document saved", zap.Int("historyIndex", d.history.Index()))
	return nil
}

// Check runs validate and clears the unchecked flag if it passes.
func (d *Document) Check(validate func() error) error {
	d.mu.RLock()
	closed := d.closed
	d.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	if err := validate(); err != nil {
		d.logger.Debug("check failed", zap.Error(err))
		return fmt.Errorf("check %s: %w", d.Name, err)
	}

	d.mu.Lock()
	d.unchecked = false
	d.mu.Unlock()
	return nil
}

// Close marks the document closed.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

// IsClosed returns true if the document has been closed.
func (d *Document) IsClosed() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.closed
}
