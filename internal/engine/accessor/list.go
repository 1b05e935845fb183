package accessor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/clipboard"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/collection"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/command"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/history"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/notify"
)

// Resource is the document an accessor edits.
type Resource interface {
	// UndoStack returns the history commands are pushed to.
	UndoStack() *history.History

	// MarkDirty flags unsaved changes.
	MarkDirty()

	// MarkUnchecked flags that the resource needs validating again.
	MarkUnchecked()
}

// Source returns the list belonging to parent, or nil if there is none.
type Source[T comparable] func(parent int) collection.Mutable[T]

// FlatSource serves l as the list of notify.NoParent.
func FlatSource[T comparable](l collection.Mutable[T]) Source[T] {
	return func(parent int) collection.Mutable[T] {
		if parent != notify.NoParent {
			return nil
		}
		return l
	}
}

// NestedSource serves the child lists of n.
func NestedSource[T comparable](n *collection.Nested[T]) Source[T] {
	return func(parent int) collection.Mutable[T] {
		if c := n.Children(parent); c != nil {
			return c
		}
		return nil
	}
}

// settings holds the values shared by every accessor.
type settings struct {
	logger   *zap.Logger
	maxSize  int
	name     string
	notifier *notify.Notifier
}

// Option configures an accessor.
type Option func(*settings)

// WithLogger sets the logger declined edits are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxSize limits the number of items per list. Zero means unbounded.
func WithMaxSize(n int) Option {
	return func(s *settings) {
		s.maxSize = n
	}
}

// WithName names the list in log output and clipboard payloads.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithNotifier shares a notifier between accessors of the same lists.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *settings) {
		if n != nil {
			s.notifier = n
		}
	}
}

// core holds what every accessor needs: the resource, its lists and the
// command target built from them.
type core[T comparable] struct {
	resource Resource
	source   Source[T]
	settings settings
}

func newCore[T comparable](res Resource, src Source[T], opts []Option) core[T] {
	s := settings{
		logger:   zap.NewNop(),
		name:     clipboard.TypeOf[T](),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return core[T]{resource: res, source: src, settings: s}
}

// List implements command.Target.
func (l *core[T]) List(parent int) collection.Mutable[T] {
	return l.source(parent)
}

// MaxSize implements command.Target.
func (l *core[T]) MaxSize() int { return l.settings.maxSize }

// Notifier implements command.Target.
func (l *core[T]) Notifier() *notify.Notifier { return l.settings.notifier }

// Touch implements command.Target.
func (l *core[T]) Touch() {
	l.resource.MarkDirty()
	l.resource.MarkUnchecked()
}

// Name returns the list name.
func (l *core[T]) Name() string { return l.settings.name }

// History returns the resource's history.
func (l *core[T]) History() *history.History {
	return l.resource.UndoStack()
}

// Size returns the number of items in the list of parent, or 0 if there is
// no such list.
func (l *core[T]) Size(parent int) int {
	if c := l.source(parent); c != nil {
		return c.Len()
	}
	return 0
}

func (l *core[T]) target() command.Target[T] { return l }

func (l *core[T]) push(cmd history.Command) {
	l.resource.UndoStack().Push(cmd)
}

// declined logs an edit that produced no command and returns false.
func (l *core[T]) declined(op string, fields ...zap.Field) bool {
	l.settings.logger.Debug("edit declined",
		append([]zap.Field{zap.String("list", l.settings.name), zap.String("op", op)}, fields...)...)
	return false
}

// named is implemented by lists with a name lookup.
type named interface {
	Find(name string) (int, bool)
}

type namer interface {
	Name() string
}

// duplicatesName reports whether replacing the items of parent's list with
// the result of edit would give two items the same name. Lists without a
// name lookup never do.
func (l *core[T]) duplicatesName(parent int, edit func(items []T) []T) bool {
	c := l.source(parent)
	if c == nil {
		return false
	}
	if _, ok := c.(named); !ok {
		return false
	}

	seen := make(map[string]bool, c.Len())
	for _, v := range edit(c.Items()) {
		n, ok := any(v).(namer)
		if !ok {
			return false
		}
		if seen[n.Name()] {
			return true
		}
		seen[n.Name()] = true
	}
	return false
}

func (l *core[T]) copyItems(parent int, indexes []int) ([]byte, error) {
	c := l.source(parent)
	if c == nil {
		return nil, fmt.Errorf("copy %s: parent %d: %w", l.settings.name, parent, command.ErrListUnavailable)
	}
	items := make([]T, 0, len(indexes))
	for _, i := range indexes {
		items = append(items, c.At(i))
	}
	return clipboard.Copy(l.settings.name, items)
}
