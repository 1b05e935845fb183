package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/undisbeliever/untech-editor-sub002/internal/config"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/accessor"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/clipboard"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/collection"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/command"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/history"
	"github.com/undisbeliever/untech-editor-sub002/internal/resource"
)

// listName tags clipboard payloads produced by scripts.
const listName = "names"

// ErrEmptyItem is reported by the check op when an item is blank.
var ErrEmptyItem = errors.New("empty item")

// Runner replays a Script.
type Runner struct {
	Script *Script
	Config config.Config
	Logger *zap.Logger

	// Out receives one line per step.
	Out io.Writer

	list      *collection.Ordered[string]
	doc       *resource.Document
	acc       *accessor.Multi[string]
	clipboard []byte
}

// Result is the state after the last step.
type Result struct {
	Items     []string
	Selected  []int
	Dirty     bool
	Unchecked bool
	UndoText  string
	RedoText  string
	Declined  int
}

// Run executes every step in order. It stops at the first error or when
// ctx is cancelled. Declined steps are counted, not treated as errors.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	maxSize := r.Config.Lists.MaxSize
	if r.Script.MaxSize > 0 {
		maxSize = r.Script.MaxSize
	}

	r.list = collection.NewOrdered(r.Script.Items...)
	r.doc = resource.New(listName,
		resource.WithLogger(logger),
		resource.WithHistory(history.NewHistory(r.Config.HistoryOptions(logger)...)))
	r.acc = accessor.NewMulti(r.doc, accessor.FlatSource[string](r.list),
		accessor.WithLogger(logger),
		accessor.WithMaxSize(maxSize),
		accessor.WithName(listName))
	defer r.acc.Close()

	var declined int
	for i, step := range r.Script.Steps {
		if err := ctx.Err(); err != nil {
			return r.result(declined), fmt.Errorf("step %d: %w", i+1, err)
		}

		ok, err := r.apply(step)
		if err != nil {
			return r.result(declined), fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		if !ok {
			declined++
			logger.Info("step declined", zap.Int("step", i+1), zap.String("op", step.Op))
		}
		r.print(out, i+1, step, ok)
	}
	return r.result(declined), nil
}

func (r *Runner) apply(step Step) (bool, error) {
	h := r.doc.UndoStack()

	switch step.Op {
	case OpSelect:
		r.acc.Select(step.Indexes...)
		return true, nil
	case OpAdd:
		values := step.Values
		if len(values) == 0 {
			values = []string{step.Value}
		}
		return r.acc.AddMultiple(values), nil
	case OpClone:
		return r.acc.Clone(), nil
	case OpRemove:
		return r.acc.Remove(), nil
	case OpRaise:
		return r.acc.Raise(), nil
	case OpLower:
		return r.acc.Lower(), nil
	case OpTop:
		return r.acc.RaiseToTop(), nil
	case OpBottom:
		return r.acc.LowerToBottom(), nil
	case OpEdit:
		return accessor.EditSelected(r.acc, command.Whole[string](), func(string) string { return step.Value }), nil
	case OpUndo:
		return h.Undo(), nil
	case OpRedo:
		return h.Redo(), nil
	case OpBegin:
		h.BeginMacro(step.Value)
		return true, nil
	case OpEnd:
		if !h.InMacro() {
			return false, nil
		}
		h.EndMacro()
		return true, nil
	case OpSave:
		return true, r.doc.Save(func() error { return nil })
	case OpCheck:
		err := r.doc.Check(r.validate)
		if errors.Is(err, ErrEmptyItem) {
			return false, nil
		}
		return err == nil, err
	case OpCopy:
		data, err := r.acc.CopySelected()
		if errors.Is(err, clipboard.ErrEmpty) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		r.clipboard = data
		return true, nil
	case OpPaste:
		if r.clipboard == nil {
			return false, nil
		}
		return r.acc.PasteAfterSelected(r.clipboard)
	}
	return false, fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
}

func (r *Runner) validate() error {
	for i, item := range r.list.Items() {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("item %d: %w", i, ErrEmptyItem)
		}
	}
	return nil
}

func (r *Runner) print(out io.Writer, n int, step Step, ok bool) {
	status := "ok"
	if !ok {
		status = "declined"
	}
	h := r.doc.UndoStack()
	fmt.Fprintf(out, "%3d %-7s %-8s [%s] sel=%v undo=%q redo=%q dirty=%t\n",
		n, step.Op, status,
		strings.Join(r.list.Items(), " "),
		r.acc.Selected().Values(),
		h.UndoText(), h.RedoText(),
		r.doc.IsDirty())
}

func (r *Runner) result(declined int) Result {
	h := r.doc.UndoStack()
	return Result{
		Items:     r.list.Items(),
		Selected:  r.acc.Selected().Values(),
		Dirty:     r.doc.IsDirty(),
		Unchecked: r.doc.IsUnchecked(),
		UndoText:  h.UndoText(),
		RedoText:  h.RedoText(),
		Declined:  declined,
	}
}
