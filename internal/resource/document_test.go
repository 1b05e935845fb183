package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/accessor"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/collection"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/command"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/history"
)

var _ accessor.Resource = (*Document)(nil)

// touch returns a command that touches doc the way list commands do.
func touch(doc *Document, text string) history.Command {
	return history.CommandFunc{
		Text:     text,
		RedoFunc: func() { doc.MarkDirty(); doc.MarkUnchecked() },
		UndoFunc: func() { doc.MarkDirty(); doc.MarkUnchecked() },
	}
}

func TestNew(t *testing.T) {
	doc := New("palettes", WithLogger(zaptest.NewLogger(t)))

	assert.Equal(t, "palettes", doc.Name)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.IsDirty())
	assert.True(t, doc.IsUnchecked())
	assert.Equal(t, int64(1), doc.Version())
	assert.True(t, doc.SavedAt().IsZero())
	require.NotNil(t, doc.UndoStack())
	assert.True(t, doc.UndoStack().IsClean())
}

func TestNew_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, New("a").ID, New("a").ID)
}

func TestDocument_DirtyFollowsHistory(t *testing.T) {
	doc := New("frames")
	h := doc.UndoStack()

	h.Push(touch(doc, "one"))
	assert.True(t, doc.IsDirty())
	assert.Equal(t, int64(2), doc.Version())

	require.NoError(t, doc.Save(func() error { return nil }))
	assert.False(t, doc.IsDirty())
	assert.False(t, doc.SavedAt().IsZero())

	h.Push(touch(doc, "two"))
	assert.True(t, doc.IsDirty())

	h.Undo()
	assert.False(t, doc.IsDirty(), "undo back to the saved state")

	h.Undo()
	assert.True(t, doc.IsDirty())

	h.Redo()
	assert.False(t, doc.IsDirty())
	assert.Equal(t, int64(6), doc.Version())
}

func TestDocument_OnDirty(t *testing.T) {
	doc := New("frames")
	h := doc.UndoStack()

	var got []bool
	doc.OnDirty(func(dirty bool) { got = append(got, dirty) })

	h.Push(touch(doc, "one"))
	h.Push(touch(doc, "two"))
	require.NoError(t, doc.Save(func() error { return nil }))
	h.Undo()
	h.Redo()

	assert.Equal(t, []bool{true, false, true, false}, got)
}

func TestDocument_SaveInsideMacro(t *testing.T) {
	doc := New("frames")
	h := doc.UndoStack()

	var got []bool
	doc.OnDirty(func(dirty bool) { got = append(got, dirty) })

	h.BeginMacro("group")
	h.Push(touch(doc, "one"))
	require.NoError(t, doc.Save(func() error { return nil }))
	h.EndMacro()

	assert.Equal(t, []bool{true, false, true}, got)
	assert.True(t, doc.IsDirty())
}

func TestDocument_SaveError(t *testing.T) {
	doc := New("frames")
	doc.UndoStack().Push(touch(doc, "one"))

	errDisk := errors.New("disk full")
	err := doc.Save(func() error { return errDisk })

	require.ErrorIs(t, err, errDisk)
	assert.True(t, doc.IsDirty())
	assert.False(t, doc.UndoStack().IsClean())
}

func TestDocument_SaveReadOnly(t *testing.T) {
	doc := New("frames", WithReadOnly(true))
	doc.UndoStack().Push(touch(doc, "one"))

	called := false
	err := doc.Save(func() error { called = true; return nil })

	require.ErrorIs(t, err, ErrReadOnly)
	assert.False(t, called)
	assert.True(t, doc.IsDirty())
}

func TestDocument_Check(t *testing.T) {
	doc := New("frames")

	err := doc.Check(func() error { return errors.New("duplicate name") })
	require.Error(t, err)
	assert.True(t, doc.IsUnchecked())

	require.NoError(t, doc.Check(func() error { return nil }))
	assert.False(t, doc.IsUnchecked())

	doc.UndoStack().Push(touch(doc, "one"))
	assert.True(t, doc.IsUnchecked())
}

func TestDocument_Closed(t *testing.T) {
	doc := New("frames")
	doc.Close()

	assert.True(t, doc.IsClosed())
	assert.ErrorIs(t, doc.Save(func() error { return nil }), ErrClosed)
	assert.ErrorIs(t, doc.Check(func() error { return nil }), ErrClosed)
}

func TestWithHistory(t *testing.T) {
	h := history.NewHistory(history.WithMaxEntries(2))
	doc := New("frames", WithHistory(h))

	assert.Same(t, h, doc.UndoStack())
	assert.Equal(t, 2, doc.UndoStack().MaxEntries())
}

func TestDocument_WithAccessor(t *testing.T) {
	doc := New("names")
	list := collection.NewOrdered("A", "B")
	acc := accessor.NewMulti(doc, accessor.FlatSource[string](list))
	defer acc.Close()

	require.NoError(t, doc.Check(func() error { return nil }))
	require.True(t, acc.Add("C"))

	assert.True(t, doc.IsDirty())
	assert.True(t, doc.IsUnchecked())
	assert.Equal(t, []string{"A", "B", "C"}, list.Items())

	doc.UndoStack().Undo()
	assert.False(t, doc.IsDirty())
	assert.Equal(t, []string{"A", "B"}, list.Items())
}

func TestDocument_CancelledPreviewStaysClean(t *testing.T) {
	doc := New("delays")
	list := collection.NewOrdered(1, 2)
	acc := accessor.NewSingle(doc, accessor.FlatSource[int](list))
	defer acc.Close()
	require.NoError(t, doc.Check(func() error { return nil }))

	var got []bool
	doc.OnDirty(func(dirty bool) { got = append(got, dirty) })

	acc.Select(0)
	cmd := accessor.BeginEdit(acc, command.Whole[int]())
	require.NotNil(t, cmd)
	cmd.SetValue(9)
	cmd.Redo()
	assert.Equal(t, []int{9, 2}, list.Items())
	cmd.SetValue(1)

	assert.False(t, accessor.Commit(acc, cmd))
	assert.Equal(t, []int{1, 2}, list.Items())
	assert.Zero(t, doc.UndoStack().Count())
	assert.False(t, doc.IsDirty())
	assert.False(t, doc.IsUnchecked())
	assert.Empty(t, got)

	cmd = accessor.BeginEdit(acc, command.Whole[int]())
	cmd.SetValue(5)
	cmd.Redo()
	assert.False(t, doc.IsDirty(), "previews leave the document alone")

	require.True(t, accessor.Commit(acc, cmd))
	assert.True(t, doc.IsDirty())
	assert.True(t, doc.IsUnchecked())

	doc.UndoStack().Undo()
	assert.False(t, doc.IsDirty())
	assert.Equal(t, []bool{true, false}, got)
}

func TestDocument_AbortedTransactionStaysClean(t *testing.T) {
	doc := New("delays")
	list := collection.NewOrdered(1, 2)
	acc := accessor.NewMulti(doc, accessor.FlatSource[int](list))
	defer acc.Close()
	h := doc.UndoStack()

	var got []bool
	doc.OnDirty(func(dirty bool) { got = append(got, dirty) })

	errBoom := errors.New("boom")
	err := h.Transaction("add", func() error {
		require.True(t, acc.Add(3))
		return errBoom
	})

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{1, 2}, list.Items())
	assert.Zero(t, h.Count())
	assert.True(t, h.IsClean())
	assert.False(t, doc.IsDirty())
	assert.Equal(t, []bool{true, false}, got)
}

func TestDocument_AbortedInnerMacroKeepsOuterEdits(t *testing.T) {
	doc := New("delays")
	list := collection.NewOrdered(1, 2)
	acc := accessor.NewMulti(doc, accessor.FlatSource[int](list))
	defer acc.Close()
	h := doc.UndoStack()

	h.BeginMacro("outer")
	require.True(t, acc.Add(3))

	scope := h.GroupScope("inner")
	require.True(t, acc.Add(4))
	scope.Abort()

	assert.True(t, doc.IsDirty(), "the outer macro still holds an edit")
	assert.Equal(t, []int{1, 2, 3}, list.Items())

	h.EndMacro()
	assert.True(t, doc.IsDirty())

	h.Undo()
	assert.False(t, doc.IsDirty())
}
