package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/history"
	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
)

type frame struct {
	name  string
	delay int
}

var (
	frameName  = Field[frame, string]{Name: "name", Ref: func(f *frame) *string { return &f.name }}
	frameDelay = Field[frame, int]{Name: "delay", Ref: func(f *frame) *int { return &f.delay }}
)

func frames() *testTarget[frame] {
	return newFlatTarget(frame{"idle", 1}, frame{"walk", 2}, frame{"jump", 3})
}

func TestEdit(t *testing.T) {
	tgt := frames()

	cmd := NewEdit(tgt, flat, 1, frameDelay, 9)
	require.NotNil(t, cmd)
	assert.Equal(t, "Edit delay", cmd.Description())
	assert.Equal(t, 2, cmd.Old())
	assert.Equal(t, 9, cmd.New())

	cmd.Redo()
	assert.Equal(t, frame{"walk", 9}, tgt.flat()[1])
	assert.Equal(t, []string{"dataChanged -1:1"}, tgt.events)

	cmd.Undo()
	assert.Equal(t, frame{"walk", 2}, tgt.flat()[1])
	assert.Equal(t, 2, tgt.touched)
}

func TestEdit_Declined(t *testing.T) {
	tgt := frames()

	assert.Nil(t, NewEdit(tgt, flat, 1, frameDelay, 2), "unchanged value")
	assert.Nil(t, NewEdit(tgt, flat, 3, frameDelay, 5), "out of range")
	assert.Nil(t, NewEdit(tgt, 0, 0, frameDelay, 5), "missing list")
}

func TestEdit_WholeItem(t *testing.T) {
	tgt := frames()

	cmd := NewEdit(tgt, flat, 0, Whole[frame](), frame{"fall", 4})
	require.NotNil(t, cmd)
	assert.Equal(t, "Edit item", cmd.Description())

	cmd.Redo()
	assert.Equal(t, frame{"fall", 4}, tgt.flat()[0])
	cmd.Undo()
	assert.Equal(t, frame{"idle", 1}, tgt.flat()[0])
}

func TestEditMerge_Continuation(t *testing.T) {
	tgt := frames()
	h := history.NewHistory()

	h.Push(NewEditMerge(tgt, flat, 0, frameDelay, 5, true))
	h.Push(NewEditMerge(tgt, flat, 0, frameDelay, 6, false))
	h.Push(NewEditMerge(tgt, flat, 0, frameDelay, 7, false))

	assert.Equal(t, 1, h.Count())
	assert.Equal(t, 7, tgt.flat()[0].delay)

	h.Undo()
	assert.Equal(t, 1, tgt.flat()[0].delay)
	h.Redo()
	assert.Equal(t, 7, tgt.flat()[0].delay)
}

func TestEditMerge_Rules(t *testing.T) {
	tgt := frames()
	other := frames()

	base := func() *MergeCommand[frame, int] {
		return NewEditMerge(tgt, flat, 0, frameDelay, 5, true)
	}

	tests := []struct {
		name string
		next func() history.Command
		want bool
	}{
		{"continuation", func() history.Command {
			c := NewEditMerge(tgt, flat, 0, frameDelay, 6, false)
			c.old = 5
			return c
		}, true},
		{"first never merges", func() history.Command {
			c := NewEditMerge(tgt, flat, 0, frameDelay, 6, true)
			c.old = 5
			return c
		}, false},
		{"different index", func() history.Command {
			c := NewEditMerge(tgt, flat, 1, frameDelay, 6, false)
			c.old = 5
			return c
		}, false},
		{"different target", func() history.Command {
			c := NewEditMerge(other, flat, 0, frameDelay, 6, false)
			c.old = 5
			return c
		}, false},
		{"not a continuation", func() history.Command {
			return NewEditMerge(tgt, flat, 0, frameDelay, 6, false)
		}, false},
		{"different kind", func() history.Command {
			return NewEdit(tgt, flat, 0, frameDelay, 6)
		}, false},
		{"different field", func() history.Command {
			return NewEditMerge(tgt, flat, 0, frameName, "x", false)
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base()
			assert.Equal(t, tt.want, b.MergeWith(tt.next()))
			if tt.want {
				assert.Equal(t, 6, b.New())
			} else {
				assert.Equal(t, 5, b.New())
			}
		})
	}
}

func TestIncomplete_Preview(t *testing.T) {
	tgt := frames()

	cmd := NewIncomplete(tgt, flat, 2, frameDelay)
	require.NotNil(t, cmd)
	assert.False(t, cmd.HasChanged())

	cmd.SetValue(10)
	cmd.Redo()
	assert.Equal(t, 10, tgt.flat()[2].delay)

	cmd.SetValue(11)
	cmd.Redo()
	assert.Equal(t, 11, tgt.flat()[2].delay)
	assert.True(t, cmd.HasChanged())

	cmd.Undo()
	assert.Equal(t, 3, tgt.flat()[2].delay)
	assert.Zero(t, tgt.touched, "previews do not touch the target")

	assert.Nil(t, NewIncomplete(tgt, flat, 3, frameDelay))
}

func TestIncomplete_Record(t *testing.T) {
	tgt := frames()
	h := history.NewHistory()

	cmd := NewIncomplete(tgt, flat, 2, frameDelay)
	require.NotNil(t, cmd)
	cmd.SetValue(10)
	cmd.Redo()
	assert.Zero(t, tgt.touched)
	assert.False(t, cmd.Recorded())

	cmd.Record()
	h.Push(cmd)
	assert.True(t, cmd.Recorded())
	assert.Equal(t, 1, tgt.touched)
	assert.Equal(t, 10, tgt.flat()[2].delay)

	h.Undo()
	assert.Equal(t, 2, tgt.touched)
	assert.Equal(t, 3, tgt.flat()[2].delay)
}

func TestEditMultiple_DropsUnchanged(t *testing.T) {
	tgt := frames()

	cmd := NewEditMultiple(tgt, flat, indexset.New(0, 1, 2), frameDelay, func(int) int { return 2 })
	require.NotNil(t, cmd)
	assert.Equal(t, []indexset.Pair{{Parent: flat, Child: 0}, {Parent: flat, Child: 2}}, cmd.Changed().Values())
	assert.Equal(t, "Edit delay of 2 items", cmd.Description())

	cmd.Redo()
	assert.Equal(t, []frame{{"idle", 2}, {"walk", 2}, {"jump", 2}}, tgt.flat())
	assert.Equal(t, []string{"dataChanged -1:0", "dataChanged -1:2"}, tgt.events)

	cmd.Undo()
	assert.Equal(t, []frame{{"idle", 1}, {"walk", 2}, {"jump", 3}}, tgt.flat())
}

func TestEditMultiple_NothingChanged(t *testing.T) {
	tgt := frames()

	cmd := NewEditMultiple(tgt, flat, indexset.New(0, 2), frameDelay, func(v int) int { return v })
	assert.Nil(t, cmd)
	assert.Empty(t, tgt.events)
	assert.Nil(t, NewEditMultiple(tgt, flat, indexset.New(0, 7), frameDelay, func(v int) int { return v + 1 }))
}

func TestEditPairs(t *testing.T) {
	tgt := newTarget(map[int][]frame{
		0: {{"a", 1}},
		1: {{"b", 1}, {"c", 2}},
	})

	pairs := indexset.NewPairs(indexset.Pair{Parent: 0, Child: 0}, indexset.Pair{Parent: 1, Child: 1})
	cmd := NewEditPairs(tgt, pairs, frameDelay, func(v int) int { return v * 10 })
	require.NotNil(t, cmd)

	cmd.Redo()
	assert.Equal(t, []frame{{"a", 10}}, tgt.items(0))
	assert.Equal(t, []frame{{"b", 1}, {"c", 20}}, tgt.items(1))

	cmd.Undo()
	assert.Equal(t, []frame{{"b", 1}, {"c", 2}}, tgt.items(1))
}
