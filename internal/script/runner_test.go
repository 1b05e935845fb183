package script

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/undisbeliever/untech-editor-sub002/internal/config"
)

func run(t *testing.T, src string) (Result, string) {
	t.Helper()
	s, err := Parse([]byte(src))
	require.NoError(t, err)

	var out bytes.Buffer
	r := &Runner{Script: s, Config: config.Default(), Logger: zaptest.NewLogger(t), Out: &out}
	res, err := r.Run(context.Background())
	require.NoError(t, err)
	return res, out.String()
}

func TestRun_Lower(t *testing.T) {
	res, out := run(t, `
items: [A, B, C, D]
steps:
  - {op: select, indexes: [1, 2]}
  - {op: lower}
  - {op: select, indexes: [1, 3]}
  - {op: lower}
  - {op: undo}
`)

	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Items)
	assert.Equal(t, 1, res.Declined)
	assert.Equal(t, "Lower 2 items", res.RedoText)
	assert.Empty(t, res.UndoText)
	assert.False(t, res.Dirty, "undo returned to the initial state")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "[A D B C]")
	assert.Contains(t, lines[1], "sel=[2 3]")
	assert.Contains(t, lines[3], "declined")
}

func TestRun_RaiseToTop(t *testing.T) {
	res, _ := run(t, `
items: [a, b, c, d, e, f]
steps:
  - {op: select, indexes: [1, 3, 5]}
  - {op: top}
`)

	assert.Equal(t, []string{"b", "d", "f", "a", "c", "e"}, res.Items)
	assert.Equal(t, []int{0, 1, 2}, res.Selected)
	assert.Equal(t, "Raise to top 3 items", res.UndoText)
	assert.True(t, res.Dirty)
}

func TestRun_MaxSize(t *testing.T) {
	res, _ := run(t, `
items: [A, B]
max_size: 3
steps:
  - {op: select, indexes: [0, 1]}
  - {op: clone}
  - {op: add, value: X}
  - {op: add, value: Y}
`)

	assert.Equal(t, []string{"A", "B", "X"}, res.Items)
	assert.Equal(t, []int{2}, res.Selected)
	assert.Equal(t, 2, res.Declined)
	assert.Equal(t, "Add 1 item", res.UndoText)
}

func TestRun_MacroAndSave(t *testing.T) {
	res, _ := run(t, `
items: [A, B, C]
steps:
  - {op: begin, value: rename}
  - {op: select, indexes: [0, 2]}
  - {op: edit, value: Z}
  - {op: add, values: [P, Q]}
  - {op: end}
  - {op: save}
  - {op: undo}
`)

	assert.Equal(t, []string{"A", "B", "C"}, res.Items)
	assert.Equal(t, "rename", res.RedoText)
	assert.True(t, res.Dirty)
}

func TestRun_EndWithoutBegin(t *testing.T) {
	res, _ := run(t, `
items: [A]
steps:
  - {op: end}
`)
	assert.Equal(t, 1, res.Declined)
}

func TestRun_CopyPaste(t *testing.T) {
	res, _ := run(t, `
items: [A, B, C]
steps:
  - {op: paste}
  - {op: select, indexes: [0, 1]}
  - {op: copy}
  - {op: select, indexes: [2]}
  - {op: paste}
`)

	assert.Equal(t, []string{"A", "B", "C", "A", "B"}, res.Items)
	assert.Equal(t, []int{3, 4}, res.Selected)
	assert.Equal(t, "Paste", res.UndoText)
	assert.Equal(t, 1, res.Declined, "paste with an empty clipboard")
}

func TestRun_CopyNothingSelected(t *testing.T) {
	res, _ := run(t, `
items: [A, B]
steps:
  - {op: copy}
  - {op: select, indexes: [1]}
  - {op: copy}
  - {op: paste}
`)

	assert.Equal(t, 1, res.Declined)
	assert.Equal(t, []string{"A", "B", "B"}, res.Items)
}

func TestRun_Check(t *testing.T) {
	res, _ := run(t, `
items: [A, ""]
steps:
  - {op: check}
`)
	assert.Equal(t, 1, res.Declined)
	assert.True(t, res.Unchecked)

	res, _ = run(t, `
items: [A, ""]
steps:
  - {op: select, indexes: [1]}
  - {op: edit, value: B}
  - {op: check}
`)
	assert.Zero(t, res.Declined)
	assert.False(t, res.Unchecked)
	assert.Equal(t, []string{"A", "B"}, res.Items)
}

func TestRun_ConfigMaxSize(t *testing.T) {
	s, err := Parse([]byte("items: [A]\nsteps:\n  - {op: add, value: B}\n"))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Lists.MaxSize = 1
	res, err := (&Runner{Script: s, Config: cfg}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, res.Items)
	assert.Equal(t, 1, res.Declined)
}

func TestRun_Cancelled(t *testing.T) {
	s, err := Parse([]byte("items: [A]\nsteps:\n  - {op: clone}\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = (&Runner{Script: s, Config: config.Default()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s, err := Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, s.Steps)
	})

	t.Run("unknown op", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - {op: shuffle}\n"))
		assert.ErrorIs(t, err, ErrUnknownOp)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Parse([]byte("items: [A]\ncolour: red\n"))
		assert.Error(t, err)
	})

	t.Run("negative max size", func(t *testing.T) {
		_, err := Parse([]byte("max_size: -1\n"))
		assert.Error(t, err)
	})
}
