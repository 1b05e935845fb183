package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Palette struct {
	Name   string
	Colors []uint16
}

func TestCopyPaste(t *testing.T) {
	items := []Palette{
		{Name: "sky", Colors: []uint16{0x7fff, 0x001f}},
		{Name: "grass", Colors: []uint16{0x03e0}},
	}

	data, err := Copy("palette", items)
	require.NoError(t, err)

	got, err := Paste[Palette](data, "palette")
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestCopy_Deterministic(t *testing.T) {
	a, err := Copy("s", []string{"x", "y"})
	require.NoError(t, err)
	b, err := Copy("s", []string{"x", "y"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPaste_TypeMismatch(t *testing.T) {
	data, err := Copy("palette", []string{"x"})
	require.NoError(t, err)

	_, err = Paste[string](data, "frame")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestPaste_Garbage(t *testing.T) {
	_, err := Paste[string]([]byte{0xff, 0x00}, "s")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTypeMismatch)
}

func TestEmpty(t *testing.T) {
	_, err := Copy[string]("s", nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "string", TypeOf[string]())
	assert.Equal(t, "clipboard.Palette", TypeOf[Palette]())
}
