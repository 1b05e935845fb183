package indexset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SortsAndDedupes(t *testing.T) {
	s := New(5, 1, 3, 1, 5)

	assert.Equal(t, []int{1, 3, 5}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, s.Front())
	assert.Equal(t, 5, s.Back())
}

func TestSet_ZeroValue(t *testing.T) {
	var s Set[int]

	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains(0))
	assert.True(t, s.Insert(2))
	assert.Equal(t, []int{2}, s.Values())
}

func TestSet_InsertRemove(t *testing.T) {
	s := New(1, 5)

	require.True(t, s.Insert(3))
	require.False(t, s.Insert(3))
	assert.Equal(t, []int{1, 3, 5}, s.Values())

	require.True(t, s.Remove(1))
	require.False(t, s.Remove(1))
	assert.Equal(t, []int{3, 5}, s.Values())

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestSet_Iteration(t *testing.T) {
	s := New(4, 2, 9)

	var forward, backward []int
	var ranks []int
	for i, v := range s.All() {
		forward = append(forward, v)
		ranks = append(ranks, i)
	}
	for _, v := range s.Backward() {
		backward = append(backward, v)
	}

	assert.Equal(t, []int{2, 4, 9}, forward)
	assert.Equal(t, []int{0, 1, 2}, ranks)
	assert.Equal(t, []int{9, 4, 2}, backward)
}

func TestSet_Map(t *testing.T) {
	s := New(1, 2, 3)

	got := s.Map(func(v int) (int, bool) {
		if v == 2 {
			return 0, false
		}
		return 10 - v, true
	})

	assert.Equal(t, []int{7, 9}, got.Values())
	assert.Equal(t, []int{1, 2, 3}, s.Values(), "source set must not change")
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := New(1, 2)
	c := s.Clone()
	c.Insert(3)

	assert.False(t, s.Contains(3))
	assert.True(t, c.Equal(New(1, 2, 3)))
}

func TestPairSet_Groups(t *testing.T) {
	s := NewPairs(
		Pair{Parent: 1, Child: 4},
		Pair{Parent: 0, Child: 2},
		Pair{Parent: 1, Child: 0},
		Pair{Parent: 0, Child: 2},
	)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, []int{0, 1}, s.Parents())
	assert.Equal(t, []int{2}, s.Children(0).Values())
	assert.Equal(t, []int{0, 4}, s.Children(1).Values())
	assert.True(t, s.Children(7).IsEmpty())

	groups := map[int][]int{}
	for parent, children := range s.Groups() {
		groups[parent] = children.Values()
	}
	assert.Equal(t, map[int][]int{0: {2}, 1: {0, 4}}, groups)
}

func TestPairSet_InsertRemoveContains(t *testing.T) {
	var s PairSet

	require.True(t, s.Insert(Pair{Parent: 1, Child: 1}))
	require.True(t, s.Insert(Pair{Parent: 0, Child: 5}))
	require.False(t, s.Insert(Pair{Parent: 1, Child: 1}))

	assert.Equal(t, []Pair{{Parent: 0, Child: 5}, {Parent: 1, Child: 1}}, s.Values())
	assert.True(t, s.Contains(Pair{Parent: 0, Child: 5}))

	require.True(t, s.Remove(Pair{Parent: 0, Child: 5}))
	assert.False(t, s.Contains(Pair{Parent: 0, Child: 5}))
	assert.Equal(t, "(1,1)", s.At(0).String())
}
