package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/indexset"
)

func TestPlanMoves(t *testing.T) {
	step := func(from, to int) Step { return Step{Parent: 0, From: from, To: to} }

	tests := []struct {
		name    string
		set     []int
		size    int
		dir     Direction
		want    []Step
		decline bool
	}{
		{name: "raise", set: []int{1, 3}, size: 5, dir: Raise, want: []Step{step(1, 0), step(3, 2)}},
		{name: "raise at top", set: []int{0, 2}, size: 5, dir: Raise, decline: true},
		{name: "lower", set: []int{1, 2}, size: 4, dir: Lower, want: []Step{step(2, 3), step(1, 2)}},
		{name: "lower at bottom", set: []int{1, 3}, size: 4, dir: Lower, decline: true},
		{name: "raise to top", set: []int{1, 3, 5}, size: 6, dir: RaiseToTop, want: []Step{step(1, 0), step(3, 1), step(5, 2)}},
		{name: "raise to top skips no-ops", set: []int{0, 3}, size: 6, dir: RaiseToTop, want: []Step{step(3, 1)}},
		{name: "raise to top already there", set: []int{0, 1}, size: 6, dir: RaiseToTop, decline: true},
		{name: "lower to bottom", set: []int{0, 2}, size: 5, dir: LowerToBottom, want: []Step{step(2, 4), step(0, 3)}},
		{name: "lower to bottom already there", set: []int{3, 4}, size: 5, dir: LowerToBottom, decline: true},
		{name: "empty", set: nil, size: 5, dir: Raise, decline: true},
		{name: "out of range", set: []int{2, 5}, size: 5, dir: RaiseToTop, decline: true},
		{name: "unknown direction", set: []int{2}, size: 5, dir: Direction(9), decline: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PlanMoves(0, indexset.New(tt.set...), tt.size, tt.dir)
			if tt.decline {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanPairMoves_SkipsDeclinedParents(t *testing.T) {
	pairs := indexset.NewPairs(
		indexset.Pair{Parent: 0, Child: 0},
		indexset.Pair{Parent: 1, Child: 2},
	)
	size := func(int) int { return 4 }

	got, ok := PlanPairMoves(pairs, size, Raise)
	assert.True(t, ok)
	assert.Equal(t, []Step{{Parent: 1, From: 2, To: 1}}, got)

	_, ok = PlanPairMoves(indexset.NewPairs(indexset.Pair{Parent: 0, Child: 0}), size, Raise)
	assert.False(t, ok)
}

func TestPlanClones(t *testing.T) {
	got, ok := PlanClones(indexset.New(1, 3), 5)
	assert.True(t, ok)
	assert.Equal(t, []int{2, 5}, got)

	_, ok = PlanClones(indexset.New(5), 5)
	assert.False(t, ok)

	_, ok = PlanClones(indexset.New[int](), 5)
	assert.False(t, ok)
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "raise to top", RaiseToTop.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())
}
