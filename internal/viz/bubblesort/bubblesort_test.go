package bubblesort

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/stepviz/internal/viz"
)

func TestSortsAscending(t *testing.T) {
	in := []int{5, 1, 4, 2, 8, 3}
	steps := Steps(in)
	last := steps[len(steps)-1]
	assert.Equal(t, Done, last.Phase)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 8}, last.Values)
	assert.Equal(t, []int{5, 1, 4, 2, 8, 3}, in, "input must not be mutated")
}

func TestOneSnapshotPerComparisonAndSwap(t *testing.T) {
	steps := Steps([]int{3, 2, 1})
	var phases []Phase
	for _, s := range steps {
		phases = append(phases, s.Phase)
	}
	assert.Equal(t, []Phase{Start, Compare, Swap, Compare, Swap, Compare, Swap, Done}, phases)
	last := steps[len(steps)-1]
	assert.Equal(t, 3, last.Comparisons)
	assert.Equal(t, 3, last.Swaps)
}

func TestEarlyExitOnSortedInput(t *testing.T) {
	steps := Steps([]int{1, 2, 3, 4})
	// one pass of three comparisons, no swaps
	assert.Len(t, steps, 5)
	assert.Equal(t, 0, steps[len(steps)-1].Swaps)
}

func TestSwapSnapshotShowsSwappedValues(t *testing.T) {
	steps := Steps([]int{2, 1})
	require.Equal(t, Swap, steps[2].Phase)
	assert.Equal(t, []int{1, 2}, steps[2].Values)
	assert.Equal(t, []int{2, 1}, steps[1].Values)
	assert.Equal(t, "Swap 2 and 1", steps[2].Message)
}

func TestSingleValue(t *testing.T) {
	steps := Steps([]int{7})
	require.Len(t, steps, 2)
	assert.Equal(t, Done, steps[1].Phase)
}

func TestEmpty(t *testing.T) {
	steps := Steps(nil)
	require.Len(t, steps, 1)
	assert.Equal(t, "Nothing to sort", steps[0].Message)
}

func TestShuffleIsSeeded(t *testing.T) {
	v, ok := viz.Lookup("bubble-sort")
	require.True(t, ok)
	assert.True(t, v.Random)

	in := viz.Params{"values": "9,8,7,6,5,4,3,2,1", "shuffle": "true", "seed": "42"}
	a := v.Generate(in)
	b := v.Generate(in)
	assert.Equal(t, a, b)

	first := a[0].(Step).Values
	got := append([]int(nil), first...)
	sort.Ints(got)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, got)

	plain := v.Generate(viz.Params{"values": "9,8,7,6,5,4,3,2,1"})
	assert.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1}, plain[0].(Step).Values)
}
