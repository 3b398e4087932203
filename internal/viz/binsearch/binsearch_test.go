package binsearch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFound(t *testing.T) {
	steps := Steps([]int{2, 5, 8, 12, 16, 23, 38, 56, 72, 91}, 23)
	last := steps[len(steps)-1]
	assert.Equal(t, Found, last.Phase)
	assert.Equal(t, 5, last.Mid)
	assert.Equal(t, Hit, last.Marks[5])
	assert.Equal(t, Start, steps[0].Phase)
	assert.Equal(t, -1, steps[0].Mid)
}

func TestNotFound(t *testing.T) {
	steps := Steps([]int{1, 3, 5, 7}, 4)
	last := steps[len(steps)-1]
	assert.Equal(t, NotFound, last.Phase)
	assert.Greater(t, last.Lo, last.Hi)
	for _, m := range last.Marks {
		assert.Equal(t, Eliminated, m)
	}
}

func TestCompareThenUpdate(t *testing.T) {
	steps := Steps([]int{1, 3, 5, 7, 9}, 9)
	// start, compare(mid=2), update(lo=3), compare(mid=3), update(lo=4), compare(mid=4), found
	phases := make([]Phase, len(steps))
	for i, s := range steps {
		phases[i] = s.Phase
	}
	assert.Equal(t, []Phase{Start, Compare, Update, Compare, Update, Compare, Found}, phases)
	assert.Equal(t, Mid, steps[1].Marks[2])
	assert.Equal(t, Eliminated, steps[2].Marks[0])
	assert.Equal(t, 3, steps[2].Lo)
	assert.Equal(t, 3, steps[len(steps)-1].Comparisons)
}

func TestComparisonBound(t *testing.T) {
	for n := 1; n <= MaxValues; n++ {
		a := make([]int, n)
		for i := range a {
			a[i] = i * 2
		}
		bound := int(math.Ceil(math.Log2(float64(n)))) + 1
		for target := -1; target <= 2*n; target++ {
			steps := Steps(a, target)
			got := steps[len(steps)-1].Comparisons
			require.LessOrEqual(t, got, bound, "n=%d target=%d", n, target)
		}
	}
}

func TestSortsInputAndCopies(t *testing.T) {
	in := []int{9, 1, 5}
	steps := Steps(in, 5)
	assert.Equal(t, []int{9, 1, 5}, in, "input must not be mutated")
	assert.Equal(t, []int{1, 5, 9}, steps[0].Values)

	steps[0].Values[0] = 100
	assert.Equal(t, 1, steps[1].Values[0], "snapshots must not share backing arrays")
}

func TestEmpty(t *testing.T) {
	steps := Steps(nil, 3)
	require.Len(t, steps, 1)
	assert.Equal(t, Empty, steps[0].Phase)
}
