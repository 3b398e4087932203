package vizutil

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShuffleIsPermutation(t *testing.T) {
	r := NewRand(7)
	for n := 0; n < 40; n++ {
		in := make([]int, n)
		for i := range in {
			in[i] = r.IntN(5) // duplicates on purpose
		}
		out := append([]int(nil), in...)
		Shuffle(out, r)

		assert.Len(t, out, n)
		a := append([]int(nil), in...)
		b := append([]int(nil), out...)
		sort.Ints(a)
		sort.Ints(b)
		assert.Equal(t, a, b, "n=%d", n)
	}
}

func TestShuffleDeterministicPerSeed(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e", "f"}
	b := append([]string(nil), a...)
	Shuffle(a, NewRand(42))
	Shuffle(b, NewRand(42))
	assert.Equal(t, a, b)
}

func TestShuffleRoughlyUniform(t *testing.T) {
	r := NewRand(1)
	counts := map[string]int{}
	const rounds = 60000
	for i := 0; i < rounds; i++ {
		s := []string{"x", "y", "z"}
		Shuffle(s, r)
		counts[strings.Join(s, "")]++
	}
	assert.Len(t, counts, 6)
	for perm, c := range counts {
		assert.InDelta(t, rounds/6, c, rounds/6*0.05, perm)
	}
}

func TestShuffleNilSource(t *testing.T) {
	s := []int{1, 2, 3, 4}
	Shuffle(s, nil)
	sort.Ints(s)
	assert.Equal(t, []int{1, 2, 3, 4}, s)
}
