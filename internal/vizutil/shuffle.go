// Package vizutil holds the stateless helpers every visualizer shares.
package vizutil

import "math/rand/v2"

// NewRand returns a deterministic PCG source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Shuffle permutes s in place with Fisher-Yates, walking from the last index
// down and swapping each with a uniformly chosen index at or below it.
// A nil r uses the global source.
func Shuffle[T any](s []T, r *rand.Rand) {
	for i := len(s) - 1; i >= 1; i-- {
		var j int
		if r != nil {
			j = r.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		s[i], s[j] = s[j], s[i]
	}
}
