package catalog

import "math/rand/v2"

// Rand is the source of uniform indexes used by PickRandom.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// GlobalRand draws from the process-wide math/rand/v2 source, which is safe
// for concurrent use.
var GlobalRand Rand = globalRand{}
