// Package testutil provides deterministic test doubles shared across
// packages.
package testutil

import "math/rand"

// SeededRand returns a rand.Rand with a fixed seed so shuffle-dependent
// tests produce identical orderings on every run.
func SeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
