// Package randutil centralises how deterministic RNGs are constructed.
// Every source of randomness in the engine (deck shuffles, Monte Carlo
// sampling, strategy mixing) is injected as a *rand.Rand built here, so a
// single int64 seed reproduces an entire simulation.
package randutil

import rand "math/rand/v2"

// New returns a *rand.Rand seeded deterministically from the provided
// int64. rand/v2's PCG wants two 64-bit seeds; a splitmix64 walk expands
// the single value so call sites never thread seed pairs around.
func New(seed int64) *rand.Rand {
	state := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(&state), splitmix(&state)))
}

// Derive returns a child RNG whose stream is independent of later draws
// from the parent. Used to hand each table, each seat and each Monte
// Carlo worker its own generator.
func Derive(parent *rand.Rand) *rand.Rand {
	return New(int64(parent.Uint64()))
}

// splitmix advances one step of splitmix64, the usual seed expander.
func splitmix(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	x := *state
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
