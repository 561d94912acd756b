// Package seeded provides reproducible pseudo-random sequences keyed by
// arbitrary strings. The same key yields the same sequence on every platform,
// which is what lets curriculum shaping and lesson sampling be replayed.
package seeded

import "hash/fnv"

// golden is the mulberry32 increment.
const golden = 0x6D2B79F5

// Generator is a mulberry32 generator. The zero value is usable and equals
// a generator seeded with state 0. A Generator must not be shared between
// goroutines.
type Generator struct {
	state uint32
}

// Hash returns the 32-bit FNV-1a hash of key.
func Hash(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}

// New returns a generator whose state is the hash of key.
func New(key string) *Generator {
	return &Generator{state: Hash(key)}
}

// FromState returns a generator starting from an explicit state.
func FromState(state uint32) *Generator {
	return &Generator{state: state}
}

// Uint32 advances the generator and returns the next 32-bit output.
func (g *Generator) Uint32() uint32 {
	g.state += golden
	t := g.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.Uint32()) / 4294967296.0
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		panic("seeded: Intn called with non-positive n")
	}
	return int(g.Float64() * float64(n))
}

// Shuffle performs a Fisher-Yates shuffle over n elements, walking from the
// last index down and swapping each with a position drawn from [0, i].
func (g *Generator) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		swap(i, j)
	}
}
