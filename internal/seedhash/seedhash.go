// internal/seedhash/seedhash.go
//
// Deterministic 32-bit generator seeded from free-form text (xmur3).
// Responsibilities:
//   - Fold a seed string into a 32-bit accumulator.
//   - Produce an endless, reproducible stream of uint32 draws.
//
// Notes:
//   - Length and characters are taken as UTF-16 code units so that a seed typed
//     into a browser yields the same stream as it does here.
//   - Not cryptographic. Determinism across implementations is the contract.

package seedhash

import (
	"math/bits"
	"unicode/utf16"
)

const (
	initConst = 1779033703
	foldMul   = 3432918353
	mix1      = 0x85EBCA6B
	mix2      = 0xC2B2AE35
)

// Generator is a stateful xmur3 stream. Not safe for concurrent use.
type Generator struct {
	h uint32
}

// New folds seed into a fresh generator.
func New(seed string) *Generator {
	units := utf16.Encode([]rune(seed))
	h := uint32(initConst) ^ uint32(len(units))
	for _, c := range units {
		h = (h ^ uint32(c)) * foldMul
		h = bits.RotateLeft32(h, 13)
	}
	return &Generator{h: h}
}

// Next advances the stream and returns the next draw.
func (g *Generator) Next() uint32 {
	h := g.h
	h = (h ^ h>>16) * mix1
	h = (h ^ h>>13) * mix2
	h ^= h >> 16
	g.h = h
	return h
}

// Func returns the generator as a closure.
func Func(seed string) func() uint32 {
	return New(seed).Next
}

// Draws returns the first n values for seed. Handy for conformance checks.
func Draws(seed string, n int) []uint32 {
	g := New(seed)
	out := make([]uint32, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}
