// Package rng provides the injectable randomness used by the battle engine.
// The enemy pattern draw is the engine's only source of nondeterminism, so
// every consumer takes a Source and tests pass a seeded one.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// Source is the randomness provider.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// seededSource is a deterministic PCG stream.
//
// Not safe for concurrent use; each battle owns its own Source.
type seededSource struct {
	r *mrand.Rand
}

// NewSeeded returns a deterministic Source. Two sources built from the same
// seed yield the same sequence.
func NewSeeded(seed uint64) Source {
	return &seededSource{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn panics with "rng: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return s.r.IntN(n)
}

// OSSeed reads a seed from crypto/rand.
//
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func OSSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// NewFromConfig returns NewSeeded(seed), or an OS-seeded source when seed is 0.
func NewFromConfig(seed int64) Source {
	if seed == 0 {
		return NewSeeded(OSSeed())
	}
	return NewSeeded(uint64(seed))
}

// Pick returns a uniformly chosen index into a collection of length n.
//
// Precondition: n > 0.
func Pick(src Source, n int) int {
	return src.Intn(n)
}
