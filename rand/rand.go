// rand/rand.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"github.com/MichaelTJones/pcg"
)

///////////////////////////////////////////////////////////////////////////
// Random numbers.

// Rand is a seedable PCG32 generator. Identical seeds give identical
// sequences on every platform, which the forest scatter relies on.
type Rand struct {
	r *pcg.PCG32
}

func New() Rand {
	return Rand{r: pcg.NewPCG32()}
}

// NewSeeded returns a Rand seeded with s.
func NewSeeded(s int64) Rand {
	r := New()
	r.Seed(s)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

// Intn returns a value in [0,n).
func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float32 returns a value in [0,1).
func (r *Rand) Float32() float32 {
	return float32(r.r.Random()>>8) / (1 << 24)
}

// Uniform returns a value in [lo,hi).
func (r *Rand) Uniform(lo, hi float32) float32 {
	return lo + (hi-lo)*r.Float32()
}
