// rand/rand_test.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"testing"
)

func TestDeterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := range 100 {
		if x, y := a.Float32(), b.Float32(); x != y {
			t.Fatalf("step %d: got %f and %f from identically seeded generators", i, x, y)
		}
	}

	c := NewSeeded(43)
	a = NewSeeded(42)
	same := 0
	for range 100 {
		if a.Float32() == c.Float32() {
			same++
		}
	}
	if same > 5 {
		t.Errorf("differently seeded generators agreed %d/100 times", same)
	}
}

func TestRanges(t *testing.T) {
	r := NewSeeded(7)
	counts := make([]int, 3)
	for range 10000 {
		if f := r.Float32(); f < 0 || f >= 1 {
			t.Fatalf("Float32 returned %f", f)
		}
		if u := r.Uniform(-40, 250); u < -40 || u >= 250 {
			t.Fatalf("Uniform(-40, 250) returned %f", u)
		}
		i := r.Intn(3)
		if i < 0 || i >= 3 {
			t.Fatalf("Intn(3) returned %d", i)
		}
		counts[i]++
	}
	for i, c := range counts {
		if c < 3000 || c > 3700 {
			t.Errorf("Intn(3) returned %d %d times out of 10000", i, c)
		}
	}
}
