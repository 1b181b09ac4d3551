// math/heading.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// NormalizeHeading reduces an angle in degrees to [0,360).
func NormalizeHeading(h float32) float32 {
	h = Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// Adding 360 to a tiny negative value rounds to exactly 360 in float32.
	if h >= 360 {
		h = 0
	}
	return h
}
