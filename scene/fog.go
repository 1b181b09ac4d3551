// scene/fog.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/math"
)

// FogDensity returns the exponential fog density for a craft at p. The
// fog stays thin over most of the map and then closes in sharply as the
// craft nears the edge.
func FogDensity(p [3]float32) float32 {
	r := math.LengthXZ(p)*0.036/heli.MapRadius + 0.005
	return 8800000*math.Pow(r, 6) + 0.005
}
