// view/materials.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package view

import (
	"github.com/rotorfield/rotorfield/renderer"
)

var lights = []renderer.Light{
	{
		Position:          [4]float32{0, 2, -13, 1},
		Diffuse:           renderer.RGB{R: 3.5, G: 3.5, B: 3.5},
		Specular:          renderer.RGB{R: 0.2, G: 0.2, B: 0.2},
		LinearAttenuation: 0.5,
	},
	{
		// Red glow just ahead of the eye.
		Position:          [4]float32{0, 2, -2, 1},
		Diffuse:           renderer.RGB{R: 15},
		Specular:          renderer.RGB{R: 1, G: 1, B: 1},
		LinearAttenuation: 2,
	},
}

var fullBrightLight = renderer.Light{
	Position: [4]float32{0, 100, 0, 1},
	Diffuse:  renderer.RGB{R: 1, G: 1, B: 1},
	Specular: renderer.RGB{R: 1, G: 1, B: 1},
}

// material returns a surface of the given color; emission is not
// normalized, so values above one make the surface glow.
func material(color, emission renderer.RGB, shininess float32) renderer.Material {
	return renderer.Material{
		Ambient:   color.RGBA(1),
		Diffuse:   color.RGBA(1),
		Specular:  renderer.RGBA{R: 1, G: 1, B: 1, A: 1},
		Emission:  emission.RGBA(1),
		Shininess: shininess,
	}
}

var (
	bodyColor  = renderer.RGBFromUInt8(51, 51, 51)
	rotorColor = renderer.RGBFromUInt8(18, 94, 161)

	bodyMaterial  = material(bodyColor, renderer.RGB{}, 80)
	rotorMaterial = material(rotorColor, renderer.RGB{}, 80)
	tailLight     = material(bodyColor, renderer.RGB{R: 3}, 80)
	headLight     = material(bodyColor, renderer.RGB{R: 2, G: 2, B: 2}, 80)

	groundMaterial = renderer.Material{
		Diffuse:   renderer.RGBFromUInt8(96, 128, 56).RGBA(1),
		Specular:  renderer.RGBA{R: 1, G: 1, B: 1, A: 1},
		Shininess: 5,
	}
	pondMaterial = renderer.Material{
		Diffuse:   renderer.RGBFromUInt8(84, 70, 48).RGBA(1),
		Specular:  renderer.RGBA{R: 0.2, G: 0.2, B: 0.2, A: 1},
		Shininess: 5,
	}
	waterMaterial = renderer.Material{
		Diffuse:   renderer.RGBA{R: 0.2, G: 0.4, B: 1, A: 0.8},
		Specular:  renderer.RGBA{R: 1, G: 1, B: 1, A: 1},
		Shininess: 80,
	}
	skyMaterial = renderer.Material{
		Diffuse:  renderer.RGBA{R: 1, G: 1, B: 1, A: 1},
		Specular: renderer.RGBA{R: 1, G: 1, B: 1, A: 1},
		Emission: renderer.RGBFromUInt8(135, 180, 230).RGBA(1),
	}

	trunkMaterial  = material(renderer.RGBFromUInt8(74, 37, 14), renderer.RGB{}, 20)
	leavesMaterial = material(renderer.RGBFromUInt8(22, 61, 7), renderer.RGB{}, 20)
)
