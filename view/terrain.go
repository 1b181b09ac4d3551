// view/terrain.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package view

import (
	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/renderer"
	"github.com/rotorfield/rotorfield/scene"

	"github.com/mmp/earcut-go"
)

const (
	GroundExtent  = 250
	GroundSpacing = 5
	WaterExtent   = 100
	WaterAngle    = 30
	SkyRadius     = 250

	PondDepth = 4
	// The floor of the pond is this fraction of the width of its rim.
	pondFloorScale = 0.75
	pondRimPoints  = 8 // per side
)

// GroundMesh returns the ground plane with the cells over the pond left
// out.
func GroundMesh() *renderer.Mesh {
	return renderer.Grid([2]float32{-GroundExtent, -GroundExtent}, [2]float32{GroundExtent, GroundExtent},
		GroundSpacing, func(x, z float32) bool {
			return x > -scene.PondHalfSize && x < scene.PondHalfSize &&
				z > -scene.PondHalfSize && z < scene.PondHalfSize
		})
}

// WaterMesh returns the grid of the water surface at height zero; it is
// drawn rotated and sliding back and forth.
func WaterMesh() *renderer.Mesh {
	return renderer.Grid([2]float32{-WaterExtent, -WaterExtent}, [2]float32{WaterExtent, WaterExtent},
		GroundSpacing, nil)
}

// pondRing returns the outline of a square of the given half-width,
// counterclockwise seen from above, with pondRimPoints points per side.
func pondRing(half float32) [][2]float32 {
	corners := [][2]float32{{-half, -half}, {-half, half}, {half, half}, {half, -half}}
	var ring [][2]float32
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		for j := range pondRimPoints {
			t := float32(j) / pondRimPoints
			ring = append(ring, [2]float32{math.Lerp(t, c[0], next[0]), math.Lerp(t, c[1], next[1])})
		}
	}
	return ring
}

// PolygonMesh triangulates the polygon in the y plane given by rings in
// (x, z); rings after the first are holes. The triangles face +y.
func PolygonMesh(rings [][][2]float32, y float32) *renderer.Mesh {
	var poly earcut.Polygon
	for _, ring := range rings {
		vertices := make([]earcut.Vertex, len(ring))
		for i, p := range ring {
			vertices[i].P = [2]float64{float64(p[0]), float64(p[1])}
		}
		poly.Rings = append(poly.Rings, vertices)
	}

	m := &renderer.Mesh{}
	for _, tri := range earcut.Triangulate(poly) {
		var p [3][3]float32
		for i, v := range tri.Vertices {
			p[i] = [3]float32{float32(v.P[0]), y, float32(v.P[1])}
		}
		if n := math.Cross3f(math.Sub3f(p[1], p[0]), math.Sub3f(p[2], p[0])); n[1] < 0 {
			p[1], p[2] = p[2], p[1]
		}
		idx := int32(len(m.Positions))
		for _, v := range p {
			m.Positions = append(m.Positions, v)
			m.Normals = append(m.Normals, [3]float32{0, 1, 0})
		}
		m.Indices = append(m.Indices, idx, idx+1, idx+2)
	}
	return m
}

// PondMesh returns the basin under the water: a flat floor and sloping
// banks up to the hole in the ground.
func PondMesh() *renderer.Mesh {
	rim := pondRing(scene.PondHalfSize)
	floor := pondRing(scene.PondHalfSize * pondFloorScale)

	m := PolygonMesh([][][2]float32{floor}, -PondDepth)

	for i := range rim {
		j := (i + 1) % len(rim)
		quad := [4][3]float32{
			{floor[i][0], -PondDepth, floor[i][1]},
			{floor[j][0], -PondDepth, floor[j][1]},
			{rim[j][0], 0, rim[j][1]},
			{rim[i][0], 0, rim[i][1]},
		}
		n := math.Normalize3f(math.Cross3f(math.Sub3f(quad[1], quad[0]), math.Sub3f(quad[3], quad[0])))
		if n[1] < 0 {
			n = math.Scale3f(n, -1)
			quad[1], quad[3] = quad[3], quad[1]
		}
		idx := int32(len(m.Positions))
		for _, p := range quad {
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, n)
		}
		m.Indices = append(m.Indices, idx, idx+1, idx+2, idx, idx+2, idx+3)
	}
	return m
}

func (v *View) drawGround(viewMatrix math.Matrix4, cb *renderer.CommandBuffer) {
	cb.LoadModelViewMatrix(viewMatrix)
	cb.Material(pondMaterial)
	cb.Call(v.pond)
	cb.Material(groundMaterial)
	cb.Call(v.ground)
}

func (v *View) drawWater(env scene.Environment, viewMatrix math.Matrix4, cb *renderer.CommandBuffer) {
	cb.LoadModelViewMatrix(viewMatrix.Rotate(WaterAngle, yAxis).Translate(env.WaterOffset, env.WaterHeight, 0))
	cb.Material(waterMaterial)
	cb.Blend()
	cb.Call(v.water)
	cb.DisableBlend()
}

// drawSky draws the dome; it is seen from the inside, so its back faces
// are lit.
func (v *View) drawSky(viewMatrix math.Matrix4, cb *renderer.CommandBuffer) {
	cb.LoadModelViewMatrix(viewMatrix.Rotate(90, [3]float32{-1, 0, 0}))
	cb.TwoSidedLighting(true)
	cb.Material(skyMaterial)
	cb.Call(v.sky)
	cb.TwoSidedLighting(false)
}
