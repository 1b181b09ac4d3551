// renderer/mesh.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"

	"github.com/rotorfield/rotorfield/math"

	lru "github.com/hashicorp/golang-lru/v2"
)

///////////////////////////////////////////////////////////////////////////
// Mesh

// Mesh is an indexed triangle mesh with per-vertex normals. The
// primitive builders follow the GLU quadric conventions: cylinders and
// cones run along +z starting at the origin, and spheres and discs are
// centered at the origin.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []int32
}

// Vertices returns the number of vertices in the mesh.
func (m *Mesh) Vertices() int {
	return len(m.Positions)
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Append adds the geometry of m2 to m.
func (m *Mesh) Append(m2 *Mesh) {
	base := int32(len(m.Positions))
	m.Positions = append(m.Positions, m2.Positions...)
	m.Normals = append(m.Normals, m2.Normals...)
	for _, idx := range m2.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Transformed returns a copy of m with xf applied to its vertices. Normals
// are transformed by the upper 3x3 of xf and renormalized, which is
// correct for rigid transformations and uniform scales.
func (m *Mesh) Transformed(xf math.Matrix4) *Mesh {
	t := &Mesh{
		Positions: make([][3]float32, len(m.Positions)),
		Normals:   make([][3]float32, len(m.Normals)),
		Indices:   append([]int32(nil), m.Indices...),
	}
	for i, p := range m.Positions {
		t.Positions[i] = xf.TransformPoint(p)
	}
	for i, n := range m.Normals {
		t.Normals[i] = math.Normalize3f(xf.TransformVector(n))
	}
	return t
}

// Bounds returns the axis-aligned bounding box of the mesh's vertices.
func (m *Mesh) Bounds() (lo, hi [3]float32) {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for c := range 3 {
			lo[c] = min(lo[c], p[c])
			hi[c] = max(hi[c], p[c])
		}
	}
	return
}

// GenerateCommands adds commands to the specified command buffer to draw
// the mesh with the current modelview matrix and material.
func (m *Mesh) GenerateCommands(cb *CommandBuffer) {
	if len(m.Indices) == 0 {
		return
	}

	p := cb.Float3Buffer(m.Positions)
	cb.VertexArray(p, 3, 3*4)
	n := cb.Float3Buffer(m.Normals)
	cb.NormalArray(n, 3*4)

	ind := cb.IntBuffer(m.Indices)
	cb.DrawTriangles(ind, len(m.Indices))

	cb.DisableNormalArray()
	cb.DisableVertexArray()
}

// Cylinder returns an open-ended cylinder (or truncated cone when base
// and top differ) along +z from z=0 to z=height.
func Cylinder(base, top, height float32, slices, stacks int) *Mesh {
	slices, stacks = max(slices, 3), max(stacks, 1)
	circle := math.CirclePoints(slices)

	var nz float32
	if height != 0 {
		nz = (base - top) / height
	}

	m := &Mesh{}
	for j := 0; j <= stacks; j++ {
		t := float32(j) / float32(stacks)
		z, r := t*height, math.Lerp(t, base, top)
		for _, c := range circle {
			m.Positions = append(m.Positions, [3]float32{r * c[0], r * c[1], z})
			m.Normals = append(m.Normals, math.Normalize3f([3]float32{c[0], c[1], nz}))
		}
	}
	for j := range stacks {
		for i := range slices {
			a := int32(j*slices + i)
			b := int32(j*slices + (i+1)%slices)
			c, d := a+int32(slices), b+int32(slices)
			m.Indices = append(m.Indices, a, b, d, a, d, c)
		}
	}
	return m
}

// Sphere returns a sphere of the given radius; its poles are on the z
// axis.
func Sphere(radius float32, slices, stacks int) *Mesh {
	slices, stacks = max(slices, 3), max(stacks, 2)
	circle := math.CirclePoints(slices)

	m := &Mesh{}
	for j := 0; j <= stacks; j++ {
		phi := float32(gomath.Pi) * float32(j) / float32(stacks)
		s, c := math.Sin(phi), math.Cos(phi)
		for _, p := range circle {
			n := [3]float32{s * p[0], s * p[1], c}
			m.Positions = append(m.Positions, math.Scale3f(n, radius))
			m.Normals = append(m.Normals, n)
		}
	}
	for j := range stacks {
		for i := range slices {
			a := int32(j*slices + i)
			b := int32(j*slices + (i+1)%slices)
			c, d := a+int32(slices), b+int32(slices)
			m.Indices = append(m.Indices, a, c, d, a, d, b)
		}
	}
	return m
}

// Disc returns a filled circle in the z=0 plane facing +z.
func Disc(radius float32, slices int) *Mesh {
	slices = max(slices, 3)
	m := &Mesh{
		Positions: [][3]float32{{0, 0, 0}},
		Normals:   [][3]float32{{0, 0, 1}},
	}
	for _, c := range math.CirclePoints(slices) {
		m.Positions = append(m.Positions, [3]float32{radius * c[0], radius * c[1], 0})
		m.Normals = append(m.Normals, [3]float32{0, 0, 1})
	}
	for i := range slices {
		m.Indices = append(m.Indices, 0, int32(1+i), int32(1+(i+1)%slices))
	}
	return m
}

// Cone returns a closed cone along +z with its base at z=0.
func Cone(radius, height float32, slices int) *Mesh {
	m := Cylinder(radius, 0, height, slices, 1)
	m.Append(Disc(radius, slices).Transformed(math.Identity4x4().Rotate(180, [3]float32{1, 0, 0})))
	return m
}

// Grid returns square cells of the given spacing in the y=0 plane,
// facing +y. Cells start at every multiple of spacing from lo up to and
// including hi, so the grid may extend one cell past hi. The skip
// function, if non-nil, is called with each cell's minimum corner and
// may drop the cell.
func Grid(lo, hi [2]float32, spacing float32, skip func(x, z float32) bool) *Mesh {
	m := &Mesh{}
	if spacing <= 0 {
		return m
	}
	nx := int((hi[0]-lo[0])/spacing) + 1
	nz := int((hi[1]-lo[1])/spacing) + 1
	for i := range nx {
		x := lo[0] + float32(i)*spacing
		for j := range nz {
			z := lo[1] + float32(j)*spacing
			if skip != nil && skip(x, z) {
				continue
			}
			idx := int32(len(m.Positions))
			m.Positions = append(m.Positions,
				[3]float32{x, 0, z}, [3]float32{x, 0, z + spacing},
				[3]float32{x + spacing, 0, z + spacing}, [3]float32{x + spacing, 0, z})
			m.Normals = append(m.Normals, [3]float32{0, 1, 0}, [3]float32{0, 1, 0},
				[3]float32{0, 1, 0}, [3]float32{0, 1, 0})
			m.Indices = append(m.Indices, idx, idx+1, idx+2, idx, idx+2, idx+3)
		}
	}
	return m
}

///////////////////////////////////////////////////////////////////////////
// MeshCache

type meshKind int

const (
	meshCylinder meshKind = iota
	meshSphere
	meshDisc
	meshCone
)

type meshKey struct {
	kind           meshKind
	a, b, c        float32
	slices, stacks int
}

// MeshCache holds recently used primitive meshes so that they are not
// tessellated every frame. The returned meshes are shared and must not
// be modified.
type MeshCache struct {
	cache *lru.Cache[meshKey, *Mesh]
}

func NewMeshCache(size int) *MeshCache {
	c, err := lru.New[meshKey, *Mesh](max(size, 1))
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &MeshCache{cache: c}
}

func (mc *MeshCache) get(k meshKey, build func() *Mesh) *Mesh {
	if m, ok := mc.cache.Get(k); ok {
		return m
	}
	m := build()
	mc.cache.Add(k, m)
	return m
}

func (mc *MeshCache) Cylinder(base, top, height float32, slices, stacks int) *Mesh {
	k := meshKey{kind: meshCylinder, a: base, b: top, c: height, slices: slices, stacks: stacks}
	return mc.get(k, func() *Mesh { return Cylinder(base, top, height, slices, stacks) })
}

func (mc *MeshCache) Sphere(radius float32, slices, stacks int) *Mesh {
	k := meshKey{kind: meshSphere, a: radius, slices: slices, stacks: stacks}
	return mc.get(k, func() *Mesh { return Sphere(radius, slices, stacks) })
}

func (mc *MeshCache) Disc(radius float32, slices int) *Mesh {
	k := meshKey{kind: meshDisc, a: radius, slices: slices}
	return mc.get(k, func() *Mesh { return Disc(radius, slices) })
}

func (mc *MeshCache) Cone(radius, height float32, slices int) *Mesh {
	k := meshKey{kind: meshCone, a: radius, b: height, slices: slices}
	return mc.get(k, func() *Mesh { return Cone(radius, height, slices) })
}

// Len returns the number of meshes currently cached.
func (mc *MeshCache) Len() int {
	return mc.cache.Len()
}
