// view/craft.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package view

import (
	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/renderer"
)

const (
	BodyRadius   = 0.4
	BodyLength   = 3
	ArmRadius    = 0.2
	ArmLength    = 2
	RotorRadius  = 0.1
	RotorLength  = 3.2
	GuardHeight  = 2 * RotorRadius
	GuardRadius  = RotorLength/2 + 0.1
	GuardLift    = 0.12
	cylinderTess = 20
	rotorTess    = 4
)

type craftPart struct {
	offset         [3]float32
	angle          float32
	radius, length float32
}

var (
	craftBody = craftPart{[3]float32{0, 0, 0}, 0, BodyRadius, BodyLength}
	craftArms = []craftPart{
		{[3]float32{0.3, 0, 1}, 120, ArmRadius, ArmLength},
		{[3]float32{0.5, 0, -1.1}, 60, ArmRadius, ArmLength},
		{[3]float32{-4, 0, 0.8}, 120, ArmRadius, ArmLength},
		{[3]float32{0.55, 0, 2.9}, 60, ArmRadius, ArmLength},
	}
	craftRotors = [][3]float32{{-1, 0.2, -1.95}, {0, 0, 3.65}, {4.4, 0, -0.05}, {0, 0, -3.5}}
	craftLights = []struct {
		craftPart
		material renderer.Material
	}{
		{craftPart{[3]float32{-3.7, 0.2, 1.72}, 90, 0.08, 0.6}, tailLight},
		{craftPart{[3]float32{-0.08, 0.05, 0.3}, 90, 0.1, 0.6}, bodyMaterial},
		{craftPart{[3]float32{2.6, 0, 0.3}, 90, 0.08, 0.6}, bodyMaterial},
		{craftPart{[3]float32{-0.05, 0.02, 0.3}, 90, 0.08, 0.6}, headLight},
	}
)

// CraftMatrix returns the craft's object-to-world transformation: its
// position, heading, and the tilt into its horizontal motion.
func CraftMatrix(h *heli.Helicopter) math.Matrix4 {
	tilt, axis := h.Tilt()
	return math.Identity4x4().
		Translate(h.Position[0], h.Position[1], h.Position[2]).
		Rotate(h.Heading, yAxis).
		Rotate(tilt, axis)
}

// craftBuilder emits the craft's parts. Each part's placement is relative
// to wherever the previous one left the transformation, so the order of
// the calls matters.
type craftBuilder struct {
	cb     *renderer.CommandBuffer
	meshes *renderer.MeshCache
	m      math.Matrix4
}

func (c *craftBuilder) draw(mesh *renderer.Mesh, m math.Matrix4) {
	c.cb.LoadModelViewMatrix(m)
	mesh.GenerateCommands(c.cb)
}

func (c *craftBuilder) cylinder(p craftPart, caps bool) {
	c.m = c.m.Translate(p.offset[0], p.offset[1], p.offset[2]).
		Rotate(90+p.angle, yAxis).
		Translate(0, 0, -p.length/2)
	c.draw(c.meshes.Cylinder(p.radius, p.radius, p.length, cylinderTess, cylinderTess), c.m)

	if caps {
		sphere := c.meshes.Sphere(p.radius, cylinderTess, cylinderTess)
		c.draw(sphere, c.m)
		c.m = c.m.Rotate(-90, yAxis).Translate(p.length, 0, 0)
		c.draw(sphere, c.m)
		c.m = c.m.Rotate(-p.angle, yAxis)
	}
}

func (c *craftBuilder) rotor(offset [3]float32, rotation float32) {
	c.cb.Material(rotorMaterial)
	c.m = c.m.Translate(offset[0], offset[1], offset[2]).
		Rotate(90, yAxis).
		Rotate(rotation, yAxis).
		Translate(0, 0, -RotorLength/2)
	c.draw(c.meshes.Cylinder(RotorRadius, RotorRadius, RotorLength, rotorTess, rotorTess), c.m)
	c.m = c.m.Translate(0, 0, RotorLength/2).Rotate(-rotation-90, yAxis)

	// The guard leaves the transformation unchanged.
	c.cb.Material(bodyMaterial)
	c.draw(c.meshes.Cylinder(GuardRadius, GuardRadius, GuardHeight, cylinderTess, cylinderTess),
		c.m.Translate(0, GuardLift, 0).Rotate(90, xAxis))
}

func (v *View) drawCraft(h *heli.Helicopter, viewMatrix math.Matrix4, cb *renderer.CommandBuffer) {
	c := craftBuilder{cb: cb, meshes: v.meshes, m: viewMatrix.PostMultiply(CraftMatrix(h))}

	cb.Material(bodyMaterial)
	c.cylinder(craftBody, true)
	for _, arm := range craftArms {
		c.cylinder(arm, true)
	}

	for _, r := range craftRotors {
		c.rotor(r, h.RotorAngle)
	}

	for _, l := range craftLights {
		cb.Material(l.material)
		c.cylinder(l.craftPart, false)
	}

	// Later geometry should not glow.
	cb.Material(material(renderer.RGB{}, renderer.RGB{}, 80))
}
