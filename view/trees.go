// view/trees.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package view

import (
	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/renderer"
	"github.com/rotorfield/rotorfield/util"
)

const treeTess = 16

// treeShape gives the dimensions of a tree model. The canopies match the
// collision radii in heli.TreeModel: each canopy is as wide as the
// footprint above the model's threshold altitude.
type treeShape struct {
	trunkRadius, trunkHeight float32
	// Sphere canopy when coneHeight is zero, otherwise a cone whose base
	// is at canopyBase.
	canopyRadius, canopyBase, coneHeight float32
}

var treeShapes = [heli.NumTreeModels]treeShape{
	heli.TreeModelBroadleaf: {trunkRadius: 1.2, trunkHeight: 8, canopyRadius: 11, canopyBase: 16},
	heli.TreeModelPine:      {trunkRadius: 1, trunkHeight: 14, canopyRadius: 11, canopyBase: 13, coneHeight: 15},
	heli.TreeModelShrub:     {trunkRadius: 0.9, trunkHeight: 11, canopyRadius: 9.5, canopyBase: 19},
}

// upright maps the +z axis of the primitive builders to +y.
var upright = math.Identity4x4().Rotate(-90, xAxis)

// treeMeshes returns the trunk and leaves of the given model, standing
// on the ground at the origin.
func (v *View) treeMeshes(model heli.TreeModel) (trunk, leaves *renderer.Mesh) {
	s := treeShapes[model]

	trunk = v.meshes.Cylinder(s.trunkRadius, s.trunkRadius*0.7, s.trunkHeight, treeTess, 2).Transformed(upright)

	xf := math.Identity4x4().Translate(0, s.canopyBase, 0).PostMultiply(upright)
	if s.coneHeight > 0 {
		leaves = v.meshes.Cone(s.canopyRadius, s.coneHeight, treeTess).Transformed(xf)
	} else {
		leaves = v.meshes.Sphere(s.canopyRadius, treeTess, treeTess).Transformed(xf)
	}
	return
}

func (v *View) drawTrees(f *heli.Forest, viewMatrix math.Matrix4, cb *renderer.CommandBuffer) {
	trees := f.Trees()
	if len(trees) == 0 {
		return
	}

	// Draw all of the trunks and then all of the leaves so that the
	// material only changes twice.
	for pass := range 2 {
		cb.Material(util.Select(pass == 0, trunkMaterial, leavesMaterial))
		for _, t := range trees {
			if !t.Model.Valid() {
				continue
			}
			cb.LoadModelViewMatrix(viewMatrix.Translate(t.Position[0], 0, t.Position[1]))
			b := &v.trees[t.Model]
			cb.Call(util.Select(pass == 0, b.trunk, b.leaves))
		}
	}
}
