// heli/forest.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package heli

import (
	"fmt"
	"slices"

	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/util"
)

// TreeModel identifies one of the three tree meshes; each has its own
// collision footprint.
type TreeModel int

const (
	TreeModelBroadleaf TreeModel = iota
	TreeModelPine
	TreeModelShrub

	NumTreeModels = 3
)

// Largest radius returned by CollisionRadius for any model.
const maxTreeRadius = 11

func (m TreeModel) String() string {
	switch m {
	case TreeModelBroadleaf:
		return "broadleaf"
	case TreeModelPine:
		return "pine"
	case TreeModelShrub:
		return "shrub"
	default:
		return fmt.Sprintf("TreeModel(%d)", int(m))
	}
}

func (m TreeModel) Valid() bool {
	return m >= 0 && m < NumTreeModels
}

// CollisionRadius returns the horizontal radius around the trunk that
// the craft may not enter at the given altitude. The canopy is wider
// than the trunk, so the radius grows above a per-model height. Unknown
// models have no footprint.
func (m TreeModel) CollisionRadius(altitude float32) float32 {
	switch m {
	case TreeModelBroadleaf:
		return util.Select[float32](altitude > 5, 11, 6.5)
	case TreeModelPine:
		return util.Select[float32](altitude > 13, 11, 6)
	case TreeModelShrub:
		return util.Select[float32](altitude > 10, 9.5, 4.5)
	default:
		return 0
	}
}

// Tree is a single obstacle. Position is on the ground plane: (x, z).
type Tree struct {
	Position [2]float32
	Model    TreeModel
}

// Forest is the immutable set of obstacles the craft is checked against.
// A nil *Forest has no trees.
type Forest struct {
	trees []Tree
	index *math.KDNode
}

func NewForest(trees []Tree) *Forest {
	f := &Forest{trees: slices.Clone(trees)}
	pts := make([][2]float32, len(f.trees))
	for i, t := range f.trees {
		pts[i] = t.Position
	}
	f.index = math.BuildKDTree(pts)
	return f
}

// Trees returns the forest's trees; the caller must not modify them.
func (f *Forest) Trees() []Tree {
	if f == nil {
		return nil
	}
	return f.trees
}

func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.trees)
}

// Collides returns the index of the first tree whose collision radius
// at p's altitude strictly contains p horizontally, or -1 if there is
// none.
func (f *Forest) Collides(p [3]float32) int {
	if f == nil {
		return -1
	}

	hit := -1
	xz := math.XZ(p)
	f.index.InRadius(xz, maxTreeRadius, func(i int, loc [2]float32) bool {
		if hit != -1 && i > hit {
			return true
		}
		if math.Distance2f(xz, loc) < f.trees[i].Model.CollisionRadius(p[1]) {
			hit = i
		}
		return true
	})
	return hit
}

// Nearest returns the index of the tree whose trunk is horizontally
// closest to p and the distance to it, or -1 for an empty forest.
func (f *Forest) Nearest(p [3]float32) (int, float32) {
	if f == nil {
		return -1, 0
	}
	return f.index.Nearest(math.XZ(p))
}
