// math/kdtree.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"slices"
)

// KDNode is a node in a 2D KD-tree. Index is the position of Location in
// the slice the tree was built from.
type KDNode struct {
	Location [2]float32
	Index    int
	Left     *KDNode
	Right    *KDNode
	axis     int
}

type kdPoint struct {
	p     [2]float32
	index int
}

// BuildKDTree constructs a balanced KD-tree from a slice of points.  The
// tree alternates splitting by x and y at each level. The points slice
// is not modified.
func BuildKDTree(points [][2]float32) *KDNode {
	if len(points) == 0 {
		return nil
	}
	pts := make([]kdPoint, len(points))
	for i, p := range points {
		pts[i] = kdPoint{p: p, index: i}
	}
	return buildKDTreeRecursive(pts, 0)
}

func buildKDTreeRecursive(points []kdPoint, depth int) *KDNode {
	if len(points) == 0 {
		return nil
	}

	axis := depth % 2
	if len(points) == 1 {
		return &KDNode{Location: points[0].p, Index: points[0].index, axis: axis}
	}

	// Sort by the splitting axis and find median; ties are broken by
	// index so that the tree shape is deterministic.
	slices.SortFunc(points, func(a, b kdPoint) int {
		if a.p[axis] < b.p[axis] {
			return -1
		} else if a.p[axis] > b.p[axis] {
			return 1
		}
		return a.index - b.index
	})

	median := len(points) / 2

	return &KDNode{
		Location: points[median].p,
		Index:    points[median].index,
		axis:     axis,
		Left:     buildKDTreeRecursive(points[:median], depth+1),
		Right:    buildKDTreeRecursive(points[median+1:], depth+1),
	}
}

// InRadius calls fn with the index and location of every point within
// the given distance of p (inclusive). Iteration stops early if fn
// returns false. Points are visited in no particular order.
func (tree *KDNode) InRadius(p [2]float32, radius float32, fn func(index int, loc [2]float32) bool) {
	tree.inRadius(p, radius, fn)
}

func (tree *KDNode) inRadius(p [2]float32, radius float32, fn func(int, [2]float32) bool) bool {
	if tree == nil {
		return true
	}

	if Distance2f(p, tree.Location) <= radius {
		if !fn(tree.Index, tree.Location) {
			return false
		}
	}

	// Equal keys may land on either side after the median split, so both
	// children are checked when the query circle touches the plane.
	d := p[tree.axis] - tree.Location[tree.axis]
	if d-radius <= 0 {
		if !tree.Left.inRadius(p, radius, fn) {
			return false
		}
	}
	if d+radius >= 0 {
		if !tree.Right.inRadius(p, radius, fn) {
			return false
		}
	}
	return true
}

// Nearest returns the index of the point closest to p along with its
// distance, or -1 if the tree is empty.
func (tree *KDNode) Nearest(p [2]float32) (int, float32) {
	best, bestDist := -1, float32(0)
	var search func(n *KDNode)
	search = func(n *KDNode) {
		if n == nil {
			return
		}
		if d := Distance2f(p, n.Location); best == -1 || d < bestDist || (d == bestDist && n.Index < best) {
			best, bestDist = n.Index, d
		}

		d := p[n.axis] - n.Location[n.axis]
		near, far := n.Left, n.Right
		if d > 0 {
			near, far = far, near
		}
		search(near)
		if Abs(d) <= bestDist {
			search(far)
		}
	}
	search(tree)
	return best, bestDist
}

// Len returns the number of points stored in the tree.
func (tree *KDNode) Len() int {
	if tree == nil {
		return 0
	}
	return 1 + tree.Left.Len() + tree.Right.Len()
}
