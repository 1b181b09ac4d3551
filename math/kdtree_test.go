// math/kdtree_test.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"slices"
	"testing"
)

func TestBuildKDTree(t *testing.T) {
	if tree := BuildKDTree(nil); tree != nil {
		t.Error("expected nil tree for nil input")
	}
	if tree := BuildKDTree([][2]float32{}); tree != nil {
		t.Error("expected nil tree for empty input")
	}

	points := [][2]float32{{-75, 40}}
	tree := BuildKDTree(points)
	if tree == nil {
		t.Fatal("expected non-nil tree for single point")
	}
	if tree.Location != points[0] || tree.Index != 0 {
		t.Errorf("expected location %v index 0, got %v index %d", points[0], tree.Location, tree.Index)
	}
	if tree.Left != nil || tree.Right != nil {
		t.Error("expected nil children for single-point tree")
	}

	points = [][2]float32{{3, 1}, {1, 1}, {2, 2}, {0, 5}, {4, 4}}
	orig := slices.Clone(points)
	tree = BuildKDTree(points)
	if !slices.Equal(points, orig) {
		t.Errorf("BuildKDTree modified its input")
	}
	if tree.Len() != len(points) {
		t.Errorf("got %d nodes, expected %d", tree.Len(), len(points))
	}
}

// scatter returns a deterministic pseudo-random set of points in
// [-200,200)^2, with some duplicated coordinates.
func scatter(n int) [][2]float32 {
	var pts [][2]float32
	s := uint32(12345)
	next := func() float32 {
		s = s*1664525 + 1013904223
		return float32(s>>8)/float32(1<<24)*400 - 200
	}
	for i := range n {
		if i%10 == 9 {
			pts = append(pts, [2]float32{pts[i-1][0], next()})
		} else {
			pts = append(pts, [2]float32{next(), next()})
		}
	}
	return pts
}

func TestKDTreeInRadius(t *testing.T) {
	pts := scatter(500)
	tree := BuildKDTree(pts)

	for _, q := range [][2]float32{{0, 0}, {100, -50}, {-190, 190}, pts[17], pts[19]} {
		for _, r := range []float32{0, 4.5, 11, 40} {
			var got []int
			tree.InRadius(q, r, func(i int, loc [2]float32) bool {
				if loc != pts[i] {
					t.Errorf("index %d: got location %v, expected %v", i, loc, pts[i])
				}
				got = append(got, i)
				return true
			})
			slices.Sort(got)

			var expect []int
			for i, p := range pts {
				if Distance2f(p, q) <= r {
					expect = append(expect, i)
				}
			}
			if !slices.Equal(got, expect) {
				t.Errorf("query %v radius %f: got %v, expected %v", q, r, got, expect)
			}
		}
	}
}

func TestKDTreeInRadiusStop(t *testing.T) {
	tree := BuildKDTree(scatter(100))
	n := 0
	tree.InRadius([2]float32{}, 1000, func(int, [2]float32) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Errorf("visited %d points after stopping, expected 3", n)
	}
}

func TestKDTreeNearest(t *testing.T) {
	if i, _ := (*KDNode)(nil).Nearest([2]float32{}); i != -1 {
		t.Errorf("empty tree nearest got %d, expected -1", i)
	}

	pts := scatter(300)
	tree := BuildKDTree(pts)
	for _, q := range [][2]float32{{0, 0}, {55, 55}, {-300, 12}, pts[42]} {
		best, bestDist := -1, float32(0)
		for i, p := range pts {
			if d := Distance2f(p, q); best == -1 || d < bestDist {
				best, bestDist = i, d
			}
		}
		i, d := tree.Nearest(q)
		if d != bestDist {
			t.Errorf("query %v: got index %d dist %f, expected index %d dist %f", q, i, d, best, bestDist)
		}
	}
}
