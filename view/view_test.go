// view/view_test.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package view

import (
	gomath "math"
	"testing"

	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/renderer"
	"github.com/rotorfield/rotorfield/scene"
)

func near(a, b, eps float32) bool { return math.Abs(a-b) < eps }

func testWorld() *scene.World {
	forest := heli.NewForest([]heli.Tree{
		{Position: [2]float32{60, 60}, Model: heli.TreeModelBroadleaf},
		{Position: [2]float32{-60, 80}, Model: heli.TreeModelPine},
		{Position: [2]float32{100, -20}, Model: heli.TreeModelShrub},
	})
	return scene.NewWorld(forest, nil)
}

func TestDraw(t *testing.T) {
	v := New(nil)
	w := testWorld()
	w.Heli.Velocity = [3]float32{0.1, 0, 0.05}

	for _, fullBright := range []bool{false, true} {
		cb := renderer.GetCommandBuffer()
		v.Draw(w, [2]float32{1280, 720}, Options{FullBright: fullBright}, cb)

		nlights := 0
		var fog float32
		if !cb.Walk(func(cmd uint32, args []uint32) bool {
			switch cmd {
			case renderer.RendererLight:
				nlights++
			case renderer.RendererFog:
				fog = gomath.Float32frombits(args[0])
			}
			return true
		}) {
			t.Fatalf("malformed command buffer")
		}

		expectedLights := 2
		if fullBright {
			expectedLights = 3
		}
		if nlights != expectedLights {
			t.Errorf("fullbright %v: lights got %d, expected %d", fullBright, nlights, expectedLights)
		}
		if expected := scene.FogDensity(w.Heli.Position); fog != expected {
			t.Errorf("fog density got %f, expected %f", fog, expected)
		}

		// Craft: body and four arms with end caps, four rotors with
		// guards, four lights. Then pond, ground, water, sky, and a
		// trunk and leaves per tree.
		stats := cb.Stats()
		if expected := 5*3 + 4*2 + 4 + 4 + 2*w.Forest.Len(); stats.DrawCalls != expected {
			t.Errorf("draw calls got %d, expected %d", stats.DrawCalls, expected)
		}
		if stats.Triangles == 0 {
			t.Errorf("expected triangles to be drawn")
		}

		renderer.ReturnCommandBuffer(cb)
	}
}

func TestDrawSkipsInvalidTrees(t *testing.T) {
	v := New(nil)
	w := scene.NewWorld(heli.NewForest([]heli.Tree{{Position: [2]float32{60, 60}, Model: 7}}), nil)

	var cb renderer.CommandBuffer
	v.Draw(w, [2]float32{640, 480}, Options{}, &cb)
	if expected := 5*3 + 4*2 + 4 + 4; cb.Stats().DrawCalls != expected {
		t.Errorf("draw calls got %d, expected %d", cb.Stats().DrawCalls, expected)
	}
}

func TestCraftMatrix(t *testing.T) {
	h := heli.NewHelicopter([3]float32{10, 5, -3})
	h.Heading = 90

	m := CraftMatrix(h)
	if p := m.TransformPoint([3]float32{}); !near(p[0], 10, 1e-4) || !near(p[1], 5, 1e-4) || !near(p[2], -3, 1e-4) {
		t.Errorf("origin got %v, expected the craft position", p)
	}
	// The nose points along the direction the craft flies forward.
	fwd := math.RotateXZ([3]float32{1, 0, 0}, -h.Heading)
	if d := m.TransformVector([3]float32{1, 0, 0}); !near(math.Dot3f(d, fwd), 1, 1e-4) {
		t.Errorf("nose direction got %v, expected %v", d, fwd)
	}

	// Moving sideways tilts the craft but leaves it in place.
	h.Velocity = [3]float32{0, 0, 0.2}
	m = CraftMatrix(h)
	if up := m.TransformVector([3]float32{0, 1, 0}); near(up[1], 1, 1e-3) {
		t.Errorf("expected moving craft to tilt; up is %v", up)
	}
	if p := m.TransformPoint([3]float32{}); !near(p[0], 10, 1e-4) {
		t.Errorf("tilted origin got %v", p)
	}
}

func TestGroundMesh(t *testing.T) {
	g := GroundMesh()
	// 101x101 cells less the 15x15 over the pond.
	if expected := 2 * (101*101 - 15*15); g.Triangles() != expected {
		t.Errorf("ground triangles got %d, expected %d", g.Triangles(), expected)
	}
	for i := 0; i < len(g.Indices); i += 3 {
		var c [3]float32
		for _, idx := range g.Indices[i : i+3] {
			c = math.Add3f(c, g.Positions[idx])
		}
		c = math.Scale3f(c, 1./3)
		if math.Abs(c[0]) < 30 && math.Abs(c[2]) < 30 {
			t.Fatalf("ground triangle %d at %v covers the pond", i/3, c)
		}
	}
}

func triangleAreaXZ(m *renderer.Mesh, y float32) float32 {
	var area float32
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		if a[1] != y || b[1] != y || c[1] != y {
			continue
		}
		area += math.Length3f(math.Cross3f(math.Sub3f(b, a), math.Sub3f(c, a))) / 2
	}
	return area
}

func facesUp(m *renderer.Mesh) bool {
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		if n := math.Cross3f(math.Sub3f(b, a), math.Sub3f(c, a)); n[1] <= 0 {
			return false
		}
	}
	return true
}

func TestPolygonMesh(t *testing.T) {
	outer := [][2]float32{{-5, -5}, {5, -5}, {5, 5}, {-5, 5}}
	hole := [][2]float32{{-2, -2}, {-2, 2}, {2, 2}, {2, -2}}

	m := PolygonMesh([][][2]float32{outer, hole}, 3)
	if a := triangleAreaXZ(m, 3); !near(a, 100-16, 1e-3) {
		t.Errorf("area got %f, expected 84", a)
	}
	if !facesUp(m) {
		t.Errorf("expected all triangles to face up")
	}
	for i, n := range m.Normals {
		if n != [3]float32{0, 1, 0} {
			t.Errorf("normal %d got %v, expected +y", i, n)
		}
	}
}

func TestPondMesh(t *testing.T) {
	m := PondMesh()
	side := float32(2 * scene.PondHalfSize * pondFloorScale)
	if a := triangleAreaXZ(m, -PondDepth); !near(a, side*side, 0.5) {
		t.Errorf("floor area got %f, expected %f", a, side*side)
	}
	if !facesUp(m) {
		t.Errorf("expected the basin to face up")
	}
	lo, hi := m.Bounds()
	if !near(lo[1], -PondDepth, 1e-4) || !near(hi[1], 0, 1e-4) {
		t.Errorf("basin height range got [%f,%f]", lo[1], hi[1])
	}
	if !near(hi[0], scene.PondHalfSize, 1e-4) || !near(lo[2], -scene.PondHalfSize, 1e-4) {
		t.Errorf("basin rim got %v %v, expected the pond outline", lo, hi)
	}
}

func TestTreeCanopiesMatchFootprint(t *testing.T) {
	v := New(nil)
	for m := range heli.NumTreeModels {
		model := heli.TreeModel(m)
		trunk, leaves := v.treeMeshes(model)

		lo, hi := leaves.Bounds()
		if r := model.CollisionRadius(heli.CanopyAltitude); !near(hi[0], r, 0.01) {
			t.Errorf("%s: canopy radius got %f, expected %f", model, hi[0], r)
		}
		if hi[1] >= heli.CanopyAltitude {
			t.Errorf("%s: canopy top %f reaches the canopy altitude", model, hi[1])
		}
		if lo[1] < 0 {
			t.Errorf("%s: canopy extends below ground to %f", model, lo[1])
		}

		tlo, thi := trunk.Bounds()
		if !near(tlo[1], 0, 1e-4) || thi[1] <= 0 {
			t.Errorf("%s: trunk height range got [%f,%f]", model, tlo[1], thi[1])
		}
	}
}

func TestMessages(t *testing.T) {
	w := testWorld()
	if msgs := Messages(w, false); len(msgs) != 0 {
		t.Errorf("got %d messages, expected none", len(msgs))
	}

	w.Heli.AtEdge = true
	msgs := Messages(w, false)
	if len(msgs) != 1 || msgs[0].Text != EdgeWarning || msgs[0].Position != [2]float32{20, 20} {
		t.Errorf("got %+v, expected the edge warning at (20,20)", msgs)
	}

	msgs = Messages(w, true)
	if len(msgs) != 7 {
		t.Fatalf("got %d messages, expected 7", len(msgs))
	}
	// The spawn point is closest to the pine at (-60, 80).
	if last := msgs[len(msgs)-1].Text; last != "Nearest tree 89 (pine)" {
		t.Errorf("got %q, expected the distance to the pine", last)
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Position[1] <= msgs[i-1].Position[1] {
			t.Errorf("message %d overlaps the previous one", i)
		}
	}
}

func TestProjectionMatrix(t *testing.T) {
	p := ProjectionMatrix([2]float32{800, 400})
	// A point on the near plane at the center maps to depth -1.
	if c := p.TransformPoint([3]float32{0, 0, -NearPlane}); !near(c[2], -1, 1e-4) {
		t.Errorf("near plane depth got %f, expected -1", c[2])
	}
	if c := p.TransformPoint([3]float32{0, 0, -FarPlane}); !near(c[2], 1, 1e-3) {
		t.Errorf("far plane depth got %f, expected 1", c[2])
	}
	// Degenerate sizes still give a finite matrix.
	for _, row := range ProjectionMatrix([2]float32{0, 0}) {
		for _, v := range row {
			if !math.IsFinite(v) {
				t.Fatalf("non-finite projection for an empty framebuffer")
			}
		}
	}
}
