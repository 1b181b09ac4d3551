// math/math_test.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func near(a, b float32) bool { return Abs(a-b) < 1e-4 }

func near3(a, b [3]float32) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func TestNormalizeHeading(t *testing.T) {
	h := [][2]float32{{90, 90}, {360, 0}, {-10, 350}, {380, 20}, {-380, 340}, {720, 0}, {0, 0}}
	for _, pair := range h {
		if NormalizeHeading(pair[0]) != pair[1] {
			t.Errorf("normalize heading error: %f -> %f, expected %f",
				pair[0], NormalizeHeading(pair[0]), pair[1])
		}
	}

	// Tiny negative values must not come back as 360.
	if h := NormalizeHeading(-1e-6); h < 0 || h >= 360 {
		t.Errorf("NormalizeHeading(-1e-6) = %f, expected [0,360)", h)
	}
}

func TestLerp(t *testing.T) {
	for _, c := range [][4]float32{{0, 2, 4, 2}, {1, 2, 4, 4}, {0.5, 2, 4, 3}, {0.15, 0, 10, 1.5}} {
		if v := Lerp(c[0], c[1], c[2]); !near(v, c[3]) {
			t.Errorf("Lerp(%f, %f, %f) = %f, expected %f", c[0], c[1], c[2], v, c[3])
		}
	}

	v := Lerp3f(0.15, [3]float32{}, [3]float32{10, -10, 0})
	if !near3(v, [3]float32{1.5, -1.5, 0}) {
		t.Errorf("Lerp3f got %v, expected [1.5 -1.5 0]", v)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Errorf("Clamp mismatch")
	}
}

func TestRotateXZ(t *testing.T) {
	tests := []struct {
		name   string
		v      [3]float32
		angle  float32
		expect [3]float32
	}{
		{name: "zero", v: [3]float32{1, 2, 3}, angle: 0, expect: [3]float32{1, 2, 3}},
		{name: "quarter", v: [3]float32{1, 0, 0}, angle: 90, expect: [3]float32{0, 0, 1}},
		{name: "negative quarter", v: [3]float32{1, 0, 0}, angle: -90, expect: [3]float32{0, 0, -1}},
		{name: "half", v: [3]float32{0, 5, 2}, angle: 180, expect: [3]float32{0, 5, -2}},
		{name: "z axis", v: [3]float32{0, 0, 1}, angle: 90, expect: [3]float32{-1, 0, 0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if r := RotateXZ(test.v, test.angle); !near3(r, test.expect) {
				t.Errorf("RotateXZ(%v, %f) = %v, expected %v", test.v, test.angle, r, test.expect)
			}
		})
	}

	// Rotation preserves length and y.
	v := [3]float32{3, 7, -4}
	for a := float32(-720); a <= 720; a += 37 {
		r := RotateXZ(v, a)
		if !near(LengthXZ(r), 5) || r[1] != 7 {
			t.Errorf("RotateXZ(%v, %f) = %v changed length or y", v, a, r)
		}
	}
}

func TestVectorOps(t *testing.T) {
	a, b := [3]float32{1, 2, 3}, [3]float32{4, 5, 6}
	if r := Add3f(a, b); r != [3]float32{5, 7, 9} {
		t.Errorf("Add3f got %v", r)
	}
	if r := Sub3f(b, a); r != [3]float32{3, 3, 3} {
		t.Errorf("Sub3f got %v", r)
	}
	if r := Cross3f([3]float32{1, 0, 0}, [3]float32{0, 1, 0}); r != [3]float32{0, 0, 1} {
		t.Errorf("Cross3f got %v", r)
	}
	if d := Dot3f(a, b); d != 32 {
		t.Errorf("Dot3f got %f, expected 32", d)
	}
	if l := LengthXZ([3]float32{3, 100, 4}); l != 5 {
		t.Errorf("LengthXZ got %f, expected 5", l)
	}
	if n := Normalize3f([3]float32{}); n != [3]float32{} {
		t.Errorf("Normalize3f of zero got %v", n)
	}
	if d := Distance2f([2]float32{1, 1}, [2]float32{4, 5}); d != 5 {
		t.Errorf("Distance2f got %f, expected 5", d)
	}
}

func TestCirclePoints(t *testing.T) {
	pts := CirclePoints(16)
	if len(pts) != 16 {
		t.Fatalf("got %d points, expected 16", len(pts))
	}
	for i, p := range pts {
		if !near(Length2f(p), 1) {
			t.Errorf("point %d: %v not on unit circle", i, p)
		}
	}
	if !near(pts[4][0], 0) || !near(pts[4][1], 1) {
		t.Errorf("quarter point got %v, expected [0 1]", pts[4])
	}
}

func TestMatrix4(t *testing.T) {
	m := Identity4x4().Translate(1, 2, 3)
	if p := m.TransformPoint([3]float32{1, 1, 1}); p != [3]float32{2, 3, 4} {
		t.Errorf("translate got %v", p)
	}
	if v := m.TransformVector([3]float32{1, 1, 1}); v != [3]float32{1, 1, 1} {
		t.Errorf("translate moved a vector: %v", v)
	}

	// A positive rotation about +y matches glRotatef: +x goes to -z.
	m = Identity4x4().Rotate(90, [3]float32{0, 1, 0})
	if p := m.TransformPoint([3]float32{1, 0, 0}); !near3(p, [3]float32{0, 0, -1}) {
		t.Errorf("rotate got %v, expected [0 0 -1]", p)
	}
	if r := Identity4x4().Rotate(30, [3]float32{}); r != Identity4x4() {
		t.Errorf("rotate about zero axis changed the matrix")
	}

	// Composition applies the rightmost transform first.
	m = Identity4x4().Translate(10, 0, 0).Rotate(90, [3]float32{0, 1, 0})
	if p := m.TransformPoint([3]float32{1, 0, 0}); !near3(p, [3]float32{10, 0, -1}) {
		t.Errorf("composed transform got %v, expected [10 0 -1]", p)
	}

	// The look-at target ends up straight ahead on -z.
	eye, target := [3]float32{0, 4, -10}, [3]float32{0, 2, 0}
	m = Identity4x4().LookAt(eye, target, [3]float32{0, 1, 0})
	if p := m.TransformPoint(eye); !near3(p, [3]float32{}) {
		t.Errorf("look-at eye got %v, expected origin", p)
	}
	p := m.TransformPoint(target)
	if !near(p[0], 0) || !near(p[1], 0) || !near(p[2], -Length3f(Sub3f(target, eye))) {
		t.Errorf("look-at target got %v", p)
	}

	// Points on the near and far planes map to -1 and 1 in NDC.
	m = Identity4x4().Perspective(60, 1.5, 1, 100)
	if z := m.TransformPoint([3]float32{0, 0, -1})[2]; !near(z, -1) {
		t.Errorf("near plane z got %f, expected -1", z)
	}
	if z := m.TransformPoint([3]float32{0, 0, -100})[2]; !near(z, 1) {
		t.Errorf("far plane z got %f, expected 1", z)
	}

	cm := Identity4x4().Translate(1, 2, 3).ColumnMajor()
	if cm[12] != 1 || cm[13] != 2 || cm[14] != 3 || cm[15] != 1 {
		t.Errorf("column major translation got %v", cm)
	}
}
