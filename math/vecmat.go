// math/vecmat.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// point 2f

// Various useful functions for arithmetic with 2D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a-b
func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

// Length of v
func Length2f(v [2]float32) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Distance between two points
func Distance2f(a [2]float32, b [2]float32) float32 {
	return Length2f(Sub2f(a, b))
}

// CirclePoints returns the vertices of a unit circle tessellated with
// nsegs segments, starting at (1,0) and going counter-clockwise.
func CirclePoints(nsegs int) [][2]float32 {
	pts := make([][2]float32, nsegs)
	for i := range nsegs {
		a := Radians(360 * float32(i) / float32(nsegs))
		pts[i] = [2]float32{Cos(a), Sin(a)}
	}
	return pts
}

///////////////////////////////////////////////////////////////////////////
// point 3f

// The world is y-up; the ground is the XZ plane.

func Add3f(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub3f(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale3f(a [3]float32, s float32) [3]float32 {
	return [3]float32{s * a[0], s * a[1], s * a[2]}
}

func Dot3f(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross3f(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Length3f(v [3]float32) float32 {
	return Sqrt(Dot3f(v, v))
}

func Normalize3f(v [3]float32) [3]float32 {
	l := Length3f(v)
	if l == 0 {
		return [3]float32{}
	}
	return Scale3f(v, 1/l)
}

// Lerp3f linearly interpolates x of the way between a and b, per
// component.
func Lerp3f(x float32, a, b [3]float32) [3]float32 {
	return [3]float32{Lerp(x, a[0], b[0]), Lerp(x, a[1], b[1]), Lerp(x, a[2], b[2])}
}

// XZ returns the ground-plane projection of v.
func XZ(v [3]float32) [2]float32 {
	return [2]float32{v[0], v[2]}
}

// LengthXZ returns the magnitude of v projected onto the ground plane.
func LengthXZ(v [3]float32) float32 {
	return Length2f(XZ(v))
}

// RotateXZ rotates v about the y axis by the given angle in degrees,
// leaving the y component unchanged.
func RotateXZ(v [3]float32, angle float32) [3]float32 {
	s, c := Sin(Radians(angle)), Cos(Radians(angle))
	return [3]float32{v[0]*c - v[2]*s, v[1], v[0]*s + v[2]*c}
}

///////////////////////////////////////////////////////////////////////////
// 4x4 matrix

// Matrix4 is a row-major 4x4 matrix: m[row][col]. Points are column
// vectors, so transformations compose right to left.
type Matrix4 [4][4]float32

func Identity4x4() Matrix4 {
	var m Matrix4
	m[0][0] = 1
	m[1][1] = 1
	m[2][2] = 1
	m[3][3] = 1
	return m
}

func (m Matrix4) PostMultiply(m2 Matrix4) Matrix4 {
	var result Matrix4
	for i := range 4 {
		for j := range 4 {
			result[i][j] = m[i][0]*m2[0][j] + m[i][1]*m2[1][j] + m[i][2]*m2[2][j] + m[i][3]*m2[3][j]
		}
	}
	return result
}

func (m Matrix4) Translate(x, y, z float32) Matrix4 {
	t := Identity4x4()
	t[0][3], t[1][3], t[2][3] = x, y, z
	return m.PostMultiply(t)
}

// Rotate applies a rotation of the given angle in degrees about axis, a
// la glRotatef. A zero axis leaves m unchanged.
func (m Matrix4) Rotate(angle float32, axis [3]float32) Matrix4 {
	a := Normalize3f(axis)
	if a == [3]float32{} {
		return m
	}
	s, c := Sin(Radians(angle)), Cos(Radians(angle))
	x, y, z := a[0], a[1], a[2]
	ic := 1 - c
	r := Matrix4{
		{x*x*ic + c, x*y*ic - z*s, x*z*ic + y*s, 0},
		{y*x*ic + z*s, y*y*ic + c, y*z*ic - x*s, 0},
		{x*z*ic - y*s, y*z*ic + x*s, z*z*ic + c, 0},
		{0, 0, 0, 1},
	}
	return m.PostMultiply(r)
}

// Perspective applies a perspective projection with the given vertical
// field of view in degrees, a la gluPerspective.
func (m Matrix4) Perspective(fovy, aspect, near, far float32) Matrix4 {
	f := 1 / Tan(Radians(fovy)/2)
	p := Matrix4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, (far + near) / (near - far), 2 * far * near / (near - far)},
		{0, 0, -1, 0},
	}
	return m.PostMultiply(p)
}

// LookAt applies a viewing transformation with the eye at eye looking
// toward target, a la gluLookAt.
func (m Matrix4) LookAt(eye, target, up [3]float32) Matrix4 {
	f := Normalize3f(Sub3f(target, eye))
	s := Normalize3f(Cross3f(f, up))
	u := Cross3f(s, f)
	v := Matrix4{
		{s[0], s[1], s[2], -Dot3f(s, eye)},
		{u[0], u[1], u[2], -Dot3f(u, eye)},
		{-f[0], -f[1], -f[2], Dot3f(f, eye)},
		{0, 0, 0, 1},
	}
	return m.PostMultiply(v)
}

// Ortho applies an orthographic projection mapping [x0,x1]x[y0,y1] to
// the unit cube; z passes through.
func (m Matrix4) Ortho(x0, x1, y0, y1 float32) Matrix4 {
	o := Matrix4{
		{2 / (x1 - x0), 0, 0, -(x0 + x1) / (x1 - x0)},
		{0, 2 / (y1 - y0), 0, -(y0 + y1) / (y1 - y0)},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	return m.PostMultiply(o)
}

// TransformPoint applies m to p, including the perspective divide.
func (m Matrix4) TransformPoint(p [3]float32) [3]float32 {
	var r [4]float32
	for i := range 4 {
		r[i] = m[i][0]*p[0] + m[i][1]*p[1] + m[i][2]*p[2] + m[i][3]
	}
	if r[3] != 0 && r[3] != 1 {
		return [3]float32{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
	}
	return [3]float32{r[0], r[1], r[2]}
}

// TransformVector applies the upper 3x3 of m to v.
func (m Matrix4) TransformVector(v [3]float32) [3]float32 {
	return [3]float32{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// ColumnMajor returns the matrix elements in the order OpenGL expects
// for glLoadMatrixf.
func (m Matrix4) ColumnMajor() [16]float32 {
	var r [16]float32
	for c := range 4 {
		for row := range 4 {
			r[4*c+row] = m[row][c]
		}
	}
	return r
}
