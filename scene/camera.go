// scene/camera.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/math"
)

const (
	CameraFollowDistance = 10
	CameraHeightOffset   = 4
	CameraTargetOffset   = 2
)

// Camera describes a viewpoint for gluLookAt-style view matrices.
type Camera struct {
	Eye, Target, Up [3]float32
}

// ChaseCamera returns the camera that trails the helicopter, looking
// at a point just above it.
func ChaseCamera(h *heli.Helicopter) Camera {
	theta := -math.Radians(h.Heading)
	p := h.Position
	return Camera{
		Eye: [3]float32{
			p[0] - CameraFollowDistance*math.Cos(theta),
			p[1] + CameraHeightOffset,
			p[2] - CameraFollowDistance*math.Sin(theta),
		},
		Target: [3]float32{p[0], p[1] + CameraTargetOffset, p[2]},
		Up:     [3]float32{0, 1, 0},
	}
}

func (c Camera) ViewMatrix() math.Matrix4 {
	return math.Identity4x4().LookAt(c.Eye, c.Target, c.Up)
}
