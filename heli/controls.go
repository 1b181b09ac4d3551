// heli/controls.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package heli

import (
	"fmt"

	"github.com/rotorfield/rotorfield/math"
)

// Values for the axes of Controls.
const (
	MotionNone = 0

	MotionForward  = 1
	MotionBackward = -1

	MotionRight = 1
	MotionLeft  = -1

	MotionUp   = 1
	MotionDown = -1

	MotionAnticlockwise = 1
	MotionClockwise     = -1
)

// Controls is the pilot's input for one tick. Surge, Sway, and Heave are
// expressed in the craft's frame: forward, right, and up respectively.
type Controls struct {
	Yaw   int `json:"yaw"`
	Surge int `json:"surge"`
	Sway  int `json:"sway"`
	Heave int `json:"heave"`
}

// Clamped returns c with each axis limited to {-1,0,1}.
func (c Controls) Clamped() Controls {
	return Controls{
		Yaw:   math.Clamp(c.Yaw, -1, 1),
		Surge: math.Clamp(c.Surge, -1, 1),
		Sway:  math.Clamp(c.Sway, -1, 1),
		Heave: math.Clamp(c.Heave, -1, 1),
	}
}

func (c Controls) IsZero() bool {
	return c == Controls{}
}

func (c Controls) String() string {
	return fmt.Sprintf("yaw %+d surge %+d sway %+d heave %+d", c.Yaw, c.Surge, c.Sway, c.Heave)
}

// velocity returns the requested local-frame velocity for one tick.
func (c Controls) velocity(dt float32) [3]float32 {
	return [3]float32{
		float32(c.Surge) * MoveSpeed * dt,
		float32(c.Heave) * MoveSpeed * dt,
		float32(c.Sway) * MoveSpeed * dt,
	}
}
