// platform/controls.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"github.com/rotorfield/rotorfield/heli"
)

// axis returns pos if only the positive key is held, neg if only the
// negative one is, and MotionNone otherwise.
func (k *KeyboardState) axis(posKey, negKey Key, pos, neg int) int {
	p, n := k.IsHeld(posKey), k.IsHeld(negKey)
	switch {
	case p && !n:
		return pos
	case n && !p:
		return neg
	default:
		return heli.MotionNone
	}
}

// Controls samples the held keys into a control vector: W/S surge, A/D
// sway, the up and down arrows heave, and the left and right arrows yaw.
func (k *KeyboardState) Controls() heli.Controls {
	if k == nil {
		return heli.Controls{}
	}
	return heli.Controls{
		Surge: k.axis(KeyW, KeyS, heli.MotionForward, heli.MotionBackward),
		Sway:  k.axis(KeyD, KeyA, heli.MotionRight, heli.MotionLeft),
		Heave: k.axis(KeyUpArrow, KeyDownArrow, heli.MotionUp, heli.MotionDown),
		Yaw:   k.axis(KeyLeftArrow, KeyRightArrow, heli.MotionAnticlockwise, heli.MotionClockwise),
	}
}

// QuitRequested reports whether escape was pressed this frame.
func (k *KeyboardState) QuitRequested() bool {
	return k != nil && k.WasPressed(KeyEscape)
}
