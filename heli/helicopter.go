// heli/helicopter.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package heli implements the helicopter flight model: rotor spin-up,
// liftoff, damped flight, and the collision rules that keep the craft
// inside the map and out of the trees.
package heli

import (
	"github.com/rotorfield/rotorfield/math"
)

// The speeds and the damping factor are tuned for a fixed tick rate;
// the blend is per tick, not per second.
const (
	MoveSpeed        = 10   // units/second per axis
	YawSpeed         = 60   // degrees/second
	RotorSpeed       = 2000 // degrees/second in flight; also the spin-up threshold
	RotorSpinUpRate  = 8    // rotor angular velocity gained per startup tick
	LiftoffClimbRate = 0.3  // requested vertical speed while lifting off, units/tick
	LiftoffAltitude  = 2    // altitude at which startup ends
	Damping          = 0.15 // per-tick blend toward the requested velocity

	MapRadius      = 190
	MinAltitude    = 0.55
	MaxAltitude    = 50
	CanopyAltitude = 29
)

type Phase int

const (
	// PhaseStartup: the rotors spin up and then the craft lifts off
	// vertically. Controls are ignored.
	PhaseStartup Phase = iota
	// PhaseFlight: the craft responds to the controls. There is no way
	// back to PhaseStartup.
	PhaseFlight
)

func (p Phase) String() string {
	switch p {
	case PhaseStartup:
		return "startup"
	case PhaseFlight:
		return "flight"
	default:
		return "unknown"
	}
}

type MoveResult int

const (
	MoveAccepted MoveResult = iota
	MoveAboveCanopy
	MoveOutOfBounds
	MoveBadAltitude
	MoveTreeStrike
)

func (m MoveResult) Accepted() bool {
	return m == MoveAccepted || m == MoveAboveCanopy
}

func (m MoveResult) String() string {
	return [...]string{"accepted", "above canopy", "out of bounds", "bad altitude", "tree strike"}[m]
}

// CheckMove reports whether the craft may occupy p. When the move hits a
// tree, the index of the tree is returned; otherwise the index is -1.
func CheckMove(p [3]float32, f *Forest) (MoveResult, int) {
	return checkMove(p, f, false)
}

func checkMove(p [3]float32, f *Forest, ignoreFloor bool) (MoveResult, int) {
	if math.LengthXZ(p) > MapRadius {
		return MoveOutOfBounds, -1
	}
	if (p[1] < MinAltitude && !ignoreFloor) || p[1] > MaxAltitude {
		return MoveBadAltitude, -1
	}
	if p[1] > CanopyAltitude {
		return MoveAboveCanopy, -1
	}
	if i := f.Collides(p); i != -1 {
		return MoveTreeStrike, i
	}
	return MoveAccepted, -1
}

type Helicopter struct {
	Position [3]float32
	Velocity [3]float32
	// Heading and RotorAngle are in degrees, [0,360).
	Heading              float32
	AngularVelocity      float32 // degrees/tick
	RotorAngle           float32
	RotorAngularVelocity float32 // degrees/second; only changes during startup
	Phase                Phase
	// AtEdge is set when a move is rejected for leaving the map and
	// cleared by the next accepted move.
	AtEdge bool
}

func NewHelicopter(pos [3]float32) *Helicopter {
	return &Helicopter{Position: pos, Phase: PhaseStartup}
}

// TickResult describes what happened during a call to Update.
type TickResult struct {
	// Move is the outcome of the attempted move. It is MoveAccepted
	// with Moved false during spin-up, when no move is attempted.
	Move  MoveResult
	Moved bool
	// Tree is the index of the tree that was hit, or -1.
	Tree         int
	PhaseChanged bool
}

// Update advances the helicopter by one tick of dt seconds.
func (h *Helicopter) Update(c Controls, dt float32, f *Forest) TickResult {
	if h.Phase == PhaseStartup {
		return h.spinUp(dt, f)
	}

	c = c.Clamped()
	h.AngularVelocity = math.Lerp(Damping, h.AngularVelocity, float32(c.Yaw)*YawSpeed*dt)
	h.Heading = math.NormalizeHeading(h.Heading + h.AngularVelocity)
	h.RotorAngle = math.NormalizeHeading(h.RotorAngle + RotorSpeed*dt)

	return h.move(c.velocity(dt), f, false)
}

func (h *Helicopter) spinUp(dt float32, f *Forest) TickResult {
	h.RotorAngularVelocity += RotorSpinUpRate
	h.RotorAngle = math.NormalizeHeading(h.RotorAngle + h.RotorAngularVelocity*dt)

	if h.RotorAngularVelocity < RotorSpeed {
		return TickResult{Tree: -1}
	}

	// A craft resting on the ground is below MinAltitude; it has to be
	// able to climb through it.
	r := h.move([3]float32{0, LiftoffClimbRate, 0}, f, true)
	if h.Position[1] >= LiftoffAltitude {
		h.Phase = PhaseFlight
		r.PhaseChanged = true
	}
	return r
}

// move blends the local-frame velocity v into the craft's velocity and
// moves to the resulting position if CheckMove allows it. A rejected
// move stops the craft dead.
func (h *Helicopter) move(v [3]float32, f *Forest, ignoreFloor bool) TickResult {
	world := math.RotateXZ(v, -h.Heading)
	h.Velocity = math.Lerp3f(Damping, h.Velocity, world)

	candidate := math.Add3f(h.Position, h.Velocity)
	res, tree := checkMove(candidate, f, ignoreFloor)

	switch {
	case res.Accepted():
		h.Position = candidate
		h.AtEdge = false
	case res == MoveOutOfBounds:
		h.Velocity = [3]float32{}
		h.AtEdge = true
	default:
		h.Velocity = [3]float32{}
	}

	return TickResult{Move: res, Moved: true, Tree: tree}
}

// Tilt returns the visual bank of the body: the craft leans into its
// horizontal motion by 30 degrees per unit/tick of speed. The axis is
// in the craft's frame.
func (h *Helicopter) Tilt() (float32, [3]float32) {
	axis := math.RotateXZ(h.Velocity, h.Heading-90)
	axis[1] = 0
	return math.LengthXZ(h.Velocity) * 30, axis
}
