// scene/world.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"log/slog"
	"time"

	"github.com/brunoga/deep"
	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/math"
)

const TargetFPS = 60

// FrameTime is the integer-truncated tick interval and FrameTimeSec is
// derived from it rather than from 1/TargetFPS so that the simulation
// and the frame pacing agree.
const (
	FrameTime    = (1000 / TargetFPS) * time.Millisecond
	FrameTimeSec = float32(1000/TargetFPS) / 1000
)

var DefaultSpawn = [3]float32{-100, 1, 0}

// Environment holds the animated parts of the scenery.
type Environment struct {
	WaterHeight float32
	WaterOffset float32
}

const (
	waterRest      = -1
	waterOffsetMin = -50
	waterOffsetMax = 50
)

func NewEnvironment() Environment {
	return Environment{WaterHeight: waterRest, WaterOffset: waterOffsetMin}
}

// Advance updates the water for the tick that starts elapsed after the
// start of the simulation.
func (e *Environment) Advance(elapsed time.Duration) {
	x := FrameTimeSec * float32(elapsed.Milliseconds()) / 10
	e.WaterHeight = math.Sin(x)/8 + waterRest
	if e.WaterOffset >= waterOffsetMax {
		e.WaterOffset = waterOffsetMin
	} else {
		e.WaterOffset += FrameTimeSec
	}
}

// World is everything that the simulation updates each tick along with
// the static obstacles it is checked against.
type World struct {
	Heli   *heli.Helicopter
	Forest *heli.Forest
	Env    Environment
	Tick   int
	// Seed records how the forest was generated, if it was scattered.
	Seed int64

	lg *log.Logger
}

func NewWorld(forest *heli.Forest, lg *log.Logger) *World {
	return &World{
		Heli:   heli.NewHelicopter(DefaultSpawn),
		Forest: forest,
		Env:    NewEnvironment(),
		lg:     lg,
	}
}

// Elapsed returns the simulated time at the start of the current tick.
func (w *World) Elapsed() time.Duration {
	return time.Duration(w.Tick) * FrameTime
}

// Step advances the world by one tick with the given controls.
func (w *World) Step(c heli.Controls) heli.TickResult {
	wasAtEdge := w.Heli.AtEdge
	if w.Heli.Phase == heli.PhaseStartup && !c.IsZero() && w.Tick%TargetFPS == 0 {
		w.lg.Debug("controls ignored until liftoff", slog.Int("tick", w.Tick), slog.String("controls", c.String()))
	}

	r := w.Heli.Update(c, FrameTimeSec, w.Forest)
	w.Env.Advance(w.Elapsed())
	w.Tick++

	if r.PhaseChanged {
		w.lg.Info("phase change", slog.Int("tick", w.Tick), slog.String("phase", w.Heli.Phase.String()),
			slog.Any("position", w.Heli.Position))
	}
	if w.Heli.AtEdge && !wasAtEdge {
		w.lg.Info("reached map edge", slog.Int("tick", w.Tick), slog.Any("position", w.Heli.Position))
	}
	if r.Move == heli.MoveTreeStrike {
		t := w.Forest.Trees()[r.Tree]
		w.lg.Debug("tree strike", slog.Int("tick", w.Tick), slog.Int("tree", r.Tree),
			slog.String("model", t.Model.String()), slog.Any("position", w.Heli.Position))
	}

	return r
}

// Clone returns a copy of w that can be stepped independently. The
// forest is immutable and is shared.
func (w *World) Clone() *World {
	return &World{
		Heli:   deep.MustCopy(w.Heli),
		Forest: w.Forest,
		Env:    w.Env,
		Tick:   w.Tick,
		Seed:   w.Seed,
		lg:     w.lg,
	}
}

// WithLogger returns a shallow copy of w that logs to lg.
func (w *World) WithLogger(lg *log.Logger) *World {
	nw := *w
	nw.lg = lg
	return &nw
}
