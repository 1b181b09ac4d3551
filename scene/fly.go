// scene/fly.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"context"
	"log/slog"

	"github.com/rotorfield/rotorfield/heli"
)

// Summary is an overview of a scripted flight.
type Summary struct {
	Script      string
	Ticks       int
	TreeStrikes int
	EdgeHits    int
	// LiftoffTick is the tick at which the craft entered flight, or -1.
	LiftoffTick int
	Final       heli.Helicopter
}

func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("script", s.Script),
		slog.Int("ticks", s.Ticks),
		slog.Int("tree_strikes", s.TreeStrikes),
		slog.Int("edge_hits", s.EdgeHits),
		slog.Int("liftoff_tick", s.LiftoffTick),
		slog.String("phase", s.Final.Phase.String()),
		slog.Any("position", s.Final.Position),
		slog.Float64("heading", float64(s.Final.Heading)))
}

// Fly steps w through every tick of s, recording each tick if rec is
// non-nil. It stops early if ctx is canceled.
func Fly(ctx context.Context, w *World, s *Script, rec *Recorder) (Summary, error) {
	sum := Summary{Script: s.Name, LiftoffTick: -1}

	for i := range s.Len() {
		if i%TargetFPS == 0 {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
		}

		tick := w.Tick
		wasAtEdge := w.Heli.AtEdge
		r := w.Step(s.Controls(i))
		sum.Ticks++

		switch {
		case r.Move == heli.MoveTreeStrike:
			sum.TreeStrikes++
		case w.Heli.AtEdge && !wasAtEdge:
			sum.EdgeHits++
		}
		if r.PhaseChanged {
			sum.LiftoffTick = tick
		}

		if rec != nil {
			if err := rec.Record(MakeFrame(tick, w.Heli, r)); err != nil {
				return sum, err
			}
		}
	}

	sum.Final = *w.Heli
	return sum, nil
}
