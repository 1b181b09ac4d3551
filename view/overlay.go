// view/overlay.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package view

import (
	"fmt"

	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/renderer"
	"github.com/rotorfield/rotorfield/scene"
)

const EdgeWarning = "You cannot go any further!"

// Message is a line of text to draw over the scene. Position is in
// window coordinates with the origin at the upper left.
type Message struct {
	Text     string
	Position [2]float32
	Color    renderer.RGB
}

var (
	warningColor = renderer.RGB{R: 1, G: 1, B: 1}
	hudColor     = renderer.RGB{R: 0.8, G: 0.8, B: 0.8}
)

const hudLineSpacing = 18

// Messages returns the text to overlay for w: the edge warning while the
// craft is held at the edge of the map and, if hud is set, its flight
// state including the distance to the closest tree trunk.
func Messages(w *scene.World, hud bool) []Message {
	var msgs []Message
	y := float32(20)
	if w.Heli.AtEdge {
		msgs = append(msgs, Message{Text: EdgeWarning, Position: [2]float32{20, y}, Color: warningColor})
		y += hudLineSpacing
	}
	if hud {
		h := w.Heli
		for _, line := range []string{
			fmt.Sprintf("Phase %s", h.Phase),
			fmt.Sprintf("Altitude %.1f", h.Position[1]),
			fmt.Sprintf("Heading %03.0f", h.Heading),
			fmt.Sprintf("Speed %.1f", math.Length3f(h.Velocity)/scene.FrameTimeSec),
			fmt.Sprintf("Position %.0f, %.0f", h.Position[0], h.Position[2]),
			nearestTree(w),
		} {
			msgs = append(msgs, Message{Text: line, Position: [2]float32{20, y}, Color: hudColor})
			y += hudLineSpacing
		}
	}
	return msgs
}

func nearestTree(w *scene.World) string {
	if i, d := w.Forest.Nearest(w.Heli.Position); i != -1 {
		return fmt.Sprintf("Nearest tree %.0f (%s)", d, w.Forest.Trees()[i].Model)
	}
	return "Nearest tree none"
}
