// view/view.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package view draws a scene.World into a renderer.CommandBuffer: the
// chase camera, lights and fog, the craft, and the scenery. It also
// reports the text that should be overlaid on the frame.
package view

import (
	"log/slog"

	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/renderer"
	"github.com/rotorfield/rotorfield/scene"
)

const (
	FieldOfView = 60
	NearPlane   = 1
	FarPlane    = 1000
)

var (
	xAxis = [3]float32{1, 0, 0}
	yAxis = [3]float32{0, 1, 0}
)

type Options struct {
	// FullBright adds a white light high above the pond.
	FullBright bool
}

// View holds the static geometry of the scenery, built once, and the
// primitive meshes the craft is assembled from each frame. Like display
// lists, the static buffers are drawn with whatever modelview matrix and
// material are current.
type View struct {
	lg     *log.Logger
	meshes *renderer.MeshCache

	ground renderer.CommandBuffer
	pond   renderer.CommandBuffer
	water  renderer.CommandBuffer
	sky    renderer.CommandBuffer
	trees  [heli.NumTreeModels]treeBuffers
}

type treeBuffers struct {
	trunk, leaves renderer.CommandBuffer
}

func New(lg *log.Logger) *View {
	v := &View{
		lg:     lg,
		meshes: renderer.NewMeshCache(32),
	}

	GroundMesh().GenerateCommands(&v.ground)
	PondMesh().GenerateCommands(&v.pond)
	WaterMesh().GenerateCommands(&v.water)
	v.meshes.Sphere(SkyRadius, 20, 20).GenerateCommands(&v.sky)
	for m := range heli.NumTreeModels {
		trunk, leaves := v.treeMeshes(heli.TreeModel(m))
		trunk.GenerateCommands(&v.trees[m].trunk)
		leaves.GenerateCommands(&v.trees[m].leaves)
	}

	lg.Debug("built scenery", slog.Any("ground", v.ground.Stats()), slog.Any("pond", v.pond.Stats()),
		slog.Any("water", v.water.Stats()), slog.Any("sky", v.sky.Stats()))
	return v
}

// ProjectionMatrix returns the perspective projection for a framebuffer
// of the given size.
func ProjectionMatrix(framebufferSize [2]float32) math.Matrix4 {
	aspect := float32(1)
	if framebufferSize[1] > 0 {
		aspect = framebufferSize[0] / framebufferSize[1]
	}
	return math.Identity4x4().Perspective(FieldOfView, aspect, NearPlane, FarPlane)
}

// Draw adds the commands to draw w from the chase camera to cb.
func (v *View) Draw(w *scene.World, framebufferSize [2]float32, opts Options, cb *renderer.CommandBuffer) {
	cb.ResetState()
	cb.Viewport(0, 0, int(framebufferSize[0]), int(framebufferSize[1]))
	cb.ClearRGB(renderer.RGB{})
	cb.LoadProjectionMatrix(ProjectionMatrix(framebufferSize))

	// The lights are positioned relative to the eye, so they follow the
	// camera around.
	cb.LoadModelViewMatrix(math.Identity4x4())
	for i, l := range lights {
		cb.Light(i, l)
	}
	if opts.FullBright {
		cb.Light(len(lights), fullBrightLight)
	}
	cb.Fog(scene.FogDensity(w.Heli.Position), renderer.RGB{})
	cb.EnableDepthTest()
	cb.EnableLighting()

	viewMatrix := scene.ChaseCamera(w.Heli).ViewMatrix()

	v.drawCraft(w.Heli, viewMatrix, cb)
	v.drawGround(viewMatrix, cb)
	v.drawWater(w.Env, viewMatrix, cb)
	v.drawSky(viewMatrix, cb)
	v.drawTrees(w.Forest, viewMatrix, cb)

	cb.ResetState()
}
