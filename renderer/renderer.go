// renderer/renderer.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package renderer provides a backend-neutral command buffer for drawing
// the scene, along with mesh builders that generate commands for it.
package renderer

import (
	"fmt"
	"image"
	"log/slog"
)

// Renderer defines an interface for all of the various drawing that
// happens. There is currently a single implementation of it, the OpenGL
// 2 renderer in renderer/opengl.
type Renderer interface {
	// CreateTextureFromImage returns an identifier for a texture map defined
	// by the specified image.
	CreateTextureFromImage(image image.Image, magNearest bool) uint32

	// UpdateTextureFromImage updates the contents of an existing texture
	// with the provided image.
	UpdateTextureFromImage(id uint32, image image.Image, magNearest bool)

	// DestroyTexture frees the resources associated with the given texture id.
	DestroyTexture(id uint32)

	// RenderCommandBuffer executes all of the commands encoded in the
	// provided command buffer, returning statistics about what was
	// rendered.
	RenderCommandBuffer(*CommandBuffer) RendererStats

	// Dispose releases resources allocated by the renderer.
	Dispose()
}

// RendererStats encapsulates assorted statistics from rendering.
type RendererStats struct {
	Buffers, BufferBytes int
	DrawCalls            int
	Triangles            int
}

func (rs *RendererStats) String() string {
	return fmt.Sprintf("%d buffers (%.2f MB), %d draw calls: %d tris",
		rs.Buffers, float32(rs.BufferBytes)/(1024*1024), rs.DrawCalls, rs.Triangles)
}

func (rs *RendererStats) Merge(s RendererStats) {
	rs.Buffers += s.Buffers
	rs.BufferBytes += s.BufferBytes
	rs.DrawCalls += s.DrawCalls
	rs.Triangles += s.Triangles
}

func (rs RendererStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("buffers", rs.Buffers),
		slog.Int("buffer_memory", rs.BufferBytes),
		slog.Int("draw_calls", rs.DrawCalls),
		slog.Int("tris", rs.Triangles),
	)
}

// Stats returns the statistics that rendering cb would produce, without
// rendering it; called buffers are included.
func (cb *CommandBuffer) Stats() RendererStats {
	stats := RendererStats{Buffers: 1, BufferBytes: 4 * len(cb.Buf)}
	cb.Walk(func(cmd uint32, args []uint32) bool {
		switch cmd {
		case RendererDrawTriangles:
			stats.DrawCalls++
			stats.Triangles += int(args[1] / 3)
		case RendererCallBuffer:
			stats.Merge(cb.called[args[0]].Stats())
		}
		return true
	})
	return stats
}
