// renderer/opengl/imgui.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package opengl

import (
	"unsafe"

	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/renderer"

	"github.com/AllenDang/cimgui-go/imgui"
)

// GenerateImguiCommandBuffer converts the current imgui draw data into
// 2D commands appended to cb. It should be called after the 3D scene
// has been added so that the overlay lands on top.
func GenerateImguiCommandBuffer(cb *renderer.CommandBuffer, displaySize, framebufferSize [2]float32, lg *log.Logger) {
	drawData := imgui.CurrentDrawData()

	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 || displaySize[0] <= 0 || displaySize[1] <= 0 {
		// Minimized.
		return
	}

	clipOff := drawData.DisplayPos()
	clipScale := [2]float32{fbWidth / displaySize[0], fbHeight / displaySize[1]}

	cb.ResetState()
	cb.LoadProjectionMatrix(math.Identity4x4().Ortho(
		clipOff.X, clipOff.X+displaySize[0],
		clipOff.Y+displaySize[1], clipOff.Y))
	cb.LoadModelViewMatrix(math.Identity4x4())
	cb.Viewport(0, 0, int(fbWidth), int(fbHeight))
	cb.Blend()

	vertexSize, vertexOffsetPos, vertexOffsetUV, vertexOffsetRGB := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()

	for _, commandList := range drawData.CommandLists() {
		vertexBufferPtr, vertexBufferSizeBytes := commandList.GetVertexBuffer()
		indexBufferPtr, indexBufferSizeBytes := commandList.GetIndexBuffer()
		if indexBufferSizeBytes == 0 || vertexBufferSizeBytes == 0 {
			continue
		}

		// Index buffers are int32 in the command buffer; imgui usually
		// hands out uint16s.
		var indices []int32
		if indexSize == 4 {
			indices = unsafe.Slice((*int32)(indexBufferPtr), indexBufferSizeBytes/4)
		} else {
			buf16 := unsafe.Slice((*uint16)(indexBufferPtr), indexBufferSizeBytes/indexSize)
			indices = make([]int32, len(buf16))
			for i, idx := range buf16 {
				indices[i] = int32(idx)
			}
		}
		indexOffset := cb.IntBuffer(indices)

		vertexOffset := cb.RawBuffer(unsafe.Slice((*byte)(vertexBufferPtr), vertexBufferSizeBytes))
		cb.VertexArray(vertexOffset+vertexOffsetPos, 2, vertexSize)
		cb.TexCoordArray(vertexOffset+vertexOffsetUV, 2, vertexSize)
		cb.RGB8Array(vertexOffset+vertexOffsetRGB, 4, vertexSize)

		for _, command := range commandList.Commands() {
			if command.HasUserCallback() {
				lg.Error("Unexpected user callback in imgui draw list")
				continue
			}

			cr := command.ClipRect()
			x0 := (cr.X - clipOff.X) * clipScale[0]
			y0 := (cr.Y - clipOff.Y) * clipScale[1]
			x1 := (cr.Z - clipOff.X) * clipScale[0]
			y1 := (cr.W - clipOff.Y) * clipScale[1]
			if x1 <= x0 || y1 <= y0 {
				continue
			}

			cb.Scissor(int(x0), max(int(fbHeight-y1), 0), int(x1-x0), int(y1-y0))
			cb.EnableTexture(uint32(command.TexID()))
			cb.DrawTriangles(indexOffset+int(command.IdxOffset()*4), int(command.ElemCount()))
		}

		cb.DisableTexture()
		cb.DisableColorArray()
		cb.DisableTexCoordArray()
		cb.DisableVertexArray()
	}

	cb.DisableBlend()
	cb.ResetState()
}
