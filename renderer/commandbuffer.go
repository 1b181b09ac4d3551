// renderer/commandbuffer.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"
	"sync"
	"unsafe"

	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/util"
)

// The command buffer stores a series of rendering commands, represented by
// the following values. Each one is followed in the buffer by a number of
// command arguments, after which the next command follows. Comments
// after each command briefly describe its arguments.
//
// Buffers (vertex, normal, index, color, texcoord) are all stored directly
// in the CommandBuffer, following RendererFloatBuffer and RendererIntBuffer
// commands; the first argument after those commands is the length of the
// buffer and then its values follow directly. Commands that use buffers
// refer to them via the byte offset from the start of the command buffer
// where the buffer begins, so one CommandBuffer cannot refer to a buffer
// stored in another.
//
// Light positions are transformed by the modelview matrix that is current
// when RendererLight is processed, as with glLightfv.
const (
	RendererLoadProjectionMatrix = iota // 16 float32: matrix, column major
	RendererLoadModelViewMatrix         // 16 float32: matrix, column major
	RendererClearRGBA                   // 4 float32: RGBA; also clears depth
	RendererScissor                     // 4 int32: x, y, width, height
	RendererViewport                    // 4 int32: x, y, width, height
	RendererBlend                       // no args: for now always src alpha, 1-src alpha
	RendererDisableBlend                // no args
	RendererFloatBuffer                 // int32 size, then size*float32 values
	RendererIntBuffer                   // int32: size, then size*int32 values
	RendererRawBuffer                   // int32: size in int32s, then that many values
	RendererEnableTexture               // int32 handle
	RendererDisableTexture              // no args
	RendererVertexArray                 // byte offset to array values, n components, stride (bytes)
	RendererDisableVertexArray          // no args
	RendererNormalArray                 // byte offset to array values, stride (bytes)
	RendererDisableNormalArray          // no args
	RendererRGB8Array                   // byte offset to array values, n components, stride (bytes)
	RendererDisableColorArray           // no args
	RendererTexCoordArray               // byte offset to array values, n components, stride (bytes)
	RendererDisableTexCoordArray        // no args
	RendererDrawTriangles               // 2 int32: offset to the index buffer, count
	RendererCallBuffer                  // 1 int32: buffer index
	RendererResetState                  // no args
	RendererEnableDepthTest             // no args
	RendererEnableLighting              // no args
	RendererLight                       // int32 index, 4 float32 position, 3 diffuse, 3 specular, 1 linear attenuation
	RendererTwoSidedLighting            // int32: 0 or 1
	RendererMaterial                    // 4 float32 ambient, 4 diffuse, 4 specular, 4 emission, 1 shininess
	RendererFog                         // 4 float32: exponential density, RGB

	rendererCommandCount
)

// Number of fixed arguments that follow each command; buffers are
// variable-length and are handled separately.
var commandArgs = [rendererCommandCount]int{
	RendererLoadProjectionMatrix: 16,
	RendererLoadModelViewMatrix:  16,
	RendererClearRGBA:            4,
	RendererScissor:              4,
	RendererViewport:             4,
	RendererEnableTexture:        1,
	RendererVertexArray:          3,
	RendererNormalArray:          2,
	RendererRGB8Array:            3,
	RendererTexCoordArray:        3,
	RendererDrawTriangles:        2,
	RendererCallBuffer:           1,
	RendererLight:                12,
	RendererTwoSidedLighting:     1,
	RendererMaterial:             17,
	RendererFog:                  4,
}

// MaxLights is the number of lights that may be set with Light; it
// matches the minimum OpenGL guarantees.
const MaxLights = 8

// Only used to report bad values passed to the command buffer.
var lg *log.Logger

func SetLogger(l *log.Logger) {
	lg = l
}

// CommandBuffer encodes a sequence of rendering commands in an
// API-agnostic manner. It makes it possible to "pre-bake" rendering work
// into a form that can be efficiently processed by a Renderer and
// possibly reused over multiple frames.
type CommandBuffer struct {
	Buf    []uint32
	called []CommandBuffer
}

// CommandBuffers are managed using a sync.Pool so that their buf slice
// allocations persist across multiple uses.
var commandBufferPool = sync.Pool{New: func() any { return &CommandBuffer{} }}

func GetCommandBuffer() *CommandBuffer {
	return commandBufferPool.Get().(*CommandBuffer)
}

func ReturnCommandBuffer(cb *CommandBuffer) {
	cb.Reset()
	commandBufferPool.Put(cb)
}

// Reset resets the command buffer's length to zero so that it can be
// reused.
func (cb *CommandBuffer) Reset() {
	cb.Buf = cb.Buf[:0]
	cb.called = cb.called[:0]
}

// growFor ensures that at least n more values can be added to the end of
// the buffer without going past its capacity.
func (cb *CommandBuffer) growFor(n int) {
	if len(cb.Buf)+n > cap(cb.Buf) {
		sz := max(2*cap(cb.Buf), 1024)
		if sz < len(cb.Buf)+n {
			sz = 2 * (len(cb.Buf) + n)
		}
		b := make([]uint32, len(cb.Buf), sz)
		copy(b, cb.Buf)
		cb.Buf = b
	}
}

func (cb *CommandBuffer) appendFloats(floats ...float32) {
	for _, f := range floats {
		cb.Buf = append(cb.Buf, gomath.Float32bits(f))
	}
}

func (cb *CommandBuffer) appendInts(ints ...int) {
	for _, i := range ints {
		if i != int(uint32(i)) && i != int(int32(i)) {
			lg.Errorf("%d: attempting to add non-32-bit value to CommandBuffer", i)
		}
		cb.Buf = append(cb.Buf, uint32(i))
	}
}

func (cb *CommandBuffer) LoadProjectionMatrix(m math.Matrix4) {
	cb.appendInts(RendererLoadProjectionMatrix)
	cm := m.ColumnMajor()
	cb.appendFloats(cm[:]...)
}

func (cb *CommandBuffer) LoadModelViewMatrix(m math.Matrix4) {
	cb.appendInts(RendererLoadModelViewMatrix)
	cm := m.ColumnMajor()
	cb.appendFloats(cm[:]...)
}

// ClearRGB adds a command to the command buffer to clear the framebuffer
// to the specified RGB color and to reset the depth buffer.
func (cb *CommandBuffer) ClearRGB(color RGB) {
	cb.appendInts(RendererClearRGBA)
	cb.appendFloats(color.R, color.G, color.B, 1)
}

// Scissor adds a command to the command buffer to set the scissor
// rectangle as specified.
func (cb *CommandBuffer) Scissor(x, y, w, h int) {
	cb.appendInts(RendererScissor, x, y, w, h)
}

// Viewport adds a command to the command buffer to set the viewport to the
// specified rectangle.
func (cb *CommandBuffer) Viewport(x, y, w, h int) {
	cb.appendInts(RendererViewport, x, y, w, h)
}

// Blend adds a command to the command buffer enable blending. The blend
// mode cannot be specified currently, since only one mode (alpha over
// blending) is used.
func (cb *CommandBuffer) Blend() {
	cb.appendInts(RendererBlend)
}

func (cb *CommandBuffer) DisableBlend() {
	cb.appendInts(RendererDisableBlend)
}

// Float3Buffer stores the provided slice of [3]float32 values (3D
// positions or normals) in the CommandBuffer and returns the byte offset
// where the first value of the slice is stored; this offset can then be
// passed to commands like VertexArray to specify this array.
func (cb *CommandBuffer) Float3Buffer(buf [][3]float32) int {
	n := 3 * len(buf)
	cb.appendInts(RendererFloatBuffer, n)
	offset := 4 * len(cb.Buf)
	if n > 0 {
		cb.copyWords(unsafe.Slice((*uint32)(unsafe.Pointer(&buf[0])), n))
	}
	return offset
}

// IntBuffer stores the provided slice of int32 values in the command buffer
// and returns the byte offset where the first value of the slice is stored.
func (cb *CommandBuffer) IntBuffer(buf []int32) int {
	cb.appendInts(RendererIntBuffer, len(buf))
	offset := 4 * len(cb.Buf)
	if len(buf) > 0 {
		cb.copyWords(unsafe.Slice((*uint32)(unsafe.Pointer(&buf[0])), len(buf)))
	}
	return offset
}

// RawBuffer stores the provided bytes, without further interpretation in
// the command buffer and returns the byte offset from the start of the
// buffer where they begin.
func (cb *CommandBuffer) RawBuffer(buf []byte) int {
	nints := (len(buf) + 3) / 4
	cb.appendInts(RendererRawBuffer, nints)
	offset := 4 * len(cb.Buf)

	cb.growFor(nints)
	start := len(cb.Buf)
	cb.Buf = cb.Buf[:start+nints]
	if nints > 0 {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(&cb.Buf[start])), 4*nints)
		copy(dst, buf)
	}

	return offset
}

func (cb *CommandBuffer) copyWords(words []uint32) {
	n := len(words)
	cb.growFor(n)
	start := len(cb.Buf)
	cb.Buf = cb.Buf[:start+n]
	copy(cb.Buf[start:], words)
}

// EnableTexture enables texturing from the specified texture id (as
// returned by the Renderer CreateTextureFromImage method implementation).
func (cb *CommandBuffer) EnableTexture(id uint32) {
	cb.appendInts(RendererEnableTexture, int(id))
}

func (cb *CommandBuffer) DisableTexture() {
	cb.appendInts(RendererDisableTexture)
}

// VertexArray adds a command to the command buffer that specifies an array
// of vertex coordinates to use for a subsequent draw command. offset gives
// the offset into the current command buffer where the vertices begin
// (e.g., as returned by Float3Buffer), nComps is the number of components
// per vertex, and stride gives the stride in bytes between vertices (e.g.,
// 12 for densely packed 3D vertex coordinates.)
func (cb *CommandBuffer) VertexArray(offset, nComps, stride int) {
	cb.appendInts(RendererVertexArray, offset, nComps, stride)
}

func (cb *CommandBuffer) DisableVertexArray() {
	cb.appendInts(RendererDisableVertexArray)
}

// NormalArray specifies an array of per-vertex [3]float32 normals for
// lit geometry.
func (cb *CommandBuffer) NormalArray(offset, stride int) {
	cb.appendInts(RendererNormalArray, offset, stride)
}

func (cb *CommandBuffer) DisableNormalArray() {
	cb.appendInts(RendererDisableNormalArray)
}

// RGB8Array adds a command to the command buffer that specifies an array
// of 8-bit RGBA colors to use for a subsequent draw command.
func (cb *CommandBuffer) RGB8Array(offset, nComps, stride int) {
	cb.appendInts(RendererRGB8Array, offset, nComps, stride)
}

func (cb *CommandBuffer) DisableColorArray() {
	cb.appendInts(RendererDisableColorArray)
}

// TexCoordArray adds a command to the command buffer that specifies an
// array of per-vertex texture coordinates. Its arguments are analogous
// to the ones passed to VertexArray.
func (cb *CommandBuffer) TexCoordArray(offset, nComps, stride int) {
	cb.appendInts(RendererTexCoordArray, offset, nComps, stride)
}

func (cb *CommandBuffer) DisableTexCoordArray() {
	cb.appendInts(RendererDisableTexCoordArray)
}

// DrawTriangles adds a command to the command buffer to draw a number of
// triangles; each is specified by three vertices in the index
// buffer. offset gives the offset to the start of the index buffer in the
// current command buffer and count gives the total number of indices.
func (cb *CommandBuffer) DrawTriangles(offset, count int) {
	cb.appendInts(RendererDrawTriangles, offset, count)
}

// Call adds a command to the command buffer that causes the commands in
// the provided command buffer to be processed and executed. After the end
// of the command buffer is reached, processing of command in the current
// command buffer continues.
func (cb *CommandBuffer) Call(sub CommandBuffer) {
	if sub.Buf == nil {
		// make it a no-op
		return
	}

	cb.appendInts(RendererCallBuffer, len(cb.called))
	// Make our own copy of the slice to ensure it isn't garbage collected.
	cb.called = append(cb.called, sub)
}

// ResetState adds a command to the comment buffer that resets all of the
// assorted graphics state (scissor rectangle, blending, texturing, vertex
// arrays, depth test, lighting, fog) to default values.
func (cb *CommandBuffer) ResetState() {
	cb.appendInts(RendererResetState)
}

func (cb *CommandBuffer) EnableDepthTest() {
	cb.appendInts(RendererEnableDepthTest)
}

// EnableLighting turns on lighting for subsequent geometry; normals are
// renormalized after the modelview transformation.
func (cb *CommandBuffer) EnableLighting() {
	cb.appendInts(RendererEnableLighting)
}

// Light is a point (W=1) or directional (W=0) light.
type Light struct {
	Position          [4]float32
	Diffuse           RGB
	Specular          RGB
	LinearAttenuation float32
}

// Light sets and enables light index, which must be less than MaxLights.
func (cb *CommandBuffer) Light(index int, l Light) {
	if index < 0 || index >= MaxLights {
		lg.Errorf("%d: invalid light index", index)
		return
	}
	cb.appendInts(RendererLight, index)
	cb.appendFloats(l.Position[:]...)
	cb.appendFloats(l.Diffuse.R, l.Diffuse.G, l.Diffuse.B)
	cb.appendFloats(l.Specular.R, l.Specular.G, l.Specular.B)
	cb.appendFloats(l.LinearAttenuation)
}

// TwoSidedLighting controls whether back faces are lit with their own
// normals flipped; the sky is seen from the inside.
func (cb *CommandBuffer) TwoSidedLighting(on bool) {
	cb.appendInts(RendererTwoSidedLighting, util.Select(on, 1, 0))
}

// Material describes the surface of subsequent lit geometry, for both
// front and back faces.
type Material struct {
	Ambient, Diffuse, Specular, Emission RGBA
	Shininess                            float32
}

func (cb *CommandBuffer) Material(m Material) {
	cb.appendInts(RendererMaterial)
	for _, c := range []RGBA{m.Ambient, m.Diffuse, m.Specular, m.Emission} {
		cb.appendFloats(c.R, c.G, c.B, c.A)
	}
	cb.appendFloats(m.Shininess)
}

// Fog enables exponential fog with the given density and color.
func (cb *CommandBuffer) Fog(density float32, color RGB) {
	cb.appendInts(RendererFog)
	cb.appendFloats(density, color.R, color.G, color.B)
}

// Walk calls fn for each command in the buffer, not descending into
// called buffers, with the command's fixed arguments. Buffer commands
// are passed their contents. Walk stops early if fn returns false and
// reports whether the buffer was well formed.
func (cb *CommandBuffer) Walk(fn func(cmd uint32, args []uint32) bool) bool {
	i := 0
	for i < len(cb.Buf) {
		cmd := cb.Buf[i]
		i++
		if cmd >= rendererCommandCount {
			return false
		}

		n := commandArgs[cmd]
		switch cmd {
		case RendererFloatBuffer, RendererIntBuffer, RendererRawBuffer:
			if i >= len(cb.Buf) {
				return false
			}
			n = int(cb.Buf[i])
			i++
		}
		if i+n > len(cb.Buf) {
			return false
		}
		if !fn(cmd, cb.Buf[i:i+n]) {
			return true
		}
		i += n
	}
	return true
}

// Called returns the buffers passed to Call, in order.
func (cb *CommandBuffer) Called() []CommandBuffer {
	return cb.called
}
