// renderer/opengl/ogl2.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package opengl implements renderer.Renderer with the OpenGL 2.1 fixed
// function pipeline and bridges imgui to it.
package opengl

import (
	"C"
	"fmt"
	"image"
	"image/draw"
	gomath "math"
	"unsafe"

	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/renderer"
	"github.com/rotorfield/rotorfield/util"

	"github.com/go-gl/gl/v2.1/gl"
)

type OpenGL2Renderer struct {
	lg              *log.Logger
	createdTextures map[uint32]int
}

// NewOpenGL2Renderer initializes OpenGL; a context must be current.
func NewOpenGL2Renderer(lg *log.Logger) (renderer.Renderer, error) {
	renderer.SetLogger(lg)

	lg.Info("Starting OpenGL2Renderer initialization")
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	vendor, rend := gl.GetString(gl.VENDOR), gl.GetString(gl.RENDERER)
	v, r := (*C.char)(unsafe.Pointer(vendor)), (*C.char)(unsafe.Pointer(rend))
	lg.Infof("OpenGL vendor %s renderer %s", C.GoString(v), C.GoString(r))

	gl.ShadeModel(gl.SMOOTH)
	gl.Enable(gl.NORMALIZE)

	lg.Info("Finished OpenGL2Renderer initialization")
	return &OpenGL2Renderer{
		lg:              lg,
		createdTextures: make(map[uint32]int),
	}, nil
}

func (ogl2 *OpenGL2Renderer) Dispose() {
	for texid := range ogl2.createdTextures {
		gl.DeleteTextures(1, &texid)
	}
	clear(ogl2.createdTextures)
}

func (ogl2 *OpenGL2Renderer) createdTexture(texid uint32, bytes int) {
	_, exists := ogl2.createdTextures[texid]
	ogl2.createdTextures[texid] = bytes

	total := 0
	for _, b := range ogl2.createdTextures {
		total += b
	}
	mb := float32(total) / (1024 * 1024)

	if exists {
		ogl2.lg.Infof("Updated tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes, mb)
	} else {
		ogl2.lg.Infof("Created tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes, mb)
	}
}

func (ogl2 *OpenGL2Renderer) CreateTextureFromImage(img image.Image, magNearest bool) uint32 {
	var texid uint32
	gl.GenTextures(1, &texid)
	ogl2.UpdateTextureFromImage(texid, img, magNearest)
	return texid
}

func (ogl2 *OpenGL2Renderer) UpdateTextureFromImage(texid uint32, img image.Image, magNearest bool) {
	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	gl.BindTexture(gl.TEXTURE_2D, texid)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int32(util.Select(magNearest, gl.NEAREST, gl.LINEAR)))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	ny, nx := img.Bounds().Dy(), img.Bounds().Dx()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, nx, ny))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(nx), int32(ny), 0, gl.RGBA,
		gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))

	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	ogl2.createdTexture(texid, 4*nx*ny)
}

func (ogl2 *OpenGL2Renderer) DestroyTexture(texid uint32) {
	gl.DeleteTextures(1, &texid)
	delete(ogl2.createdTextures, texid)
}

func (ogl2 *OpenGL2Renderer) RenderCommandBuffer(cb *renderer.CommandBuffer) renderer.RendererStats {
	stats := renderer.RendererStats{Buffers: 1, BufferBytes: 4 * len(cb.Buf)}

	i := 0
	ui32 := func() uint32 {
		v := cb.Buf[i]
		i++
		return v
	}
	i32 := func() int32 {
		return int32(ui32())
	}
	float := func() float32 {
		return gomath.Float32frombits(ui32())
	}
	floats := func(n int) *float32 {
		ptr := (*float32)(unsafe.Pointer(&cb.Buf[i]))
		i += n
		return ptr
	}
	pointer := func(offset uint32) unsafe.Pointer {
		return unsafe.Add(unsafe.Pointer(&cb.Buf[0]), offset)
	}

	for i < len(cb.Buf) {
		cmd := cb.Buf[i]
		i++
		switch cmd {
		case renderer.RendererLoadProjectionMatrix:
			gl.MatrixMode(gl.PROJECTION)
			gl.LoadMatrixf(floats(16))

		case renderer.RendererLoadModelViewMatrix:
			gl.MatrixMode(gl.MODELVIEW)
			gl.LoadMatrixf(floats(16))

		case renderer.RendererClearRGBA:
			r := float()
			g := float()
			b := float()
			a := float()
			gl.ClearColor(r, g, b, a)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		case renderer.RendererScissor:
			x := i32()
			y := i32()
			w := i32()
			h := i32()
			gl.Enable(gl.SCISSOR_TEST)
			gl.Scissor(x, y, w, h)

		case renderer.RendererViewport:
			x := i32()
			y := i32()
			w := i32()
			h := i32()
			gl.Viewport(x, y, w, h)

		case renderer.RendererBlend:
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

		case renderer.RendererDisableBlend:
			gl.Disable(gl.BLEND)

		case renderer.RendererFloatBuffer, renderer.RendererIntBuffer, renderer.RendererRawBuffer:
			// Nothing to do for the moment but skip ahead
			i += int(ui32())

		case renderer.RendererEnableTexture:
			gl.Enable(gl.TEXTURE_2D)
			gl.BindTexture(gl.TEXTURE_2D, ui32())

		case renderer.RendererDisableTexture:
			gl.Disable(gl.TEXTURE_2D)

		case renderer.RendererVertexArray:
			gl.EnableClientState(gl.VERTEX_ARRAY)
			ptr := pointer(ui32())
			nc := i32()
			stride := i32()
			gl.VertexPointer(nc, gl.FLOAT, stride, ptr)

		case renderer.RendererDisableVertexArray:
			gl.DisableClientState(gl.VERTEX_ARRAY)

		case renderer.RendererNormalArray:
			gl.EnableClientState(gl.NORMAL_ARRAY)
			ptr := pointer(ui32())
			stride := i32()
			gl.NormalPointer(gl.FLOAT, stride, ptr)

		case renderer.RendererDisableNormalArray:
			gl.DisableClientState(gl.NORMAL_ARRAY)

		case renderer.RendererRGB8Array:
			gl.EnableClientState(gl.COLOR_ARRAY)
			ptr := pointer(ui32())
			nc := i32()
			stride := i32()
			gl.ColorPointer(nc, gl.UNSIGNED_BYTE, stride, ptr)

		case renderer.RendererDisableColorArray:
			gl.DisableClientState(gl.COLOR_ARRAY)

		case renderer.RendererTexCoordArray:
			gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
			ptr := pointer(ui32())
			nc := i32()
			stride := i32()
			gl.TexCoordPointer(nc, gl.FLOAT, stride, ptr)

		case renderer.RendererDisableTexCoordArray:
			gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)

		case renderer.RendererDrawTriangles:
			ptr := pointer(ui32())
			count := i32()
			gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, ptr)

			stats.DrawCalls++
			stats.Triangles += int(count / 3)

		case renderer.RendererResetState:
			gl.Disable(gl.SCISSOR_TEST)
			gl.Disable(gl.BLEND)
			gl.DisableClientState(gl.VERTEX_ARRAY)
			gl.DisableClientState(gl.NORMAL_ARRAY)
			gl.DisableClientState(gl.COLOR_ARRAY)
			gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
			gl.Disable(gl.TEXTURE_2D)
			gl.Disable(gl.DEPTH_TEST)
			gl.Disable(gl.LIGHTING)
			for l := range renderer.MaxLights {
				gl.Disable(gl.LIGHT0 + uint32(l))
			}
			gl.LightModeli(gl.LIGHT_MODEL_TWO_SIDE, gl.FALSE)
			gl.Disable(gl.FOG)

		case renderer.RendererCallBuffer:
			idx := ui32()
			s2 := ogl2.RenderCommandBuffer(&cb.Called()[idx])
			stats.Merge(s2)

		case renderer.RendererEnableDepthTest:
			gl.Enable(gl.DEPTH_TEST)
			gl.DepthFunc(gl.LEQUAL)

		case renderer.RendererEnableLighting:
			gl.Enable(gl.LIGHTING)

		case renderer.RendererLight:
			light := gl.LIGHT0 + ui32()
			gl.Lightfv(light, gl.POSITION, floats(4))
			diffuse := [4]float32{float(), float(), float(), 1}
			specular := [4]float32{float(), float(), float(), 1}
			gl.Lightfv(light, gl.DIFFUSE, &diffuse[0])
			gl.Lightfv(light, gl.SPECULAR, &specular[0])
			gl.Lightf(light, gl.LINEAR_ATTENUATION, float())
			gl.Enable(light)

		case renderer.RendererTwoSidedLighting:
			gl.LightModeli(gl.LIGHT_MODEL_TWO_SIDE, int32(util.Select(ui32() != 0, gl.TRUE, gl.FALSE)))

		case renderer.RendererMaterial:
			gl.Materialfv(gl.FRONT_AND_BACK, gl.AMBIENT, floats(4))
			gl.Materialfv(gl.FRONT_AND_BACK, gl.DIFFUSE, floats(4))
			gl.Materialfv(gl.FRONT_AND_BACK, gl.SPECULAR, floats(4))
			gl.Materialfv(gl.FRONT_AND_BACK, gl.EMISSION, floats(4))
			gl.Materialf(gl.FRONT_AND_BACK, gl.SHININESS, float())

		case renderer.RendererFog:
			density := float()
			color := [4]float32{float(), float(), float(), 1}
			gl.Fogi(gl.FOG_MODE, gl.EXP)
			gl.Fogf(gl.FOG_DENSITY, density)
			gl.Fogfv(gl.FOG_COLOR, &color[0])
			gl.Enable(gl.FOG)

		default:
			ogl2.lg.Errorf("%d: unhandled command", cmd)
		}
	}

	return stats
}
