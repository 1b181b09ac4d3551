// renderer/opengl/font.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package opengl

import (
	"image"
	"unsafe"

	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/renderer"

	"github.com/AllenDang/cimgui-go/imgui"
)

// FontsInit adds imgui's built-in font and uploads the resulting atlas as
// a texture. An imgui context must exist.
func FontsInit(r renderer.Renderer, lg *log.Logger) {
	lg.Info("Starting to initialize fonts")
	io := imgui.CurrentIO()

	io.Fonts().AddFontDefault()

	texData := io.Fonts().TexData()
	w, h, bpp := int(texData.Width()), int(texData.Height()), int(texData.BytesPerPixel())
	lg.Infof("Fonts texture: %dx%d, %d bpp", w, h, bpp)
	pixels := unsafe.Add(nil, texData.Pixels())

	img := &image.RGBA{
		Stride: 4 * w,
		Rect:   image.Rectangle{Max: image.Point{X: w, Y: h}},
	}
	if bpp == 4 {
		img.Pix = unsafe.Slice((*uint8)(pixels), 4*w*h)
	} else {
		// Alpha8: white glyphs with coverage in alpha.
		alpha := unsafe.Slice((*uint8)(pixels), w*h)
		img.Pix = make([]uint8, 4*w*h)
		for i, a := range alpha {
			img.Pix[4*i], img.Pix[4*i+1], img.Pix[4*i+2], img.Pix[4*i+3] = 255, 255, 255, a
		}
	}

	id := r.CreateTextureFromImage(img, true)
	texData.SetTexID(imgui.TextureID(id))
	texData.SetStatus(imgui.TextureStatusOK)

	lg.Info("Finished initializing fonts")
}
