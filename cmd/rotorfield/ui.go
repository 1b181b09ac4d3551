// cmd/rotorfield/ui.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/rotorfield/rotorfield/view"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/ncruces/zenity"
)

func imguiInit() *imgui.Context {
	context := imgui.CreateContext()
	imgui.CurrentIO().SetIniFilename("")

	style := imgui.CurrentStyle()
	style.SetFrameRounding(2.)
	style.SetWindowRounding(4.)
	style.ScaleAllSizes(1.25)

	return context
}

const overlayFlags = imgui.WindowFlagsNoDecoration | imgui.WindowFlagsNoBackground |
	imgui.WindowFlagsNoMove | imgui.WindowFlagsNoNav | imgui.WindowFlagsNoSavedSettings |
	imgui.WindowFlagsAlwaysAutoResize

// uiDrawOverlay draws each message in its own undecorated window.
func uiDrawOverlay(msgs []view.Message) {
	for i, m := range msgs {
		imgui.SetNextWindowPosV(imgui.Vec2{X: m.Position[0], Y: m.Position[1]}, imgui.CondAlways, imgui.Vec2{})
		if imgui.BeginV(fmt.Sprintf("##overlay%d", i), nil, overlayFlags) {
			imgui.PushStyleColorVec4(imgui.ColText, imgui.Vec4{X: m.Color.R, Y: m.Color.G, Z: m.Color.B, W: 1})
			imgui.Text(m.Text)
			imgui.PopStyleColor()
		}
		imgui.End()
	}
}

// showFatalErrorDialog is used for errors that happen before there is a
// window to draw an error in; it blocks until the dialog is dismissed.
func showFatalErrorDialog(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if err := zenity.Error(msg, zenity.Title("Rotorfield"), zenity.ErrorIcon); err != nil {
		fmt.Println(msg)
	}
}
