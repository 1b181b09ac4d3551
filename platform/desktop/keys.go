// platform/desktop/keys.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package desktop

import (
	"github.com/rotorfield/rotorfield/platform"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwKeys = map[glfw.Key]struct {
	key      platform.Key
	imguiKey imgui.Key
}{
	glfw.KeyW:      {platform.KeyW, imgui.KeyW},
	glfw.KeyA:      {platform.KeyA, imgui.KeyA},
	glfw.KeyS:      {platform.KeyS, imgui.KeyS},
	glfw.KeyD:      {platform.KeyD, imgui.KeyD},
	glfw.KeyH:      {platform.KeyH, imgui.KeyH},
	glfw.KeyUp:     {platform.KeyUpArrow, imgui.KeyUpArrow},
	glfw.KeyDown:   {platform.KeyDownArrow, imgui.KeyDownArrow},
	glfw.KeyLeft:   {platform.KeyLeftArrow, imgui.KeyLeftArrow},
	glfw.KeyRight:  {platform.KeyRightArrow, imgui.KeyRightArrow},
	glfw.KeyEscape: {platform.KeyEscape, imgui.KeyEscape},
	glfw.KeyF11:    {platform.KeyF11, imgui.KeyF11},
}

// translateUntranslatedKey maps a key to the one its label names under
// the active keyboard layout, so that e.g. W on an AZERTY keyboard is the
// key marked W. Keypad keys are left alone.
func translateUntranslatedKey(key glfw.Key, scancode int) glfw.Key {
	if key >= glfw.KeyKP0 && key <= glfw.KeyKPEqual {
		return key
	}
	name := glfw.GetKeyName(key, scancode)
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= '0' && c <= '9':
			return glfw.Key0 + glfw.Key(c-'0')
		case c >= 'A' && c <= 'Z':
			return glfw.KeyA + glfw.Key(c-'A')
		case c >= 'a' && c <= 'z':
			return glfw.KeyA + glfw.Key(c-'a')
		}
	}
	return key
}
