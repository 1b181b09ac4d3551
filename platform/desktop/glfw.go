// platform/desktop/glfw.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package desktop implements platform.Platform with GLFW, feeding
// window and keyboard state both to imgui and to the flight controls.
package desktop

import (
	"fmt"
	gomath "math"
	"runtime"

	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/platform"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwPlatform implements the platform.Platform interface using GLFW.
type glfwPlatform struct {
	imguiIO *imgui.IO

	window *glfw.Window
	config *platform.Config
	lg     *log.Logger

	time             float64
	mouseJustPressed [3]bool
	anyEvents        bool
	multisample      bool
	windowTitle      string

	keyboard *platform.KeyboardState
}

// New returns a new instance of a Platform implemented with a window of
// the size and position given by config. The imgui context must already
// exist.
func New(config *platform.Config, lg *log.Logger) (platform.Platform, error) {
	lg.Info("Starting GLFW initialization")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	lg.Infof("GLFW: %s", glfw.GetVersionString())

	io := imgui.CurrentIO()

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	vm := glfw.GetPrimaryMonitor().GetVideoMode()
	if config.InitialWindowSize[0] == 0 || config.InitialWindowSize[1] == 0 {
		config.InitialWindowSize = [2]int{vm.Width - 150, vm.Height - 150}
	}
	if config.InitialWindowPosition[0] < 0 || config.InitialWindowPosition[1] < 0 ||
		config.InitialWindowPosition[0] > vm.Width || config.InitialWindowPosition[1] > vm.Height {
		config.InitialWindowPosition = [2]int{100, 100}
	}

	// Start with an invisible window so that we can position it first
	glfw.WindowHint(glfw.Visible, 0)
	glfw.WindowHint(glfw.AutoIconify, 0)
	if config.EnableMSAA {
		glfw.WindowHint(glfw.Samples, 4)
	}

	monitors := glfw.GetMonitors()
	if config.FullScreenMonitor >= len(monitors) {
		config.FullScreenMonitor = 0
	}

	var window *glfw.Window
	var err error
	if config.StartInFullScreen {
		m := monitors[config.FullScreenMonitor]
		fvm := m.GetVideoMode()
		window, err = glfw.CreateWindow(fvm.Width, fvm.Height, "Rotorfield", m, nil)
	} else {
		window, err = glfw.CreateWindow(config.InitialWindowSize[0], config.InitialWindowSize[1], "Rotorfield", nil, nil)
	}
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.SetPos(config.InitialWindowPosition[0], config.InitialWindowPosition[1])
	window.Show()
	window.MakeContextCurrent()

	g := &glfwPlatform{
		imguiIO:     io,
		window:      window,
		config:      config,
		lg:          lg,
		multisample: config.EnableMSAA,
		windowTitle: "Rotorfield",
		keyboard:    platform.NewKeyboardState(),
	}
	g.installCallbacks()
	g.EnableVSync(true)

	glfw.SetMonitorCallback(g.monitorCallback)

	lg.Info("Finished GLFW initialization")
	return g, nil
}

func (g *glfwPlatform) DPIScale() float32 {
	if runtime.GOOS == "windows" {
		sx, sy := g.window.GetContentScale()
		return float32(int((sx + sy) / 2))
	}
	if ds := g.DisplaySize(); ds[0] > 0 {
		return g.FramebufferSize()[0] / ds[0]
	}
	return 1
}

func (g *glfwPlatform) EnableVSync(sync bool) {
	if sync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (g *glfwPlatform) IsFullScreen() bool {
	return g.window.GetMonitor() != nil
}

func (g *glfwPlatform) EnableFullScreen(fullscreen bool) {
	monitors := glfw.GetMonitors()
	if g.config.FullScreenMonitor >= len(monitors) {
		g.config.FullScreenMonitor = 0
	}
	monitor := monitors[g.config.FullScreenMonitor]
	vm := monitor.GetVideoMode()

	if fullscreen {
		g.window.SetMonitor(monitor, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
	} else {
		size := g.config.InitialWindowSize
		if size[0] == 0 || size[1] == 0 {
			size = [2]int{vm.Width - 150, vm.Height - 150}
		}
		g.window.SetMonitor(nil, g.config.InitialWindowPosition[0], g.config.InitialWindowPosition[1],
			size[0], size[1], glfw.DontCare)
	}
}

func (g *glfwPlatform) monitorCallback(monitor *glfw.Monitor, event glfw.PeripheralEvent) {
	if event == glfw.Disconnected {
		g.lg.Infof("Monitor %q disconnected", monitor.GetName())
		g.config.FullScreenMonitor = 0
		g.config.StartInFullScreen = false
	}
}

func (g *glfwPlatform) Dispose() {
	g.window.Destroy()
	glfw.Terminate()
}

func (g *glfwPlatform) ShouldStop() bool {
	return g.window.ShouldClose()
}

func (g *glfwPlatform) CancelShouldStop() {
	g.window.SetShouldClose(false)
}

func (g *glfwPlatform) SetWindowTitle(text string) {
	if text != g.windowTitle {
		g.window.SetTitle(text)
		g.windowTitle = text
	}
}

func (g *glfwPlatform) GetKeyboard() *platform.KeyboardState {
	return g.keyboard
}

func (g *glfwPlatform) ProcessEvents() bool {
	g.anyEvents = false
	g.keyboard.BeginFrame()

	glfw.PollEvents()

	return g.anyEvents
}

func (g *glfwPlatform) DisplaySize() [2]float32 {
	w, h := g.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

func (g *glfwPlatform) WindowSize() [2]int {
	w, h := g.window.GetSize()
	return [2]int{w, h}
}

func (g *glfwPlatform) WindowPosition() [2]int {
	x, y := g.window.GetPos()
	return [2]int{x, y}
}

func (g *glfwPlatform) FramebufferSize() [2]float32 {
	w, h := g.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

func (g *glfwPlatform) NewFrame() {
	if g.multisample {
		gl.Enable(gl.MULTISAMPLE)
	}

	// Every frame, to follow window resizes.
	displaySize := g.DisplaySize()
	g.imguiIO.SetDisplaySize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})

	currentTime := glfw.GetTime()
	if g.time > 0 {
		g.imguiIO.SetDeltaTime(float32(currentTime - g.time))
	}
	g.time = currentTime

	if g.window.GetAttrib(glfw.Focused) != 0 {
		x, y := g.window.GetCursorPos()
		g.imguiIO.SetMousePos(imgui.Vec2{X: float32(int(x)), Y: float32(int(y))})
	} else {
		g.imguiIO.SetMousePos(imgui.Vec2{X: -gomath.MaxFloat32, Y: -gomath.MaxFloat32})
	}

	for i, b := range []glfw.MouseButton{glfw.MouseButton1, glfw.MouseButton2, glfw.MouseButton3} {
		down := g.mouseJustPressed[i] || g.window.GetMouseButton(b) == glfw.Press
		g.imguiIO.SetMouseButtonDown(i, down)
		g.mouseJustPressed[i] = false
	}
}

func (g *glfwPlatform) PostRender() {
	g.window.SwapBuffers()
}

func (g *glfwPlatform) installCallbacks() {
	g.window.SetMouseButtonCallback(g.mouseButtonChange)
	g.window.SetScrollCallback(g.mouseScrollChange)
	g.window.SetKeyCallback(g.keyChange)
	g.window.SetCharCallback(g.charChange)
	g.window.SetFocusCallback(g.focusChange)
}

func (g *glfwPlatform) mouseButtonChange(window *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	g.anyEvents = true
	if idx := int(button - glfw.MouseButton1); idx >= 0 && idx < len(g.mouseJustPressed) && action == glfw.Press {
		g.mouseJustPressed[idx] = true
	}
	g.updateKeyModifiers()
}

func (g *glfwPlatform) mouseScrollChange(window *glfw.Window, x, y float64) {
	g.anyEvents = true
	g.imguiIO.AddMouseWheelDelta(float32(x), float32(y))
}

func (g *glfwPlatform) keyChange(window *glfw.Window, keycode glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	g.anyEvents = true
	g.updateKeyModifiers()

	if action != glfw.Press && action != glfw.Release {
		// Repeats do not change the held state.
		return
	}
	down := action == glfw.Press

	kc := translateUntranslatedKey(keycode, scancode)
	if k, ok := glfwKeys[kc]; ok {
		g.keyboard.KeyEvent(k.key, down)
		g.imguiIO.AddKeyEvent(k.imguiKey, down)
	}
}

func (g *glfwPlatform) focusChange(window *glfw.Window, focused bool) {
	g.anyEvents = true
	if !focused {
		// Releases that happen while unfocused are never delivered.
		g.keyboard.ReleaseAll()
	}
}

func (g *glfwPlatform) updateKeyModifiers() {
	pressed := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if g.window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	g.imguiIO.AddKeyEvent(imgui.ModShift, pressed(glfw.KeyLeftShift, glfw.KeyRightShift))
	g.imguiIO.AddKeyEvent(imgui.ModAlt, pressed(glfw.KeyLeftAlt, glfw.KeyRightAlt))
	g.imguiIO.AddKeyEvent(imgui.ModCtrl, pressed(glfw.KeyLeftControl, glfw.KeyRightControl))
	g.imguiIO.AddKeyEvent(imgui.ModSuper, pressed(glfw.KeyLeftSuper, glfw.KeyRightSuper))
}

func (g *glfwPlatform) charChange(window *glfw.Window, char rune) {
	g.anyEvents = true
	g.imguiIO.AddInputCharactersUTF8(string(char))
}
