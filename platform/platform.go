// platform/platform.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package platform defines the window and input abstraction the
// interactive program runs against and maps keyboard state to flight
// controls. The GLFW implementation lives in platform/desktop.
package platform

// Platform is the interface that abstracts platform-specific features like
// creating windows and keyboard handling.
type Platform interface {
	// NewFrame marks the beginning of a render pass; it forwards the
	// current window and input state to imgui IO.
	NewFrame()
	// ProcessEvents handles all pending window events. Returns true if
	// there were any events and false otherwise.
	ProcessEvents() bool
	// PostRender performs the buffer swap.
	PostRender()
	// Dispose is called when the application is shutting down.
	Dispose()
	// ShouldStop returns true if the window is to be closed.
	ShouldStop() bool
	// CancelShouldStop cancels a user's request to close the window.
	CancelShouldStop()
	SetWindowTitle(text string)
	// EnableVSync specifies whether v-sync should be used when rendering.
	EnableVSync(sync bool)
	// EnableFullScreen switches between windowed and fullscreen mode.
	EnableFullScreen(fullscreen bool)
	IsFullScreen() bool
	// DisplaySize returns the dimension of the display.
	DisplaySize() [2]float32
	// WindowSize returns the size of the window.
	WindowSize() [2]int
	// WindowPosition returns the position of the window on the screen.
	WindowPosition() [2]int
	// FramebufferSize returns the dimension of the framebuffer.
	FramebufferSize() [2]float32
	// Scaling factor to account for Retina-style displays
	DPIScale() float32

	// GetKeyboard returns the keyboard state accumulated by the most
	// recent call to ProcessEvents.
	GetKeyboard() *KeyboardState
}

// Config holds the window settings that are persisted between runs.
type Config struct {
	InitialWindowSize     [2]int
	InitialWindowPosition [2]int

	EnableMSAA bool

	StartInFullScreen bool
	FullScreenMonitor int
}
