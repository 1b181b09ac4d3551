// platform/keyboard.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

// Key identifies the keys the program responds to; everything else is
// only seen by imgui.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow
	KeyEscape
	KeyH
	KeyF11
	KeyCount
)

func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	case KeyUpArrow:
		return "Up"
	case KeyDownArrow:
		return "Down"
	case KeyLeftArrow:
		return "Left"
	case KeyRightArrow:
		return "Right"
	case KeyEscape:
		return "Escape"
	case KeyH:
		return "H"
	case KeyF11:
		return "F11"
	default:
		return "None"
	}
}

type KeyboardState struct {
	// Keys that are currently down.
	Held map[Key]interface{}
	// A key shows up here once each time it is pressed.
	Pressed map[Key]interface{}
}

func NewKeyboardState() *KeyboardState {
	return &KeyboardState{
		Held:    make(map[Key]interface{}),
		Pressed: make(map[Key]interface{}),
	}
}

// KeyEvent records a press or release of key.
func (k *KeyboardState) KeyEvent(key Key, down bool) {
	if key <= KeyNone || key >= KeyCount {
		return
	}
	if down {
		if _, held := k.Held[key]; !held {
			k.Pressed[key] = nil
		}
		k.Held[key] = nil
	} else {
		delete(k.Held, key)
	}
}

// BeginFrame clears the keys pressed during the previous frame; held
// keys persist until they are released.
func (k *KeyboardState) BeginFrame() {
	clear(k.Pressed)
}

// ReleaseAll forgets all held keys, e.g. when the window loses focus and
// release events will not arrive.
func (k *KeyboardState) ReleaseAll() {
	clear(k.Held)
}

func (k *KeyboardState) IsHeld(key Key) bool {
	_, ok := k.Held[key]
	return ok
}

func (k *KeyboardState) WasPressed(key Key) bool {
	_, ok := k.Pressed[key]
	return ok
}
