// scene/script.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/util"
)

var (
	ErrEmptyScript   = errors.New("script has no ticks")
	ErrInvalidScript = errors.New("invalid script")
)

// ScriptStep holds the controls for a run of consecutive ticks.
type ScriptStep struct {
	Ticks int `json:"ticks"`
	heli.Controls
}

// Script is a sequence of control inputs used to fly the helicopter
// without a pilot.
type Script struct {
	Name  string
	Steps []ScriptStep

	// ends[i] is the tick after the last tick of Steps[i].
	ends []int
}

func NewScript(name string, steps []ScriptStep) (*Script, error) {
	var e util.ErrorLogger
	e.Push(name)
	s := &Script{Name: name, Steps: steps}
	end := 0
	for i, st := range steps {
		e.Push(fmt.Sprintf("step %d", i))
		if st.Ticks <= 0 {
			e.ErrorString("ticks must be positive, got %d", st.Ticks)
		}
		if st.Controls.Clamped() != st.Controls {
			e.ErrorString("controls %s: each axis must be -1, 0, or 1", st.Controls)
		}
		e.Pop()
		end += max(st.Ticks, 0)
		s.ends = append(s.ends, end)
	}
	e.Pop()

	if err := e.Err(ErrInvalidScript); err != nil {
		return nil, err
	}
	if end == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyScript)
	}
	return s, nil
}

// LoadScript reads a JSON array of steps.
func LoadScript(r io.Reader, name string) (*Script, error) {
	var steps []ScriptStep
	if err := util.UnmarshalJSON(r, &steps); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return NewScript(name, steps)
}

// LoadScriptFile is a convenience wrapper around LoadScript that reads
// path, which may be zstd compressed.
func LoadScriptFile(path string) (*Script, error) {
	r, err := util.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return LoadScript(r, path)
}

// Len returns the number of ticks that the script covers.
func (s *Script) Len() int {
	if len(s.ends) == 0 {
		return 0
	}
	return s.ends[len(s.ends)-1]
}

// Controls returns the controls for the given tick; ticks past the end
// of the script get zero controls.
func (s *Script) Controls(tick int) heli.Controls {
	if tick < 0 {
		return heli.Controls{}
	}
	i := sort.SearchInts(s.ends, tick+1)
	if i == len(s.ends) {
		return heli.Controls{}
	}
	return s.Steps[i].Controls
}
