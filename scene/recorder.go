// scene/recorder.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/util"
)

var ErrRecordingMismatch = errors.New("replay diverged from recording")

const RecordingVersion = 1

// RecordingHeader is the first value in a recording.
type RecordingHeader struct {
	Version      int
	Script       string
	Seed         int64
	TreeCount    int
	FrameTimeSec float32
	Spawn        [3]float32
}

// Frame is the helicopter state after one tick.
type Frame struct {
	Tick       int
	Position   [3]float32
	Velocity   [3]float32
	Heading    float32
	RotorAngle float32
	Phase      heli.Phase
	AtEdge     bool
	Move       heli.MoveResult
}

func MakeFrame(tick int, h *heli.Helicopter, r heli.TickResult) Frame {
	return Frame{
		Tick:       tick,
		Position:   h.Position,
		Velocity:   h.Velocity,
		Heading:    h.Heading,
		RotorAngle: h.RotorAngle,
		Phase:      h.Phase,
		AtEdge:     h.AtEdge,
		Move:       r.Move,
	}
}

// Recorder writes a header followed by one Frame per tick as a
// zstd-compressed msgpack stream.
type Recorder struct {
	w      *util.MsgpackWriter
	frames int
}

func NewRecorder(w io.Writer, hdr RecordingHeader) (*Recorder, error) {
	mw, err := util.NewMsgpackWriter(w)
	if err != nil {
		return nil, err
	}
	hdr.Version = RecordingVersion
	if err := mw.Encode(hdr); err != nil {
		return nil, err
	}
	return &Recorder{w: mw}, nil
}

// HeaderFor returns the header describing a recording of s flown in w.
func HeaderFor(w *World, s *Script) RecordingHeader {
	return RecordingHeader{
		Version:      RecordingVersion,
		Script:       s.Name,
		Seed:         w.Seed,
		TreeCount:    w.Forest.Len(),
		FrameTimeSec: FrameTimeSec,
		Spawn:        w.Heli.Position,
	}
}

func (r *Recorder) Record(f Frame) error {
	r.frames++
	return r.w.Encode(f)
}

func (r *Recorder) Frames() int {
	return r.frames
}

func (r *Recorder) Close() error {
	return r.w.Close()
}

// ReadRecording reads a recording written by a Recorder.
func ReadRecording(rd io.Reader) (RecordingHeader, []Frame, error) {
	mr, err := util.NewMsgpackReader(rd)
	if err != nil {
		return RecordingHeader{}, nil, err
	}
	defer mr.Close()

	var hdr RecordingHeader
	if err := mr.Decode(&hdr); err != nil {
		return hdr, nil, fmt.Errorf("recording header: %w", err)
	}
	if hdr.Version != RecordingVersion {
		return hdr, nil, fmt.Errorf("recording version %d: only version %d is supported", hdr.Version, RecordingVersion)
	}

	var frames []Frame
	for {
		var f Frame
		err := mr.Decode(&f)
		if err == io.EOF {
			return hdr, frames, nil
		} else if err != nil {
			return hdr, frames, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
}

// VerifyRecording replays s in a copy of w and checks that every tick
// matches the recorded frames exactly.
func VerifyRecording(w *World, s *Script, hdr RecordingHeader, frames []Frame) error {
	if hdr.TreeCount != w.Forest.Len() {
		return fmt.Errorf("%w: recorded with %d trees, world has %d", ErrRecordingMismatch, hdr.TreeCount, w.Forest.Len())
	}
	if hdr.FrameTimeSec != FrameTimeSec {
		return fmt.Errorf("%w: recorded with a %gs tick, expected %gs", ErrRecordingMismatch, hdr.FrameTimeSec, FrameTimeSec)
	}
	if hdr.Spawn != w.Heli.Position {
		return fmt.Errorf("%w: recorded starting at %v, world starts at %v", ErrRecordingMismatch, hdr.Spawn, w.Heli.Position)
	}
	if len(frames) != s.Len() {
		return fmt.Errorf("%w: %d frames recorded, script %q has %d ticks", ErrRecordingMismatch, len(frames), s.Name, s.Len())
	}

	w = w.Clone()
	for i, expect := range frames {
		tick := w.Tick
		r := w.Step(s.Controls(i))
		if got := MakeFrame(tick, w.Heli, r); got != expect {
			return fmt.Errorf("%w: tick %d: got %+v, recorded %+v", ErrRecordingMismatch, tick, got, expect)
		}
	}
	return nil
}
