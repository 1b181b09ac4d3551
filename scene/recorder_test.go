// scene/recorder_test.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rotorfield/rotorfield/heli"
)

func testScript(t *testing.T) *Script {
	s, err := NewScript("test", []ScriptStep{
		{Ticks: 270},
		{Ticks: 60, Controls: heli.Controls{Heave: 1}},
		{Ticks: 120, Controls: heli.Controls{Surge: 1, Yaw: 1}},
		{Ticks: 30},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testWorld() *World {
	w := NewWorld(heli.NewForest(ScatterForest(3, 80)), nil)
	w.Seed = 3
	return w
}

func record(t *testing.T, w *World, s *Script) (*bytes.Buffer, Summary) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, HeaderFor(w, s))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := Fly(context.Background(), w.Clone(), s, rec)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.Frames() != s.Len() {
		t.Errorf("recorded %d frames, expected %d", rec.Frames(), s.Len())
	}
	return &buf, sum
}

func TestRecordAndVerify(t *testing.T) {
	w, s := testWorld(), testScript(t)
	buf, sum := record(t, w, s)

	if sum.Ticks != s.Len() || sum.LiftoffTick == -1 || sum.Final.Phase != heli.PhaseFlight {
		t.Errorf("unexpected summary %+v", sum)
	}

	hdr, frames, err := ReadRecording(buf)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Script != "test" || hdr.Seed != 3 || hdr.TreeCount != 80 || hdr.FrameTimeSec != FrameTimeSec {
		t.Errorf("unexpected header %+v", hdr)
	}
	if len(frames) != s.Len() {
		t.Fatalf("read %d frames, expected %d", len(frames), s.Len())
	}
	for i, f := range frames {
		if f.Tick != i {
			t.Fatalf("frame %d has tick %d", i, f.Tick)
		}
	}
	last := frames[len(frames)-1]
	if last.Position != sum.Final.Position || last.Heading != sum.Final.Heading {
		t.Errorf("last frame %+v doesn't match final state %+v", last, sum.Final)
	}

	if err := VerifyRecording(w, s, hdr, frames); err != nil {
		t.Errorf("verify failed: %v", err)
	}
	// Verification doesn't disturb the world.
	if w.Tick != 0 {
		t.Errorf("world advanced to tick %d", w.Tick)
	}

	frames[400].Heading += 1
	err = VerifyRecording(w, s, hdr, frames)
	if !errors.Is(err, ErrRecordingMismatch) || !strings.Contains(err.Error(), "tick 400") {
		t.Errorf("got %v, expected a mismatch at tick 400", err)
	}
}

func TestVerifyRejectsOtherWorlds(t *testing.T) {
	w, s := testWorld(), testScript(t)
	buf, _ := record(t, w, s)
	hdr, frames, err := ReadRecording(buf)
	if err != nil {
		t.Fatal(err)
	}

	other := NewWorld(heli.NewForest(ScatterForest(3, 81)), nil)
	if err := VerifyRecording(other, s, hdr, frames); !errors.Is(err, ErrRecordingMismatch) {
		t.Errorf("different tree count: got %v", err)
	}
	if err := VerifyRecording(w, s, hdr, frames[:10]); !errors.Is(err, ErrRecordingMismatch) {
		t.Errorf("truncated recording: got %v", err)
	}
}

func TestReadRecordingErrors(t *testing.T) {
	if _, _, err := ReadRecording(strings.NewReader("not zstd")); err == nil {
		t.Errorf("expected an error reading garbage")
	}
}

func TestFlyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := Fly(ctx, testWorld(), testScript(t), nil)
	if !errors.Is(err, context.Canceled) || sum.Ticks != 0 {
		t.Errorf("got %d ticks, err %v; expected immediate cancellation", sum.Ticks, err)
	}
}

func TestFlyCountsEvents(t *testing.T) {
	// Into a tree, back off, climb over the canopy, then out of the map.
	w := NewWorld(heli.NewForest([]heli.Tree{{Position: [2]float32{-80, 0}, Model: heli.TreeModelPine}}), nil)
	s, err := NewScript("events", []ScriptStep{
		{Ticks: 270},
		{Ticks: 200, Controls: heli.Controls{Surge: 1}},
		{Ticks: 100, Controls: heli.Controls{Surge: -1}},
		{Ticks: 260, Controls: heli.Controls{Heave: 1}},
		{Ticks: 2400, Controls: heli.Controls{Surge: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	sum, err := Fly(context.Background(), w, s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sum.TreeStrikes == 0 {
		t.Errorf("expected tree strikes: %+v", sum)
	}
	if sum.EdgeHits == 0 || sum.Final.Position[0] < 185 {
		t.Errorf("expected to end at the edge: %+v", sum)
	}
}
