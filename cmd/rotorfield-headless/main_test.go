// cmd/rotorfield-headless/main_test.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/scene"
)

func testWorld() *scene.World {
	w := scene.NewWorld(heli.NewForest(scene.ScatterForest(7, 60)), nil)
	w.Seed = 7
	return w
}

func testScript(t *testing.T, name string, steps ...scene.ScriptStep) *scene.Script {
	s, err := scene.NewScript(name, steps)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRecordingPath(t *testing.T) {
	for _, test := range []struct {
		name, expect string
	}{
		{"hover.json", "hover.rec"},
		{"scripts/climb.json.zst", "climb.json.rec"},
		{"plain", "plain.rec"},
	} {
		s := &scene.Script{Name: test.name}
		if got := recordingPath("out", s); got != filepath.Join("out", test.expect) {
			t.Errorf("%s: got %q, expected %q", test.name, got, filepath.Join("out", test.expect))
		}
	}
}

func TestRecordThenVerify(t *testing.T) {
	dir := t.TempDir()
	w := testWorld()
	s := testScript(t, "climb.json",
		scene.ScriptStep{Ticks: 270},
		scene.ScriptStep{Ticks: 90, Controls: heli.Controls{Heave: 1, Surge: 1}})
	path := recordingPath(dir, s)

	rec, err := flyAndRecord(context.Background(), w.Clone(), s, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	ver, err := verify(context.Background(), w.Clone(), s, path)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if rec.Final.Position != ver.Final.Position {
		t.Errorf("replayed flight ended at %v, recorded flight ended at %v", ver.Final.Position, rec.Final.Position)
	}

	// A different script against the same recording must not verify.
	other := testScript(t, "climb.json",
		scene.ScriptStep{Ticks: 270},
		scene.ScriptStep{Ticks: 90, Controls: heli.Controls{Heave: 1, Sway: 1}})
	if _, err := verify(context.Background(), w.Clone(), other, path); !errors.Is(err, scene.ErrRecordingMismatch) {
		t.Errorf("got error %v, expected %v", err, scene.ErrRecordingMismatch)
	}
}

func TestExitStatus(t *testing.T) {
	for _, test := range []struct {
		err    error
		expect int
	}{
		{nil, 0},
		{context.Canceled, 130},
		{fmt.Errorf("circuit.json: %w", context.DeadlineExceeded), 130},
		{fmt.Errorf("circuit.json: %w: tick 12", scene.ErrRecordingMismatch), 3},
		{os.ErrNotExist, 1},
	} {
		if got := exitStatus(test.err); got != test.expect {
			t.Errorf("%v: got status %d, expected %d", test.err, got, test.expect)
		}
	}
}

func TestFlyAll(t *testing.T) {
	w := testWorld()
	scripts := []*scene.Script{
		testScript(t, "idle", scene.ScriptStep{Ticks: 60}),
		testScript(t, "up", scene.ScriptStep{Ticks: 270}, scene.ScriptStep{Ticks: 30, Controls: heli.Controls{Heave: 1}}),
	}

	sums, err := flyAll(context.Background(), w, scripts, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, sum := range sums {
		if sum == nil {
			t.Fatalf("%s: no summary", scripts[i].Name)
		}
		if sum.Ticks != scripts[i].Len() {
			t.Errorf("%s: flew %d ticks, expected %d", scripts[i].Name, sum.Ticks, scripts[i].Len())
		}
	}
	if sums[0].Final.Phase != heli.PhaseStartup {
		t.Errorf("idle: got phase %s, expected %s", sums[0].Final.Phase, heli.PhaseStartup)
	}
	if w.Tick != 0 {
		t.Errorf("source world advanced to tick %d", w.Tick)
	}
}
