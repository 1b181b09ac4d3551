// log/log_test.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, c := range []struct {
		name  string
		level slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	} {
		if lvl, ok := ParseLevel(c.name); lvl != c.level || ok != c.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; expected %v, %v", c.name, lvl, ok, c.level, c.ok)
		}
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	// None of these should panic.
	l.Debug("debug")
	l.Debugf("debug %d", 1)
	l.Info("info")
	l.Infof("info %d", 1)
	if l.With("key", "value") != nil {
		t.Errorf("With on a nil Logger returned non-nil")
	}
}

func TestLoggerWritesJSON(t *testing.T) {
	dir := t.TempDir()
	l := New("debug", dir)
	l.With(slog.String("script", "hover")).Debug("tick", slog.Int("tick", 12))

	f, err := os.Open(l.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	found := false
	sc := bufio.NewScanner(f)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("%s: not JSON: %v", sc.Text(), err)
		}
		if rec["msg"] == "tick" {
			found = true
			if rec["script"] != "hover" {
				t.Errorf("got script %v, expected hover", rec["script"])
			}
			if rec["tick"] != float64(12) {
				t.Errorf("got tick %v, expected 12", rec["tick"])
			}
			if _, ok := rec["callstack"]; !ok {
				t.Errorf("debug record is missing callstack")
			}
		}
	}
	if !found {
		t.Errorf("didn't find the debug record in %s", l.LogFile)
	}
}

func TestCallstack(t *testing.T) {
	fr := func() []StackFrame { return Callstack(nil) }()
	if len(fr) == 0 {
		t.Fatal("empty callstack")
	}
	if !strings.HasSuffix(fr[0].File, "_test.go") {
		t.Errorf("first frame %s is not in the test file", fr[0])
	}
}
