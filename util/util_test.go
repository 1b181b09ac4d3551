// util/util_test.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() || e.Err(os.ErrInvalid) != nil {
		t.Errorf("fresh ErrorLogger has errors")
	}

	e.Push("forest.json")
	e.Push("tree 3")
	e.ErrorString("model %d out of range", 7)
	e.Pop()
	e.Error(errors.New("duplicate position"))
	e.Pop()

	expected := "forest.json / tree 3: model 7 out of range\nforest.json: duplicate position"
	if e.String() != expected {
		t.Errorf("got %q, expected %q", e.String(), expected)
	}

	err := e.Err(os.ErrInvalid)
	if !errors.Is(err, os.ErrInvalid) {
		t.Errorf("Err does not wrap the base error: %v", err)
	}
	if !IsAny(err, os.ErrNotExist, os.ErrInvalid) || IsAny(err, os.ErrNotExist) {
		t.Errorf("IsAny mismatch for %v", err)
	}
}

func TestUnmarshalJSONErrors(t *testing.T) {
	type item struct {
		X float32 `json:"x"`
	}

	var items []item
	if err := UnmarshalJSONBytes([]byte(`[{"x": 1}, {"x": 2.5}]`), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[1].X != 2.5 {
		t.Errorf("got %+v", items)
	}

	for _, test := range []struct {
		json string
		line int
	}{
		{"[\n{\"x\": 1},\n{\"x\": }]", 3},
		{"[\n{\"x\": \"high\"}]", 2},
		{"[{\"x\": 1}]\n\n]", 3},
		{"[{\"x\": 1}] {\"x\": 2}", 1},
	} {
		err := UnmarshalJSON(strings.NewReader(test.json), &items)
		var je *JSONError
		if !errors.As(err, &je) {
			t.Errorf("%q: got %v, expected a located error", test.json, err)
		} else if je.Line != test.line {
			t.Errorf("%q: got line %d, expected %d", test.json, je.Line, test.line)
		}
	}

	// Misspelled keys are rejected rather than left at zero.
	if err := UnmarshalJSONBytes([]byte(`[{"x": 1, "y": 2}]`), &items); err == nil || !strings.Contains(err.Error(), `"y"`) {
		t.Errorf("got %v, expected an unknown field error", err)
	}
	if err := UnmarshalJSONBytes([]byte("  "), &items); err == nil {
		t.Errorf("expected an error for empty input")
	}
}

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 || Select(false, "a", "b") != "b" {
		t.Errorf("Select mismatch")
	}
}

func TestMsgpackStream(t *testing.T) {
	type rec struct {
		Tick int
		Pos  [3]float32
	}

	var buf bytes.Buffer
	w, err := NewMsgpackWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 50 {
		if err := w.Encode(rec{Tick: i, Pos: [3]float32{float32(i), 1, -float32(i)}}); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewMsgpackReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	n := 0
	for {
		var v rec
		err := r.Decode(&v)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		if v.Tick != n || v.Pos[2] != -float32(n) {
			t.Errorf("record %d: got %+v", n, v)
		}
		n++
	}
	if n != 50 {
		t.Errorf("read %d records, expected 50", n)
	}
}

func TestOpenFileDecompresses(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`[{"x": 1, "z": 2, "model": 0}]`)

	plain := filepath.Join(dir, "forest.json")
	if err := os.WriteFile(plain, content, 0o600); err != nil {
		t.Fatal(err)
	}

	var zbuf bytes.Buffer
	zw, err := zstd.NewWriter(&zbuf)
	if err != nil {
		t.Fatal(err)
	}
	zw.Write(content)
	zw.Close()
	compressed := filepath.Join(dir, "forest.json.zst")
	if err := os.WriteFile(compressed, zbuf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, fn := range []string{plain, compressed} {
		r, err := OpenFile(fn)
		if err != nil {
			t.Fatalf("%s: %v", fn, err)
		}
		b, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("%s: %v", fn, err)
		}
		if !bytes.Equal(b, content) {
			t.Errorf("%s: got %q, expected %q", fn, b, content)
		}
	}

	if _, err := OpenFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestLoadResource(t *testing.T) {
	// Tests run in the package directory, so the repository's resources
	// directory is one level up.
	if _, err := ResourcesDir(); err != nil {
		t.Fatal(err)
	}
	if !ResourceExists("forest.json") {
		t.Fatalf("forest.json resource not found")
	}
	if ResourceExists("no-such-file.json") {
		t.Errorf("ResourceExists returned true for a missing file")
	}

	r, err := LoadResource("forest.json")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 || b[0] != '[' {
		t.Errorf("forest.json doesn't look like a JSON array")
	}
}
