// util/json.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSONError locates a problem in a JSON data file.
type JSONError struct {
	Line, Column int
	Err          error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

// UnmarshalJSON reads all of r and decodes it with UnmarshalJSONBytes.
func UnmarshalJSON[T any](r io.Reader, out *T) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return UnmarshalJSONBytes(b, out)
}

// UnmarshalJSONBytes decodes the single JSON value in b into out. Keys
// that out has no field for and anything after the value are errors, so
// that a misspelled "modle" or "surge" doesn't silently become zero.
// Syntax and type errors are returned as a *JSONError.
func UnmarshalJSONBytes[T any](b []byte, out *T) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(out); err != nil {
		var serr *json.SyntaxError
		var terr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &serr):
			return jsonErrorAt(b, serr.Offset, serr)
		case errors.As(err, &terr):
			field := terr.Field
			if field == "" {
				field = "value"
			}
			return jsonErrorAt(b, terr.Offset,
				fmt.Errorf("%s value cannot be used for %s (expected %s)", terr.Value, field, terr.Type))
		case errors.Is(err, io.EOF):
			return errors.New("no JSON value")
		default:
			return err
		}
	}

	if _, err := dec.Token(); err != io.EOF {
		return jsonErrorAt(b, dec.InputOffset(), errors.New("unexpected data after the end of the value"))
	}
	return nil
}

func jsonErrorAt(b []byte, offset int64, err error) *JSONError {
	je := &JSONError{Line: 1, Column: 1, Err: err}
	for i := 0; i < int(offset) && i < len(b); i++ {
		if b[i] == '\n' {
			je.Line++
			je.Column = 1
		} else {
			je.Column++
		}
	}
	return je
}
