// util/resources.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrNoResourcesDir = errors.New("unable to find resources directory")

// Unfortunately, unlike io.ReadCloser, the zstd Decoder's Close() method
// doesn't return an error, so we need to make our own custom ReadCloser
// interface.
type ResourceReadCloser interface {
	io.Reader
	Close()
}

type bytesReadCloser struct {
	*bytes.Reader
}

func (bytesReadCloser) Close() {}

var resources struct {
	once sync.Once
	dir  string
	fsys fs.StatFS
	err  error
}

// ResourcesDir returns the path to the resources directory. The current
// directory and the two above it are searched for a resources/
// directory holding forest.json.
func ResourcesDir() (string, error) {
	resources.once.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			resources.err = err
			return
		}

		// Try CWD as well as the two directories above it
		for range 3 {
			candidate := filepath.Join(dir, "resources")
			if _, err := os.Stat(filepath.Join(candidate, "forest.json")); err == nil {
				resources.dir = candidate
				fsys, ok := os.DirFS(candidate).(fs.StatFS)
				if !ok {
					panic("FS from DirFS is not a StatFS?")
				}
				resources.fsys = fsys
				return
			}
			dir = filepath.Join(dir, "..")
		}
		resources.err = ErrNoResourcesDir
	})
	return resources.dir, resources.err
}

// LoadResource provides a ResourceReadCloser to access the specified file
// from the resources directory; if it's zstd compressed, the Reader will
// handle decompression transparently.
func LoadResource(path string) (ResourceReadCloser, error) {
	if _, err := ResourcesDir(); err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(resources.fsys, path)
	if err != nil {
		return nil, err
	}
	return decompressingReader(path, b)
}

// ResourceExists returns true if the specified resource file exists.
func ResourceExists(path string) bool {
	if _, err := ResourcesDir(); err != nil {
		return false
	}
	_, err := resources.fsys.Stat(path)
	return err == nil
}

// OpenFile is the equivalent of LoadResource for an arbitrary path on
// disk.
func OpenFile(path string) (ResourceReadCloser, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decompressingReader(path, b)
}

func decompressingReader(path string, b []byte) (ResourceReadCloser, error) {
	br := bytesReadCloser{bytes.NewReader(b)}
	if filepath.Ext(path) == ".zst" {
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}
		return zr, nil
	}
	return br, nil
}
