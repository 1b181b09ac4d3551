// scene/forest.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/math"
	"github.com/rotorfield/rotorfield/rand"
	"github.com/rotorfield/rotorfield/util"
)

var ErrInvalidForest = errors.New("invalid forest")

const (
	// PondHalfSize is the half-width of the square pond at the center of
	// the map.
	PondHalfSize = 40

	DefaultTreeCount = 120
	DefaultSeed      = 1
)

// treeJSON is the on-disk representation of a tree.
type treeJSON struct {
	X     float32 `json:"x"`
	Z     float32 `json:"z"`
	Model int     `json:"model"`
}

// LoadForest reads a JSON array of trees and validates it. All problems
// are reported together.
func LoadForest(r io.Reader, name string) ([]heli.Tree, error) {
	var items []treeJSON
	if err := util.UnmarshalJSON(r, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var e util.ErrorLogger
	e.Push(name)
	trees := make([]heli.Tree, len(items))
	for i, it := range items {
		trees[i] = heli.Tree{Position: [2]float32{it.X, it.Z}, Model: heli.TreeModel(it.Model)}
	}
	ValidateForest(trees, &e)
	e.Pop()

	if err := e.Err(ErrInvalidForest); err != nil {
		return nil, err
	}
	return trees, nil
}

// ValidateForest reports trees that the flight model can't handle
// sensibly.
func ValidateForest(trees []heli.Tree, e *util.ErrorLogger) {
	if len(trees) == 0 {
		e.ErrorString("no trees")
	}
	for i, t := range trees {
		e.Push(fmt.Sprintf("tree %d", i))
		if !t.Model.Valid() {
			e.ErrorString("model %d: must be between 0 and %d", int(t.Model), heli.NumTreeModels-1)
		}
		if !math.IsFinite(t.Position[0]) || !math.IsFinite(t.Position[1]) {
			e.ErrorString("position %v is not finite", t.Position)
		} else if d := math.Length2f(t.Position); d > heli.MapRadius {
			e.ErrorString("position %v is %.1f from the center, outside the map radius %d", t.Position, d, heli.MapRadius)
		}
		e.Pop()
	}
}

// ScatterForest places n trees at seeded random positions inside the
// map. Trees are kept out of the pond and clear of the spawn point so
// that liftoff isn't blocked. A negative n gives no trees.
func ScatterForest(seed int64, n int) []heli.Tree {
	n = max(n, 0)
	r := rand.NewSeeded(seed)
	spawn := math.XZ(DefaultSpawn)
	const margin = 12 // largest collision radius plus a bit

	trees := make([]heli.Tree, 0, n)
	for len(trees) < n {
		p := [2]float32{r.Uniform(-heli.MapRadius, heli.MapRadius), r.Uniform(-heli.MapRadius, heli.MapRadius)}
		model := heli.TreeModel(r.Intn(heli.NumTreeModels))

		if math.Length2f(p) > heli.MapRadius-5 {
			continue
		}
		if math.Abs(p[0]) < PondHalfSize+2 && math.Abs(p[1]) < PondHalfSize+2 {
			continue
		}
		if math.Distance2f(p, spawn) < margin {
			continue
		}
		trees = append(trees, heli.Tree{Position: p, Model: model})
	}
	return trees
}

// ForestSource says where LoadDefaultForest found its trees.
type ForestSource int

const (
	ForestFromFile ForestSource = iota
	ForestFromResource
	ForestScattered
)

func (s ForestSource) String() string {
	return [...]string{"file", "resource", "scattered"}[s]
}

// LoadDefaultForest loads the forest from path if it's non-empty, then
// from the forest.json resource, and finally falls back to a scattered
// forest. Only an explicitly-given file that can't be read or is
// invalid, or a negative tree count, is an error.
func LoadDefaultForest(path string, seed int64, n int, lg *log.Logger) ([]heli.Tree, ForestSource, error) {
	if n < 0 {
		return nil, ForestScattered, fmt.Errorf("%w: tree count %d is negative", ErrInvalidForest, n)
	}

	if path != "" {
		r, err := util.OpenFile(path)
		if err != nil {
			return nil, ForestFromFile, err
		}
		defer r.Close()
		trees, err := LoadForest(r, path)
		if err == nil {
			lg.Info("loaded forest", slog.String("path", path), slog.Int("trees", len(trees)))
		}
		return trees, ForestFromFile, err
	}

	for _, name := range []string{"forest.json", "forest.json.zst"} {
		if !util.ResourceExists(name) {
			continue
		}
		r, err := util.LoadResource(name)
		if err != nil {
			lg.Warnf("%s: %v", name, err)
			continue
		}
		trees, err := LoadForest(r, name)
		r.Close()
		if err != nil {
			lg.Warnf("%v", err)
			continue
		}
		lg.Info("loaded forest", slog.String("resource", name), slog.Int("trees", len(trees)))
		return trees, ForestFromResource, nil
	}

	lg.Info("scattering forest", slog.Int64("seed", seed), slog.Int("trees", n))
	return ScatterForest(seed, n), ForestScattered, nil
}
