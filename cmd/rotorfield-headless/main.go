// cmd/rotorfield-headless/main.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// rotorfield-headless flies control scripts through the simulation
// without a window. Each script runs in its own copy of the world; the
// results can be recorded, checked against earlier recordings, or dumped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/scene"
	"github.com/rotorfield/rotorfield/util"

	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

var (
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	forestFile = flag.String("forest", "", "JSON file with tree positions (may be zstd compressed)")
	seed       = flag.Int64("seed", scene.DefaultSeed, "random seed for the scattered forest")
	treeCount  = flag.Int("trees", scene.DefaultTreeCount, "number of trees in the scattered forest")
	recordDir  = flag.String("record", "", "directory to write a recording of each script to")
	verifyDir  = flag.String("verify", "", "directory of recordings to check each script against")
	dump       = flag.Bool("dump", false, "dump the final helicopter state of each script")
	lint       = flag.Bool("lint", false, "check the forest and scripts for errors and exit")
	parallel   = flag.Int("j", 0, "maximum number of scripts to fly at once (0: no limit)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: rotorfield-headless [flags] script.json...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *recordDir != "" && *verifyDir != "" {
		fmt.Fprintln(os.Stderr, "-record and -verify may not both be given")
		os.Exit(2)
	}

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	// Report every problem with the inputs before flying anything.
	var e util.ErrorLogger
	trees, source, err := scene.LoadDefaultForest(*forestFile, *seed, *treeCount, lg)
	if err != nil {
		e.Error(err)
	}
	var scripts []*scene.Script
	for _, path := range flag.Args() {
		if s, err := scene.LoadScriptFile(path); err != nil {
			e.Error(err)
		} else {
			scripts = append(scripts, s)
		}
	}
	if e.HaveErrors() {
		e.PrintErrors(lg)
		os.Exit(1)
	}
	if *lint {
		fmt.Printf("%s forest: %d trees; %d scripts ok\n", source, len(trees), len(scripts))
		return
	}

	world := scene.NewWorld(heli.NewForest(trees), lg)
	if source == scene.ForestScattered {
		world.Seed = *seed
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	sums, err := flyAll(ctx, world, scripts, lg)

	for _, sum := range sums {
		if sum == nil {
			continue
		}
		lg.Info("flight complete", slog.Any("summary", *sum))
		if *dump {
			godump.Dump(sum.Final)
		}
	}
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitStatus(err))
	}
}

// exitStatus maps the error from flyAll to the process exit status:
// 130 if the run was interrupted, 3 if a flight didn't match its
// recording and 1 otherwise.
func exitStatus(err error) int {
	switch {
	case err == nil:
		return 0
	case util.IsAny(err, context.Canceled, context.DeadlineExceeded):
		return 130
	case errors.Is(err, scene.ErrRecordingMismatch):
		return 3
	default:
		return 1
	}
}

// flyAll flies each script in its own clone of w. The returned slice is
// parallel to scripts; entries for scripts that did not finish are nil.
func flyAll(ctx context.Context, w *scene.World, scripts []*scene.Script, lg *log.Logger) ([]*scene.Summary, error) {
	eg, ctx := errgroup.WithContext(ctx)
	if *parallel > 0 {
		eg.SetLimit(*parallel)
	}

	var mu sync.Mutex
	sums := make([]*scene.Summary, len(scripts))

	for i, s := range scripts {
		eg.Go(func() error {
			slg := lg.With(slog.String("script", s.Name))
			sw := w.Clone().WithLogger(slg)

			var sum scene.Summary
			var err error
			switch {
			case *recordDir != "":
				sum, err = flyAndRecord(ctx, sw, s, recordingPath(*recordDir, s), slg)
			case *verifyDir != "":
				sum, err = verify(ctx, sw, s, recordingPath(*verifyDir, s))
			default:
				sum, err = scene.Fly(ctx, sw, s, nil)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}

			mu.Lock()
			sums[i] = &sum
			mu.Unlock()
			return nil
		})
	}

	return sums, eg.Wait()
}

func recordingPath(dir string, s *scene.Script) string {
	name := strings.TrimSuffix(filepath.Base(s.Name), filepath.Ext(s.Name))
	return filepath.Join(dir, name+".rec")
}

func flyAndRecord(ctx context.Context, w *scene.World, s *scene.Script, path string, lg *log.Logger) (scene.Summary, error) {
	f, err := os.Create(path)
	if err != nil {
		return scene.Summary{}, err
	}
	defer f.Close()

	rec, err := scene.NewRecorder(f, scene.HeaderFor(w, s))
	if err != nil {
		return scene.Summary{}, err
	}
	sum, err := scene.Fly(ctx, w, s, rec)
	if cerr := rec.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		lg.Info("recorded flight", slog.String("path", path), slog.Int("frames", rec.Frames()))
	}
	return sum, err
}

func verify(ctx context.Context, w *scene.World, s *scene.Script, path string) (scene.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return scene.Summary{}, err
	}
	defer f.Close()

	hdr, frames, err := scene.ReadRecording(f)
	if err != nil {
		return scene.Summary{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := scene.VerifyRecording(w, s, hdr, frames); err != nil {
		return scene.Summary{}, err
	}
	return scene.Fly(ctx, w, s, nil)
}
