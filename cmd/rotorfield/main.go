// cmd/rotorfield/main.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// initializes the system and then runs the fixed-rate simulation and
// rendering loop until the window is closed.

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/rotorfield/rotorfield/heli"
	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/platform"
	"github.com/rotorfield/rotorfield/platform/desktop"
	"github.com/rotorfield/rotorfield/renderer"
	"github.com/rotorfield/rotorfield/renderer/opengl"
	"github.com/rotorfield/rotorfield/scene"
	"github.com/rotorfield/rotorfield/view"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/apenwarr/fixconsole"
)

var (
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	forestFile  = flag.String("forest", "", "JSON file with tree positions (may be zstd compressed)")
	seed        = flag.Int64("seed", scene.DefaultSeed, "random seed for the scattered forest")
	treeCount   = flag.Int("trees", scene.DefaultTreeCount, "number of trees in the scattered forest")
	fullBright  = flag.Bool("fullbright", false, "add a bright light above the map")
	showHUD     = flag.Bool("hud", false, "show the flight state overlay")
	fullScreen  = flag.Bool("fullscreen", false, "start in full-screen mode")
	resetConfig = flag.Bool("resetconfig", false, "ignore the saved configuration")
)

func init() {
	// OpenGL and friends require that all calls be made from the primary
	// application thread, while by default, go allows the main thread to
	// run on different hardware threads over the course of
	// execution. Therefore, we must lock the main thread at startup time.
	runtime.LockOSThread()
}

// applyFlags copies the flags given on the command line into the config;
// flags left at their defaults do not override saved settings.
func applyFlags(config *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "forest":
			config.ForestFile = *forestFile
		case "seed":
			config.Seed = *seed
		case "trees":
			config.TreeCount = *treeCount
		case "fullbright":
			config.FullBright = *fullBright
		case "hud":
			config.ShowHUD = *showHUD
		case "fullscreen":
			config.StartInFullScreen = *fullScreen
		}
	})
}

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	config, configErr := LoadOrMakeDefaultConfig(lg)
	if *resetConfig {
		config, configErr = getDefaultConfig(), nil
	}
	if configErr != nil {
		lg.Warnf("Saved configuration discarded: %v", configErr)
	}
	applyFlags(config)

	trees, source, err := scene.LoadDefaultForest(config.ForestFile, config.Seed, config.TreeCount, lg)
	if err != nil {
		lg.Errorf("%v", err)
		showFatalErrorDialog("Unable to load the forest:\n\n%v", err)
		os.Exit(1)
	}
	world := scene.NewWorld(heli.NewForest(trees), lg)
	if source == scene.ForestScattered {
		world.Seed = config.Seed
	}
	lg.Info("world ready", slog.String("forest", source.String()), slog.Int("trees", world.Forest.Len()),
		slog.Any("spawn", world.Heli.Position))

	_ = imguiInit()

	plat, err := desktop.New(&config.Config, lg)
	if err != nil {
		lg.Errorf("Unable to create application window: %v", err)
		showFatalErrorDialog("Unable to create application window: %v", err)
		os.Exit(1)
	}
	// Frames are paced by sleeping out the tick interval.
	plat.EnableVSync(false)
	imgui.CurrentStyle().ScaleAllSizes(plat.DPIScale())

	r, err := opengl.NewOpenGL2Renderer(lg)
	if err != nil {
		lg.Errorf("Unable to create renderer: %v", err)
		showFatalErrorDialog("Unable to initialize OpenGL: %v", err)
		os.Exit(1)
	}
	opengl.FontsInit(r, lg)

	v := view.New(lg)

	run(world, v, plat, r, config, lg)

	config.SaveIfChanged(plat, lg)
	r.Dispose()
	plat.Dispose()
}

// statsInterval is how often rendering statistics are logged.
const statsInterval = 10 * time.Second

func run(world *scene.World, v *view.View, plat platform.Platform, r renderer.Renderer, config *Config, lg *log.Logger) {
	lg.Info("Starting main loop")

	var stats renderer.RendererStats
	frames := 0
	lastStats := time.Now()
	frameStart := time.Now()
	phase := heli.Phase(-1)

	for {
		plat.ProcessEvents()
		kbd := plat.GetKeyboard()
		if plat.ShouldStop() || kbd.QuitRequested() {
			lg.Info("Stopping", slog.Int("tick", world.Tick))
			break
		}
		if kbd.WasPressed(platform.KeyF11) {
			plat.EnableFullScreen(!plat.IsFullScreen())
		}
		if kbd.WasPressed(platform.KeyH) {
			config.ShowHUD = !config.ShowHUD
		}

		world.Step(kbd.Controls())
		if world.Heli.Phase != phase {
			phase = world.Heli.Phase
			plat.SetWindowTitle("Rotorfield: " + phase.String())
		}

		plat.NewFrame()
		imgui.NewFrame()
		uiDrawOverlay(view.Messages(world, config.ShowHUD))
		imgui.Render()

		cb := renderer.GetCommandBuffer()
		v.Draw(world, plat.FramebufferSize(), view.Options{FullBright: config.FullBright}, cb)
		opengl.GenerateImguiCommandBuffer(cb, plat.DisplaySize(), plat.FramebufferSize(), lg)
		stats.Merge(r.RenderCommandBuffer(cb))
		renderer.ReturnCommandBuffer(cb)

		plat.PostRender()

		frames++
		if time.Since(lastStats) > statsInterval {
			lg.Debug("render stats", slog.Int("frames", frames), slog.Any("stats", stats))
			stats, frames, lastStats = renderer.RendererStats{}, 0, time.Now()
		}

		// Sleep out whatever is left of this tick.
		if elapsed := time.Since(frameStart); elapsed < scene.FrameTime {
			time.Sleep(scene.FrameTime - elapsed)
		}
		frameStart = time.Now()
	}
}
