// cmd/rotorfield/config.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotorfield/rotorfield/log"
	"github.com/rotorfield/rotorfield/platform"
	"github.com/rotorfield/rotorfield/scene"
)

const CurrentConfigVersion = 1

type Config struct {
	platform.Config

	Version int

	FullBright bool
	ShowHUD    bool

	// ForestFile overrides the forest resource if non-empty.
	ForestFile string
	// Seed and TreeCount are used if no forest file is available.
	Seed      int64
	TreeCount int
}

func configFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}

	dir = filepath.Join(dir, "Rotorfield")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		lg.Errorf("%s: unable to make directory for config file: %v", dir, err)
	}

	return filepath.Join(dir, "config.json")
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func (c *Config) Save(lg *log.Logger) error {
	fn := configFilePath(lg)
	lg.Infof("Saving config to: %s", fn)
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// SaveIfChanged records the current window placement and writes the
// config if it differs from what is on disk. It returns true if the file
// was written.
func (c *Config) SaveIfChanged(p platform.Platform, lg *log.Logger) bool {
	if p != nil && !p.IsFullScreen() {
		c.InitialWindowSize = p.WindowSize()
		c.InitialWindowPosition = p.WindowPosition()
	}
	if p != nil {
		c.StartInFullScreen = p.IsFullScreen()
	}

	fn := configFilePath(lg)
	onDisk, err := os.ReadFile(fn)
	if err != nil && !os.IsNotExist(err) {
		lg.Warnf("%s: unable to read config file: %v", fn, err)
	}

	var b strings.Builder
	if err := c.Encode(&b); err != nil {
		lg.Errorf("%s: unable to encode config: %v", fn, err)
		return false
	}
	if b.String() == string(onDisk) {
		return false
	}

	if err := c.Save(lg); err != nil {
		lg.Errorf("%s: unable to save config: %v", fn, err)
		return false
	}
	return true
}

func getDefaultConfig() *Config {
	return &Config{
		Config: platform.Config{
			InitialWindowPosition: [2]int{100, 100},
			EnableMSAA:            true,
		},
		Version:   CurrentConfigVersion,
		Seed:      scene.DefaultSeed,
		TreeCount: scene.DefaultTreeCount,
	}
}

// LoadOrMakeDefaultConfig returns the saved config or, if there is none,
// the default one. A config that can't be decoded is replaced with the
// default and the decoding error is returned along with it.
func LoadOrMakeDefaultConfig(lg *log.Logger) (config *Config, configErr error) {
	fn := configFilePath(lg)
	lg.Infof("Loading config from: %s", fn)

	config = getDefaultConfig()

	contents, err := os.ReadFile(fn)
	if err != nil {
		if !os.IsNotExist(err) {
			configErr = err
		}
		return
	}

	loaded := getDefaultConfig()
	if err := json.NewDecoder(bytes.NewReader(contents)).Decode(loaded); err != nil {
		configErr = fmt.Errorf("%s: %w", fn, err)
		return
	}
	config = loaded

	if config.TreeCount <= 0 {
		config.TreeCount = scene.DefaultTreeCount
	}
	config.Version = CurrentConfigVersion

	return
}
