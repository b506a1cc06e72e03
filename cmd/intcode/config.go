package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/emulator"
)

// DEFAULT_CONFIG is loaded from the working directory when no --config is given.
const DEFAULT_CONFIG = "intcode.toml"

// DEFAULT_TARGET is the gravity assist output searched for by default.
const DEFAULT_TARGET = 19690720

// Config is the driver configuration file.
type Config struct {
	Verbose bool         `toml:"verbose"`
	Limit   int          `toml:"limit"`
	Search  SearchConfig `toml:"search"`
	Patch   PatchConfig  `toml:"patch"`
}

// SearchConfig configures the noun and verb search.
type SearchConfig struct {
	Target int64 `toml:"target"`
	Range  int64 `toml:"range"`
}

// PatchConfig lists ADDR=EXPR patches applied before every run.
type PatchConfig struct {
	Set []string `toml:"set"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Target: DEFAULT_TARGET,
			Range:  emulator.SEARCH_RANGE,
		},
	}
}

// LoadConfig reads a TOML configuration file over the defaults. A missing
// file is only an error when the path was given explicitly.
func LoadConfig(path string, explicit bool) (cfg *Config, err error) {
	cfg = DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
			return
		}
		cfg = nil
		err = fmt.Errorf("cannot read %s: %w", path, err)
		return
	}

	err = toml.Unmarshal(data, cfg)
	if err != nil {
		cfg = nil
		err = fmt.Errorf("parse error in %s: %w", path, err)
		return
	}

	return
}
