package config

// This file implements the optional TOML config file layer. File values sit
// between built-in defaults and CLI flags: a field set in the file wins over
// the default, and a flag passed on the command line wins over the file.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the subset of Config that may be set from a TOML file.
// Pointer fields distinguish "absent" from zero values so the overlay only
// touches keys the user actually wrote.
type fileConfig struct {
	Sources  []string `toml:"sources"`
	Dest     *string  `toml:"dest"`
	Excludes []string `toml:"excludes"`
	Transfer *string  `toml:"transfer"`
	Optimize *bool    `toml:"optimize"`
	Workers  *int     `toml:"workers"`
	Verbose  *bool    `toml:"verbose"`
	Color    *string  `toml:"color"`
	LogFile  *string  `toml:"log_file"`
}

// DefaultFilePath returns the conventional config file location,
// $XDG_CONFIG_HOME/snapsort/config.toml (or ~/.config fallback).
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "snapsort", "config.toml"), nil
}

// ApplyFile overlays values from the TOML file at path onto cfg. A missing
// file is not an error when explicit is false (the default location simply
// may not exist); when explicit is true the caller named the file and a
// missing or unreadable file is reported.
func ApplyFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if len(fc.Sources) > 0 {
		cfg.Sources = fc.Sources
	}
	if fc.Dest != nil {
		cfg.DestDir = *fc.Dest
	}
	if len(fc.Excludes) > 0 {
		cfg.Excludes = fc.Excludes
	}
	if fc.Transfer != nil {
		cfg.Transfer = TransferMode(*fc.Transfer)
	}
	if fc.Optimize != nil {
		cfg.Optimize = *fc.Optimize
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Color != nil {
		cfg.ColorMode = ColorMode(*fc.Color)
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	return nil
}
