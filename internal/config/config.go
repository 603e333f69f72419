// Package config holds runtime configuration: defaults, optional TOML file
// loading, and validation. CLI flags are bound in the cli package and
// overlaid on top of file values.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// TransferMode selects how files reach the destination tree.
type TransferMode string

const (
	TransferCopy TransferMode = "copy" // Copy files, leave sources in place (default).
	TransferMove TransferMode = "move" // Move files, removing sources after a confirmed write.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by a TOML config file ([ApplyFile]), then mutated by
// CLI flags before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths.
	Sources  []string // Source directories to organize (at least one required).
	DestDir  string   // Destination root for the <year>/<month> tree.
	Excludes []string // Directory prefixes excluded from discovery.

	// Behavior flags.
	Transfer TransferMode // Default: "copy".
	Optimize bool         // Recompress JPEG/PNG after placement.
	DryRun   bool         // Preview decisions without writing.
	Watch    bool         // Keep watching sources after the initial pass.
	Workers  int          // Parallel file workers. Default: 1 (sequential).

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run environment diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// file and flag overrides are applied.
func DefaultConfig() *Config {
	return &Config{
		Transfer:  TransferCopy,
		Optimize:  false,
		DryRun:    false,
		Watch:     false,
		Workers:   1,
		Verbose:   false,
		ColorMode: ColorAuto,
		CheckOnly: false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric ranges. When not in CheckOnly
// mode, it also requires at least one source and a destination.
func (c *Config) Validate() error {
	switch c.Transfer {
	case TransferCopy, TransferMove:
		// valid
	default:
		return errors.New("invalid transfer mode (use 'copy' or 'move')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	if c.DryRun && c.Watch {
		return errors.New("--dry-run and --watch cannot be combined")
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Sources) == 0 || c.DestDir == "" {
		return errors.New("need at least one --source and a --dest directory")
	}

	for i, s := range c.Sources {
		c.Sources[i] = NormalizeDirArg(s)
	}
	c.DestDir = NormalizeDirArg(c.DestDir)
	return nil
}

// ValidatePaths ensures the resolved destination is not inside (or equal to)
// any resolved source directory. This prevents the pipeline from discovering
// its own output files. All arguments must be absolute, symlink-resolved
// paths.
func (c *Config) ValidatePaths(sourcesAbs []string, destAbs string) error {
	sep := string(filepath.Separator)
	for _, src := range sourcesAbs {
		if destAbs == src || strings.HasPrefix(destAbs+sep, src+sep) {
			return fmt.Errorf("destination must not be inside source: %s", src)
		}
	}
	return nil
}
