// Package check provides environment diagnostics (--check mode) and
// pre-run validation (CheckEnv) for sources, destination, and config file.
package check

import (
	"errors"
	"fmt"
	"os"

	"github.com/lumafold/snapsort/internal/config"
	"github.com/lumafold/snapsort/internal/term"
)

// Sentinel errors returned by CheckEnv when the environment cannot support a run.
var (
	ErrNoReadableSource = errors.New("no readable source folder")
	ErrDestNotWritable  = errors.New("destination folder is not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints the state of the config
// file, each source folder, the destination, and terminal color support.
// This is informational only — it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== Environment Check ===")

	checkConfigFile(log)
	checkSources(cfg, log)
	checkDest(cfg, log)
	checkTerminal(log)
}

// checkConfigFile reports whether the default config file exists and parses.
func checkConfigFile(log Logger) {
	path, err := config.DefaultFilePath()
	if err != nil {
		log.Warn("Cannot determine config dir: %v", err)
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Info("No config file (%s)", path)
		return
	}
	probe := config.DefaultConfig()
	if err := config.ApplyFile(probe, path, true); err != nil {
		log.Error("Config file broken: %v", err)
		return
	}
	log.Success("Config file OK: %s", path)
}

// checkSources reports readability of every configured source folder.
func checkSources(cfg *config.Config, log Logger) {
	if len(cfg.Sources) == 0 {
		log.Info("No source folders configured")
		return
	}
	for _, src := range cfg.Sources {
		info, err := os.Stat(src)
		switch {
		case err != nil:
			log.Error("Source missing: %s", src)
		case !info.IsDir():
			log.Error("Source is not a folder: %s", src)
		case !dirReadable(src):
			log.Error("Source not readable: %s", src)
		default:
			log.Success("Source OK: %s", src)
		}
	}
}

// checkDest verifies the destination exists (or can be created) and accepts writes.
func checkDest(cfg *config.Config, log Logger) {
	if cfg.DestDir == "" {
		log.Info("No destination configured")
		return
	}
	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		log.Error("Cannot create destination: %v", err)
		return
	}
	if err := writeProbe(cfg.DestDir); err != nil {
		log.Error("Destination not writable: %v", err)
		return
	}
	log.Success("Destination OK: %s", cfg.DestDir)
}

// checkTerminal reports whether colored output is active on stdout.
func checkTerminal(log Logger) {
	if term.IsTerminal(os.Stdout) {
		log.Success("stdout is a terminal, colors available")
	} else {
		log.Info("stdout is not a terminal, colors off")
	}
}

// CheckEnv is the pre-run validation: at least one source must be a readable
// folder and the destination must accept writes. Returns a sentinel error
// (wrapped with the offending path) on failure.
func CheckEnv(cfg *config.Config) error {
	readable := 0
	for _, src := range cfg.Sources {
		if info, err := os.Stat(src); err == nil && info.IsDir() && dirReadable(src) {
			readable++
		}
	}
	if readable == 0 {
		return ErrNoReadableSource
	}

	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDestNotWritable, cfg.DestDir, err)
	}
	if err := writeProbe(cfg.DestDir); err != nil {
		return fmt.Errorf("%w: %s", ErrDestNotWritable, cfg.DestDir)
	}
	return nil
}

// --- internal helpers ---

// dirReadable returns true if the directory can be opened for listing.
func dirReadable(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// writeProbe creates and removes a throwaway file to confirm write access.
func writeProbe(dir string) error {
	f, err := os.CreateTemp(dir, ".snapsort-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
