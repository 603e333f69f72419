// Package cli defines the snapsort command tree: the root command runs the
// organize pipeline, with version and check subcommands alongside.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lumafold/snapsort/internal/check"
	"github.com/lumafold/snapsort/internal/config"
	"github.com/lumafold/snapsort/internal/display"
	"github.com/lumafold/snapsort/internal/logging"
	"github.com/lumafold/snapsort/internal/pipeline"
)

// version is injected by Execute; builds without ldflags report "dev".
var version = "dev"

// ErrFilesFailed signals a completed run with per-file failures, so main can
// exit non-zero without cobra printing a usage screen.
var ErrFilesFailed = errors.New("some files failed")

var (
	flagSources  []string
	flagDest     string
	flagExcludes []string
	flagMove     bool
	flagOptimize bool
	flagDryRun   bool
	flagWatch    bool
	flagWorkers  int
	flagVerbose  bool
	flagColor    string
	flagNoColor  bool
	flagLogFile  string
	flagConfig   string
)

var rootCmd = &cobra.Command{
	Use:   "snapsort",
	Short: "Organize photos into year/month folders",
	Long: `Snapsort classifies image files into <dest>/<year>/<month>/ folders by
capture date, skipping exact duplicates and renaming content collisions.

Capture date comes from EXIF metadata when present, then from date-like
filename patterns, then from the file modification time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringArrayVarP(&flagSources, "source", "s", nil, "source folder to scan (repeatable)")
	f.StringVarP(&flagDest, "dest", "d", "", "destination root folder")
	f.StringArrayVarP(&flagExcludes, "exclude", "e", nil, "folder to skip during scanning (repeatable)")
	f.BoolVarP(&flagMove, "move", "m", false, "move files instead of copying")
	f.BoolVarP(&flagOptimize, "optimize", "o", false, "recompress JPEG/PNG after placement")
	f.BoolVar(&flagDryRun, "dry-run", false, "report decisions without writing")
	f.BoolVarP(&flagWatch, "watch", "w", false, "keep watching sources after the initial pass")
	f.IntVarP(&flagWorkers, "workers", "j", 1, "parallel file workers")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	f.StringVar(&flagColor, "color", "auto", "colorize output: auto, always, never")
	f.BoolVar(&flagNoColor, "no-color", false, "shorthand for --color=never")
	f.StringVar(&flagLogFile, "log", "", "also append output to this file")
	f.StringVarP(&flagConfig, "config", "c", "", "config file (default: user config dir)")
}

// Execute runs the command tree with v as the reported version. ctx is
// threaded through to the pipeline so a cancelled signal context stops the
// run between files.
func Execute(ctx context.Context, v string) error {
	version = v
	return rootCmd.ExecuteContext(ctx)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd.Flags(), false)
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	// Resolve and validate paths before touching anything: the destination
	// must not sit inside a source, or the run would re-discover its own output.
	sourcesAbs := make([]string, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		abs, err := absPath(src)
		if err != nil {
			log.Warn("Source folder not found, skipping: %s", src)
			continue
		}
		sourcesAbs = append(sourcesAbs, abs)
	}
	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		return fmt.Errorf("cannot create destination: %s", cfg.DestDir)
	}
	destAbs, err := absPath(cfg.DestDir)
	if err != nil {
		return fmt.Errorf("cannot resolve destination: %s", cfg.DestDir)
	}
	if err := cfg.ValidatePaths(sourcesAbs, destAbs); err != nil {
		return err
	}

	if err := check.CheckEnv(cfg); err != nil {
		return err
	}

	log.Info("=== snapsort v%s ===", version)

	runner := pipeline.NewRunner(cfg, log)
	stats := runner.Run(cmd.Context())

	if cfg.Watch {
		if err := runner.Watch(cmd.Context()); err != nil {
			return err
		}
	}

	if stats.Failed > 0 {
		return ErrFilesFailed
	}
	return nil
}

// buildConfig layers defaults, the config file, and explicit flags, then
// validates the result. Flags always win over the file.
func buildConfig(f *pflag.FlagSet, checkOnly bool) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.CheckOnly = checkOnly

	path := flagConfig
	explicit := f.Changed("config")
	if !explicit {
		var err error
		if path, err = config.DefaultFilePath(); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := config.ApplyFile(cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	if f.Changed("source") {
		cfg.Sources = flagSources
	}
	if f.Changed("dest") {
		cfg.DestDir = flagDest
	}
	if f.Changed("exclude") {
		cfg.Excludes = flagExcludes
	}
	if f.Changed("move") {
		cfg.Transfer = config.TransferCopy
		if flagMove {
			cfg.Transfer = config.TransferMove
		}
	}
	if f.Changed("optimize") {
		cfg.Optimize = flagOptimize
	}
	if f.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if f.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	if f.Changed("color") {
		cfg.ColorMode = config.ColorMode(flagColor)
	}
	if flagNoColor {
		cfg.ColorMode = config.ColorNever
	}
	if f.Changed("log") {
		cfg.LogFile = flagLogFile
	}
	cfg.DryRun = flagDryRun
	cfg.Watch = flagWatch

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of source vs destination hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
