// Package pipeline orchestrates file discovery, per-file placement, and
// batch summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumafold/snapsort/internal/config"
	"github.com/lumafold/snapsort/internal/display"
	"github.com/lumafold/snapsort/internal/exifdate"
	"github.com/lumafold/snapsort/internal/hash"
	"github.com/lumafold/snapsort/internal/logging"
	"github.com/lumafold/snapsort/internal/naming"
	"github.com/lumafold/snapsort/internal/optimize"
	"github.com/lumafold/snapsort/internal/place"
)

// Runner holds the per-run collaborators: date resolver, digest cache,
// placement decider, and the report tree. One Runner serves the initial
// batch pass and, when enabled, the subsequent watch loop, so digests
// computed early stay usable throughout.
type Runner struct {
	cfg      *config.Config
	log      *logging.Logger
	resolver *exifdate.Resolver
	decider  *place.Decider

	treeMu sync.Mutex
	tree   *display.FileTree
}

// NewRunner wires up a Runner from the validated run configuration.
func NewRunner(cfg *config.Config, log *logging.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		log:      log,
		resolver: exifdate.NewResolver(),
		decider:  place.New(cfg.Transfer == config.TransferMove, cfg.DryRun, hash.NewCache()),
		tree:     display.NewFileTree(),
	}
}

// Run is the top-level batch entry point. It discovers files across all
// sources, processes each one, and returns aggregate stats. Cancellation is
// checked between whole files only: an in-flight file always completes its
// place-or-skip decision.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	return NewRunner(cfg, log).Run(ctx)
}

// Run executes one batch pass over the configured sources.
func (r *Runner) Run(ctx context.Context) RunStats {
	var stats RunStats

	files, missing, err := Discover(r.cfg.Sources, r.cfg.Excludes)
	for _, m := range missing {
		r.log.Warn("Source folder not found, skipping: %s", m)
	}
	if err != nil {
		r.log.Error("File discovery failed: %v", err)
		return stats
	}

	stats.Total = len(files)
	r.logBatchHeader(&stats)

	start := time.Now()
	if r.cfg.Workers > 1 {
		r.runParallel(ctx, files, &stats)
	} else {
		for i, path := range files {
			stats.Current = i + 1
			if ctx.Err() != nil {
				r.log.Warn("Interrupted")
				break
			}
			r.processFile(path, stats.Current, stats.Total, &stats)
		}
	}

	r.logSummary(&stats, time.Since(start))
	return stats
}

// runParallel fans files out to cfg.Workers goroutines. Each worker reduces
// into a local RunStats that is merged at the end; decisions sharing a
// destination key are serialized inside the decider. Cancellation stops the
// feeder, so started files still finish.
func (r *Runner) runParallel(ctx context.Context, files []string, stats *RunStats) {
	jobs := make(chan string)
	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case <-ctx.Done():
				r.log.Warn("Interrupted")
				return
			case jobs <- path:
			}
		}
	}()

	var mu sync.Mutex
	var started atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local RunStats
			for path := range jobs {
				n := int(started.Add(1))
				r.processFile(path, n, stats.Total, &local)
			}
			mu.Lock()
			stats.Merge(local)
			mu.Unlock()
		}()
	}
	wg.Wait()
	stats.Current = int(started.Load())
}

// processFile handles one image: resolve date → build candidate slots →
// decide placement → optional optimize. Failures are logged and tallied,
// never fatal to the run.
func (r *Runner) processFile(path string, current, total int, stats *RunStats) {
	basename := filepath.Base(path)
	r.log.Info("[%d/%d] %s", current, total, basename)

	date, source := r.resolver.Resolve(path)
	r.log.Debug(r.cfg.Verbose, "  Capture date %s (from %s)", date, source)

	slots := naming.Candidates(r.cfg.DestDir, date, basename)
	out, err := r.decider.Process(path, slots)
	if err != nil {
		r.log.Error("  %v", err)
		stats.Failed++
		return
	}
	stats.Record(out)

	rel := r.relDest(out.Path)
	switch out.Kind {
	case place.NewFile:
		if r.cfg.DryRun {
			r.log.Success("  [DRY] Would place as %s", rel)
		} else {
			r.log.Success("  Placed as %s", rel)
		}
	case place.SkippedDuplicate:
		r.log.Info("  Duplicate of %s, skipped", rel)
	case place.RenamedCopy:
		if r.cfg.DryRun {
			r.log.Success("  [DRY] Name taken, would place as %s", rel)
		} else {
			r.log.Success("  Name taken, placed as %s", rel)
		}
	}

	if out.Kind != place.SkippedDuplicate {
		r.treeMu.Lock()
		r.tree.Add(rel)
		r.treeMu.Unlock()
	}

	if out.Kind != place.SkippedDuplicate && !r.cfg.DryRun && r.cfg.Optimize && optimize.Optimizable(out.Path) {
		saved, oerr := optimize.File(out.Path)
		if oerr != nil {
			r.log.Warn("  Optimize failed: %v", oerr)
		} else if saved > 0 {
			stats.Optimized++
			stats.OptimizeSaved += saved
			r.log.Debug(r.cfg.Verbose, "  Optimized, saved %s", display.FormatBytes(saved))
		}
	}
}

// relDest returns path relative to the destination root for compact logs.
func (r *Runner) relDest(path string) string {
	rel, err := filepath.Rel(r.cfg.DestDir, path)
	if err != nil {
		return path
	}
	return rel
}

// --- Logging helpers ---

func (r *Runner) logBatchHeader(stats *RunStats) {
	r.log.Info("Found %d image files in %d source(s)", stats.Total, len(r.cfg.Sources))
	r.log.Info("Destination: %s", r.cfg.DestDir)
	r.log.Info("Mode: %s", r.cfg.Transfer)
	if r.cfg.Optimize {
		r.log.Info("Optimize: JPEG/PNG recompression after placement")
	}
	if r.cfg.Workers > 1 {
		r.log.Info("Workers: %d", r.cfg.Workers)
	}
	if len(r.cfg.Excludes) > 0 {
		r.log.Info("Excluding %d folder(s)", len(r.cfg.Excludes))
	}
	if r.cfg.DryRun {
		r.log.Warn("DRY RUN — no files will be written")
	}
	fmt.Println()
}

func (r *Runner) logSummary(stats *RunStats, elapsed time.Duration) {
	fmt.Println()
	r.log.Info("==============================")
	r.log.Info("Done: %d new, %d renamed, %d duplicates skipped, %d failed",
		stats.New, stats.Renamed, stats.Skipped, stats.Failed)
	r.log.Info("  Total files processed: %d", stats.Current)
	r.log.Info("  Total size processed: %s", display.FormatBytes(stats.TotalBytes))
	if stats.Optimized > 0 {
		r.log.Success("  Optimized %d file(s), saved %s",
			stats.Optimized, display.FormatBytes(stats.OptimizeSaved))
	}
	r.log.Info("  Time taken: %s", display.FormatDuration(elapsed))

	r.treeMu.Lock()
	placed := r.tree.Len()
	rendered := ""
	if placed > 0 {
		rendered = r.tree.Render(r.cfg.DestDir)
	}
	r.treeMu.Unlock()

	if placed > 0 {
		label := "Placed files:"
		if r.cfg.DryRun {
			label = "Files that would be placed:"
		}
		r.log.Info("%s", label)
		fmt.Print(rendered)
	}
}
