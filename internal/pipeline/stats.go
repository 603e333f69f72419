package pipeline

import "github.com/lumafold/snapsort/internal/place"

// RunStats aggregates per-file outcomes across a run. It is an explicit
// aggregator: workers reduce into local copies which are merged at the end,
// never a shared global.
type RunStats struct {
	Total   int // files discovered
	Current int // files whose processing has started

	New       int // placed at slot 0
	Skipped   int // duplicates, zero writes
	Renamed   int // placed under a disambiguated name
	Failed    int // per-file errors; never folded into Skipped
	Optimized int // files shrunk by the optimize step

	TotalBytes    int64 // bytes of all processed source files
	OptimizeSaved int64 // bytes saved by recompression
}

// Placed returns the number of files written this run.
func (s *RunStats) Placed() int { return s.New + s.Renamed }

// Record tallies one placement outcome.
func (s *RunStats) Record(out place.Outcome) {
	s.TotalBytes += out.Bytes
	switch out.Kind {
	case place.NewFile:
		s.New++
	case place.SkippedDuplicate:
		s.Skipped++
	case place.RenamedCopy:
		s.Renamed++
	}
}

// Merge folds a worker's local outcome counters into s. Total and Current
// describe the whole run and are managed by the runner, not merged.
func (s *RunStats) Merge(o RunStats) {
	s.New += o.New
	s.Skipped += o.Skipped
	s.Renamed += o.Renamed
	s.Failed += o.Failed
	s.Optimized += o.Optimized
	s.TotalBytes += o.TotalBytes
	s.OptimizeSaved += o.OptimizeSaved
}
