package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay gives writers (camera imports, network copies) time to finish
// a file before it is picked up. Every further event on the same path
// restarts the delay.
const settleDelay = 500 * time.Millisecond

// Watch keeps organizing files that appear under the sources until ctx is
// cancelled. New files flow through the same decider and digest cache as
// the initial pass, so placement decisions stay consistent within the run.
func (r *Runner) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	excludeAbs := absAll(r.cfg.Excludes)
	for _, source := range r.cfg.Sources {
		if err := addRecursive(watcher, source, excludeAbs); err != nil {
			r.log.Warn("Cannot watch %s: %v", source, err)
		}
	}
	r.log.Info("Watching %d source(s) for new files (interrupt to stop)", len(r.cfg.Sources))

	settled := make(chan string, 64)
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	var ws RunStats
	processed := 0
	defer func() {
		r.log.Info("Watch done: %d new, %d renamed, %d duplicates skipped, %d failed",
			ws.New, ws.Renamed, ws.Skipped, ws.Failed)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldHandleEvent(ev.Op) {
				continue
			}
			if fi, serr := os.Stat(ev.Name); serr == nil && fi.IsDir() {
				if ev.Op.Has(fsnotify.Create) && !isExcluded(ev.Name, excludeAbs) {
					_ = addRecursive(watcher, ev.Name, excludeAbs)
				}
				continue
			}
			if !IsImage(ev.Name) || isExcluded(ev.Name, excludeAbs) ||
				strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}

			mu.Lock()
			if t, exists := timers[ev.Name]; exists {
				t.Reset(settleDelay)
			} else {
				name := ev.Name
				timers[name] = time.AfterFunc(settleDelay, func() {
					mu.Lock()
					delete(timers, name)
					mu.Unlock()
					select {
					case settled <- name:
					case <-ctx.Done():
					}
				})
			}
			mu.Unlock()

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("Watcher error: %v", werr)

		case path := <-settled:
			processed++
			r.processFile(path, processed, processed, &ws)
		}
	}
}

// shouldHandleEvent reports whether op describes a file appearing or
// gaining content. Removes, renames-away, and chmods are ignored.
func shouldHandleEvent(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write)
}

// addRecursive registers root and every non-hidden, non-excluded
// subdirectory with the watcher. fsnotify watches are not recursive by
// themselves.
func addRecursive(w *fsnotify.Watcher, root string, excludeAbs []string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if isExcluded(path, excludeAbs) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func absAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			out = append(out, abs)
		}
	}
	return out
}
