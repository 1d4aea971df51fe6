package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/docstyle/internal/logging"
)

// DefaultDebounce is how long Watch waits after the last relevant change
// before linting again.
const DefaultDebounce = 300 * time.Millisecond

// Watch lints once, then again whenever Markdown files under opts.Paths are
// written, created, removed or renamed, until ctx is cancelled. Bursts of
// events closer together than debounce collapse into a single run. report is
// called with the outcome of every run from the calling goroutine.
//
// Watch returns nil when ctx is cancelled. A run cut short by cancellation
// is not reported.
func (r *Runner) Watch(
	ctx context.Context,
	opts Options,
	debounce time.Duration,
	report func(*Result, error),
) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	targets, err := resolveWatchTargets(opts)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	logger := logging.FromContext(ctx)
	for _, dir := range targets.dirs {
		targets.addTree(watcher, dir, logger)
	}
	for _, dir := range targets.fileParents() {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("watch add failed", logging.FieldPath, dir, logging.FieldError, err)
		}
	}

	report(r.Run(ctx, opts))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets.handle(watcher, ev, logger) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			result, err := r.Run(ctx, opts)
			if ctx.Err() != nil {
				return nil
			}
			report(result, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)
		}
	}
}

// watchTargets records what Watch observes: whole directory trees and
// individually named files.
type watchTargets struct {
	m     matcher
	dirs  []string
	files map[string]bool
}

func resolveWatchTargets(opts Options) (*watchTargets, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	targets := &watchTargets{
		m:     newMatcher(workDir, opts),
		files: map[string]bool{},
	}
	for _, input := range opts.effectivePaths() {
		absPath, info, err := statInput(workDir, input)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			targets.dirs = append(targets.dirs, absPath)
		} else {
			targets.files[absPath] = true
		}
	}
	slices.Sort(targets.dirs)
	targets.dirs = slices.Compact(targets.dirs)

	return targets, nil
}

func (t *watchTargets) fileParents() []string {
	parents := make([]string, 0, len(t.files))
	for file := range t.files {
		parents = append(parents, filepath.Dir(file))
	}
	slices.Sort(parents)
	return slices.Compact(parents)
}

// addTree watches root and every directory below it that discovery would
// descend into.
func (t *watchTargets) addTree(watcher *fsnotify.Watcher, root string, logger *log.Logger) {
	_ = filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.IsDir() {
			return nil //nolint:nilerr // unreadable entries are not watched
		}
		if p != root && (strings.HasPrefix(entry.Name(), ".") || t.m.excluded(p)) {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			logger.Warn("watch add failed", logging.FieldPath, p, logging.FieldError, err)
		}
		return nil
	})
}

// handle reacts to a filesystem event and reports whether it should
// trigger a new run. New directories inside a watched tree are watched too,
// and trigger a run since they may arrive with files already inside.
func (t *watchTargets) handle(watcher *fsnotify.Watcher, ev fsnotify.Event, logger *log.Logger) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	path := filepath.Clean(ev.Name)
	if ev.Has(fsnotify.Create) {
		if root, ok := t.treeOf(path); ok && !hiddenBelow(root, path) && !t.m.excluded(path) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				t.addTree(watcher, path, logger)
				return true
			}
		}
	}

	if !t.relevant(path) {
		return false
	}
	logger.Debug("change detected", logging.FieldPath, path, logging.FieldEvent, ev.Op.String())
	return true
}

// relevant reports whether a change to path can alter the lint result.
func (t *watchTargets) relevant(path string) bool {
	if t.files[path] {
		return true
	}
	root, ok := t.treeOf(path)
	if !ok || hiddenBelow(root, path) {
		return false
	}
	return t.m.matchFile(path)
}

func (t *watchTargets) treeOf(path string) (string, bool) {
	for _, dir := range t.dirs {
		rel, err := filepath.Rel(dir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return dir, true
		}
	}
	return "", false
}

// hiddenBelow reports whether any element of path below root starts with a dot.
func hiddenBelow(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	return slices.ContainsFunc(strings.Split(filepath.ToSlash(rel), "/"), func(part string) bool {
		return strings.HasPrefix(part, ".")
	})
}
