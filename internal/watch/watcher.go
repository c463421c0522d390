// Package watch rebuilds a theme when themelet sources change.
//
// A Watcher monitors one or more source roots (each themelet's src tree)
// and invokes a callback once the tree has been quiet for the debounce
// period. Events inside the window are coalesced into a single callback.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/lfrtheme/themelet/internal/output"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// defaultIgnores are editor, VCS and OS noise. Patterns are matched against
// paths relative to the root that produced the event.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// Config holds the parameters for a Watcher.
type Config struct {
	// Roots are the directories watched recursively. Roots that do not
	// exist are skipped.
	Roots []string

	// Patterns select the files that trigger a callback, relative to their
	// root. An empty slice accepts every non-ignored file.
	Patterns []string

	// Ignore are additional patterns merged with the built-in ignores.
	Ignore []string

	// Debounce is the quiet period after the last event before the callback fires.
	Debounce time.Duration

	// OnChange receives the sorted absolute paths changed since the last call.
	OnChange func(ctx context.Context, changed []string) error
}

// Watcher monitors source roots and fires a debounced callback on change.
// Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	roots    []string
	ignores  []string
	debounce time.Duration
	started  atomic.Bool
}

// New creates a Watcher and registers every directory below the roots.
func New(cfg Config) (*Watcher, error) {
	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	roots := make([]string, 0, len(cfg.Roots))
	for _, root := range cfg.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve root %q: %w", root, err)
		}
		roots = append(roots, abs)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		roots:    roots,
		ignores:  ignores,
		debounce: debounce,
	}

	for _, root := range roots {
		if err := w.addDirectories(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Watched returns the directories currently registered with the watcher.
func (w *Watcher) Watched() []string {
	list := w.fsw.WatchList()
	slices.Sort(list)
	return list
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
// Callbacks never overlap; events arriving during a callback are delivered
// in the next one.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			output.Debug("rebuild still running, deferring changes")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				output.Error("rebuild failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			output.Debug("closing watcher", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			root, rel, ok := w.relative(evt.Name)
			if !ok || w.isIgnored(rel) {
				continue
			}

			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(root, evt.Name)
			}

			if !w.matchesPatterns(rel) {
				continue
			}

			output.Debug("source changed", "path", evt.Name, "op", evt.Op.String())

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			output.Warn("watch error", "error", err)
		}
	}
}

// addDirectories registers root and every non-ignored directory below it.
// A missing root is skipped.
func (w *Watcher) addDirectories(root string) error {
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		output.Debug("watch root does not exist, skipping", "root", root)
		return nil
	}

	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			output.Warn("skipping inaccessible path", "path", path, "error", walkDirErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk %s: %w", root, walkErr)
	}
	return nil
}

// maybeAddDir watches a directory created after startup.
func (w *Watcher) maybeAddDir(root, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}
	if err := w.addDirectories(path); err != nil {
		output.Warn("watching new directory failed", "path", path, "error", err)
	}
}

// relative finds the root containing path and returns path relative to it.
func (w *Watcher) relative(path string) (root, rel string, ok bool) {
	for _, r := range w.roots {
		if path != r && !strings.HasPrefix(path, r+string(filepath.Separator)) {
			continue
		}
		rel, err := filepath.Rel(r, path)
		if err != nil {
			continue
		}
		return r, rel, true
	}
	return "", "", false
}

// isIgnored reports whether rel matches an ignore pattern.
func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// matchesPatterns reports whether rel matches a watch pattern. With no
// patterns every path matches.
func (w *Watcher) matchesPatterns(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.cfg.Patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// validatePatterns checks that every pattern is a valid doublestar glob.
func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q", label, pat)
		}
	}
	return nil
}
