package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	calls   [][]string
	fired   chan struct{}
	onceErr error
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.fired <- struct{}{}
	return r.onceErr
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func startWatcher(t *testing.T, cfg Config) context.CancelFunc {
	t.Helper()

	w, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return cancel
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcher_DebouncesEvents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Config{
		Roots:    []string{root},
		Debounce: 150 * time.Millisecond,
		OnChange: rec.onChange,
	})

	for _, name := range []string{"a.scss", "b.scss", "c.scss"} {
		writeFile(t, filepath.Join(root, name), "a { color: red; }")
		time.Sleep(10 * time.Millisecond)
	}

	rec.wait(t)
	time.Sleep(300 * time.Millisecond)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	for _, name := range []string{"a.scss", "b.scss", "c.scss"} {
		assert.Contains(t, calls[0], filepath.Join(root, name))
	}
	assert.IsIncreasing(t, calls[0])
}

func TestWatcher_MultipleRoots(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Config{
		Roots:    []string{first, second},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
	})

	writeFile(t, filepath.Join(second, "js", "main.js"), "void 0;")

	rec.wait(t)
	calls := rec.snapshot()
	require.NotEmpty(t, calls)
	assert.Contains(t, calls[0], filepath.Join(second, "js", "main.js"))
}

func TestWatcher_NestedDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css", "lib"), 0o755))

	w, err := New(Config{Roots: []string{root}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fsw.Close() })

	assert.Contains(t, w.Watched(), filepath.Join(root, "css", "lib"))
	assert.Contains(t, w.Watched(), root)
}

func TestWatcher_PatternFiltering(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Config{
		Roots:    []string{root},
		Patterns: []string{"**/*.scss"},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
	})

	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	writeFile(t, filepath.Join(root, "_custom.scss"), "a { color: red; }")
	rec.wait(t)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{filepath.Join(root, "_custom.scss")}, calls[0])
}

func TestWatcher_IgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Config{
		Roots:    []string{root},
		Ignore:   []string{"**/*.map"},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
	})

	writeFile(t, filepath.Join(root, "main.css.map"), "{}")
	writeFile(t, filepath.Join(root, "main.css.swp"), "")
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestWatcher_CallbackErrorKeepsRunning(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rec := newRecorder()
	rec.onceErr = assert.AnError
	startWatcher(t, Config{
		Roots:    []string{root},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
	})

	writeFile(t, filepath.Join(root, "a.css"), "a {}")
	rec.wait(t)

	writeFile(t, filepath.Join(root, "b.css"), "b {}")
	rec.wait(t)

	assert.GreaterOrEqual(t, len(rec.snapshot()), 2)
}

func TestWatcher_MissingRootSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w, err := New(Config{Roots: []string{root, filepath.Join(root, "absent")}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fsw.Close() })

	assert.Equal(t, []string{root}, w.Watched())
}

func TestWatcher_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Roots: []string{t.TempDir()}, Patterns: []string{"[unclosed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid watch pattern")

	_, err = New(Config{Roots: []string{t.TempDir()}, Ignore: []string{"[unclosed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}

func TestWatcher_RunTwice(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Roots: []string{t.TempDir()}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))

	err = w.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	w := &Watcher{ignores: defaultIgnores}

	tests := []struct {
		rel  string
		want bool
	}{
		{".git/HEAD", true},
		{"css/.git/config", true},
		{"css/_custom.scss.swp", true},
		{"css/_custom.scss~", true},
		{"images/.DS_Store", true},
		{"css/_custom.scss", false},
		{"js/main.js", false},
		{"node_modules/x/src/css/a.css", false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, w.isIgnored(tt.rel))
		})
	}
}

func TestRelative(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	a := filepath.Join(base, "node_modules", "a", "src")
	ab := filepath.Join(base, "node_modules", "ab", "src")
	w := &Watcher{roots: []string{a, ab}}

	root, rel, ok := w.relative(filepath.Join(ab, "css", "x.css"))
	require.True(t, ok)
	assert.Equal(t, ab, root)
	assert.Equal(t, filepath.Join("css", "x.css"), rel)

	_, _, ok = w.relative(filepath.Join(base, "node_modules", "abc", "src", "x.css"))
	assert.False(t, ok)
}
