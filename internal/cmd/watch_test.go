package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfrtheme/themelet/internal/testutil"
)

func TestWatchRoots(t *testing.T) {
	isolate(t)
	p := testutil.NewProject(t, testutil.PackageJSON("my-theme", "7.0", "zeta", "@acme/alpha"))

	roots, err := watchRoots(&GlobalConfig{}, p.Dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(p.Dir, "node_modules", "zeta", "src"),
		filepath.Join(p.Dir, "node_modules", "@acme", "alpha", "src"),
	}, roots)
}

func TestWatch_NoThemeletsReturns(t *testing.T) {
	isolate(t)
	p := testutil.NewProject(t, testutil.PackageJSON("bare-theme", "7.0"))

	out, err := execute(t, "watch", p.Dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Built bare-theme")
}

func TestWatch_StopsOnCancel(t *testing.T) {
	isolate(t)
	p := themeProject(t)

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"watch", p.Dir, "--no-lint"})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- root.ExecuteContext(ctx) }()

	template := filepath.Join(p.BuildDir(), "templates", "portal_normal.ftl")
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(template)
		return err == nil && strings.Contains(string(data), "themelet-b/feature/main.js")
	}, 5*time.Second, 20*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	assert.Contains(t, p.ReadBuild("templates/portal_normal.ftl"), "themelet-a/lib/util.js")
}
