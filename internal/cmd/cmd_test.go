package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lfrtheme/themelet/internal/testutil"
)

const (
	scssEntry = "/* inject:imports */\n/* endinject */\n"
	ftlEntry  = "<body>\n\t<!-- inject:js -->\n\t<!-- endinject -->\n</body>\n"
)

// isolate points HOME and the config path at a temporary directory and
// clears every THEMELET_* override.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("THEMELET_CONFIG", filepath.Join(home, ".themelet", "config.yaml"))
	for _, name := range []string{
		"THEMELET_BUILD_DIR",
		"THEMELET_NODE_MODULES",
		"THEMELET_LINT_ENABLED",
		"THEMELET_LOG_TIMESTAMPS",
		"THEMELET_WATCH_DEBOUNCE",
	} {
		t.Setenv(name, "")
	}
	return home
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// requireExitCode asserts err is an ExitError with the given code.
func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, code, exitErr.Code, "exit code %s, error: %v", ExitCodeName(exitErr.Code), err)
}

// themeProject is a 7.0 theme with two installed themelets and base entry files.
func themeProject(t *testing.T) *testutil.Project {
	t.Helper()
	p := testutil.NewProject(t, testutil.PackageJSON("my-theme", "7.0", "themelet-a", "themelet-b"))
	p.Themelet("themelet-a", "js/lib/util.js", "var util = {};")
	p.Themelet("themelet-a", "css/_custom.scss", ".a { color: red; }")
	p.Themelet("themelet-b", "js/feature/main.js", "util.run();")
	p.Themelet("themelet-b", "css/_custom.scss", ".b { color: blue; }")
	p.Build("css/_custom.scss", scssEntry)
	p.Build("templates/portal_normal.ftl", ftlEntry)
	return p
}
