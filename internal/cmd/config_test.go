package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfrtheme/themelet/internal/config"
	"github.com/lfrtheme/themelet/internal/testutil"
)

func TestNewConfigInitCmd(t *testing.T) {
	c := NewConfigInitCmd(&GlobalConfig{})

	assert.Equal(t, "init", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.NotEmpty(t, c.Long)
	assert.NotNil(t, c.Flags().Lookup("force"))
}

func TestConfigInit_CreatesFile(t *testing.T) {
	home := isolate(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(home, ".themelet", "config.yaml")
	assert.Contains(t, out, "Configuration initialized")
	assert.Equal(t, config.DefaultConfigTemplate, testutil.ReadFile(t, filepath.Dir(path), "config.yaml"))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		dirInfo, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
	}
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	home := isolate(t)
	testutil.WriteFile(t, filepath.Join(home, ".themelet"), "config.yaml", "buildDir: dist\n")

	_, err := execute(t, "config", "init")
	requireExitCode(t, err, ExitValidationError)
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigTemplate, testutil.ReadFile(t, filepath.Join(home, ".themelet"), "config.yaml"))
}

func TestConfigInit_ConfigFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "themelet.yaml")

	_, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigShow_JSON(t *testing.T) {
	home := isolate(t)
	testutil.WriteFile(t, filepath.Join(home, ".themelet"), "config.yaml", "buildDir: dist\nwatch:\n  debounce: 1s\n")

	out, err := execute(t, "--node-modules", "vendor", "config", "show", "-o", "json")
	require.NoError(t, err)

	var entries []resolvedEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))

	byKey := make(map[string]resolvedEntry, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e
	}

	assert.Equal(t, resolvedEntry{Key: "buildDir", Value: "dist", Source: "config"}, byKey["buildDir"])
	assert.Equal(t, resolvedEntry{Key: "nodeModulesDir", Value: "vendor", Source: "flag"}, byKey["nodeModulesDir"])
	assert.Equal(t, "env", byKey["config"].Source)
	assert.Equal(t, resolvedEntry{Key: "lint.enabled", Value: "true", Source: "default"}, byKey["lint.enabled"])
	assert.Equal(t, resolvedEntry{Key: "watch.debounce", Value: "1s", Source: "config"}, byKey["watch.debounce"])
}

func TestConfigShow_Table(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "buildDir")
	assert.Contains(t, out, "default")
}
