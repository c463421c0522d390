// Package config provides configuration loading and management for the themelet CLI.
//
// Two layers exist: the tool configuration in ~/.themelet/config.yaml (this
// package, read through viper) and the per-project theme configuration in
// package.json (package theme). Values here never describe a theme; they
// describe where the tool reads and writes.
package config

import "time"

// Defaults for the tool configuration.
const (
	DefaultBuildDir       = "build"
	DefaultNodeModulesDir = "node_modules"
	DefaultWatchDebounce  = 500 * time.Millisecond
)

// LintConfig contains style lint settings.
type LintConfig struct {
	// Enabled controls the lint-styles phase of a build. nil means enabled.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// WatchConfig contains settings for `themelet watch`.
type WatchConfig struct {
	// Debounce is the quiet period after the last change before a rebuild.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce,omitempty"`
}

// Config represents the themelet CLI configuration.
// Loaded from ~/.themelet/config.yaml.
type Config struct {
	// BuildDir is the theme build output directory, relative to the project.
	// Env: THEMELET_BUILD_DIR, Default: build
	BuildDir string `mapstructure:"buildDir" yaml:"buildDir,omitempty"`

	// NodeModulesDir is where themelet packages are installed, relative to the project.
	// Env: THEMELET_NODE_MODULES, Default: node_modules
	NodeModulesDir string `mapstructure:"nodeModulesDir" yaml:"nodeModulesDir,omitempty"`

	// Lint contains style lint settings.
	Lint LintConfig `mapstructure:"lint" yaml:"lint,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`

	// Watch contains watch mode settings.
	Watch WatchConfig `mapstructure:"watch" yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `themelet config init` to generate the initial config file.
func DefaultConfig() *Config {
	enabled := true
	return &Config{
		BuildDir:       DefaultBuildDir,
		NodeModulesDir: DefaultNodeModulesDir,
		Lint:           LintConfig{Enabled: &enabled},
		Watch:          WatchConfig{Debounce: DefaultWatchDebounce},
	}
}

// WithDefaults returns a copy of c with unset fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *DefaultConfig()
	if c == nil {
		return &out
	}
	if c.BuildDir != "" {
		out.BuildDir = c.BuildDir
	}
	if c.NodeModulesDir != "" {
		out.NodeModulesDir = c.NodeModulesDir
	}
	if c.Lint.Enabled != nil {
		out.Lint.Enabled = c.Lint.Enabled
	}
	if c.Log.Timestamps != nil {
		out.Log.Timestamps = c.Log.Timestamps
	}
	if c.Watch.Debounce > 0 {
		out.Watch.Debounce = c.Watch.Debounce
	}
	return &out
}

// LintEnabled reports whether the lint-styles phase should run.
func (c *Config) LintEnabled() bool {
	if c == nil || c.Lint.Enabled == nil {
		return true
	}
	return *c.Lint.Enabled
}

// DefaultConfigTemplate is written by `themelet config init`.
const DefaultConfigTemplate = `# themelet CLI configuration.
# Values here apply to every theme project; flags and THEMELET_* environment
# variables take precedence.

# Theme build output directory, relative to the project root.
buildDir: build

# Where themelet packages are installed, relative to the project root.
nodeModulesDir: node_modules

lint:
  # Run the lint-styles phase before aggregation. Findings never fail a build.
  enabled: true

log:
  timestamps: true

watch:
  debounce: 500ms
`
