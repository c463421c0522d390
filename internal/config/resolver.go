package config

import (
	"os"

	"github.com/lfrtheme/themelet/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value with its origin.
type ResolvedValue struct {
	// Key is the configuration key (e.g. "buildDir").
	Key string
	// Value is the winning value.
	Value string
	// Source indicates where Value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// resolveString applies flag > env > config > default precedence.
func resolveString(key, flagValue, envName, configValue, defaultValue string) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envName)},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.source != SourceDefault {
			result.Shadowed[c.source] = c.value
		}
	}

	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) THEMELET_CONFIG env, (3) ~/.themelet/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}

	result := resolveString("config", opts.FlagValue, "THEMELET_CONFIG", "", paths.ConfigFile)
	if result.Source != SourceDefault {
		result.Shadowed[SourceDefault] = paths.ConfigFile
	}
	return result, nil
}

// ResolveAllOptions contains the inputs for ResolveAll.
type ResolveAllOptions struct {
	// ConfigFlag is the --config flag value.
	ConfigFlag string
	// BuildDirFlag is the --build-dir flag value.
	BuildDirFlag string
	// NodeModulesFlag is the --node-modules flag value.
	NodeModulesFlag string
	// Config is the loaded config file (may be nil).
	Config *Config
}

// ResolvedConfig holds every resolved value the commands consume.
type ResolvedConfig struct {
	ConfigPath     ResolvedValue
	BuildDir       ResolvedValue
	NodeModulesDir ResolvedValue
	// Config is the loaded config with defaults applied.
	Config *Config
}

// ResolveAll resolves every configuration value using flag > env > config > default.
func ResolveAll(opts ResolveAllOptions) (*ResolvedConfig, error) {
	configPath, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: opts.ConfigFlag})
	if err != nil {
		return nil, err
	}

	var fileBuildDir, fileNodeModules string
	if opts.Config != nil {
		fileBuildDir = opts.Config.BuildDir
		fileNodeModules = opts.Config.NodeModulesDir
	}

	resolved := &ResolvedConfig{
		ConfigPath: configPath,
		BuildDir: resolveString("buildDir", opts.BuildDirFlag, "THEMELET_BUILD_DIR",
			fileBuildDir, DefaultBuildDir),
		NodeModulesDir: resolveString("nodeModulesDir", opts.NodeModulesFlag, "THEMELET_NODE_MODULES",
			fileNodeModules, DefaultNodeModulesDir),
		Config: opts.Config.WithDefaults(),
	}
	resolved.Config.BuildDir = resolved.BuildDir.Value
	resolved.Config.NodeModulesDir = resolved.NodeModulesDir.Value

	return resolved, nil
}

// Values returns the resolved values in a stable order for logging.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.ConfigPath, r.BuildDir, r.NodeModulesDir}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
