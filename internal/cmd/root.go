// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/config"
	oerrors "github.com/lfrtheme/themelet/internal/errors"
	"github.com/lfrtheme/themelet/internal/output"
	"github.com/lfrtheme/themelet/internal/version"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is created by NewRootCmd and passed into every sub-command constructor.
type GlobalConfig struct {
	// Flags, as given on the command line.
	ConfigFlag      string
	BuildDirFlag    string
	NodeModulesFlag string
	Verbose         bool
	Timestamps      bool

	// Loaded is the config file as read, before defaults. Resolved is
	// populated from it before any sub-command runs.
	Loaded   *config.Config
	Resolved *config.ResolvedConfig
}

// Config returns the resolved tool configuration, or the defaults when
// resolution has not happened.
func (g *GlobalConfig) Config() *config.Config {
	if g == nil || g.Resolved == nil {
		return config.DefaultConfig()
	}
	return g.Resolved.Config
}

// NewRootCmd creates the root command for the themelet CLI.
func NewRootCmd() *cobra.Command {
	cfg := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "themelet",
		Short: "Aggregate and inject themelets into a theme build",
		Long: `themelet stages the assets of every themelet a theme declares into the
theme's build directory and injects references to them into the theme's
entry files.

Themelets are read from node_modules/<id>/src and declared in package.json
under liferayTheme.themeletDependencies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFlag, "config", "", "Path to config file (env: THEMELET_CONFIG)")
	flags.StringVar(&cfg.BuildDirFlag, "build-dir", "", "Build directory, relative to the project (env: THEMELET_BUILD_DIR)")
	flags.StringVar(&cfg.NodeModulesFlag, "node-modules", "", "Themelet install directory, relative to the project (env: THEMELET_NODE_MODULES)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&cfg.Timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewBuildCmd(cfg))
	rootCmd.AddCommand(NewInjectCmd(cfg))
	rootCmd.AddCommand(NewLintCmd(cfg))
	rootCmd.AddCommand(NewListCmd(cfg))
	rootCmd.AddCommand(NewWatchCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads the config file, resolves every value and sets up logging.
func initializeGlobals(cmd *cobra.Command, cfg *GlobalConfig) error {
	configPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: cfg.ConfigFlag})
	if err != nil {
		return exitError(err)
	}

	loaded, err := config.NewLoader().Load(configPath.Value)
	if err != nil {
		return &ExitError{Code: ExitValidationError, Err: fmt.Errorf("%w: %w", oerrors.ErrValidation, err)}
	}

	resolved, err := config.ResolveAll(config.ResolveAllOptions{
		ConfigFlag:      cfg.ConfigFlag,
		BuildDirFlag:    cfg.BuildDirFlag,
		NodeModulesFlag: cfg.NodeModulesFlag,
		Config:          loaded,
	})
	if err != nil {
		return exitError(err)
	}
	if err := config.Validate(resolved.Config); err != nil {
		return &ExitError{Code: ExitValidationError, Err: fmt.Errorf("%w: %w", oerrors.ErrValidation, err)}
	}
	cfg.Loaded = loaded
	cfg.Resolved = resolved

	// Timestamps: flag (if explicitly set) > config > default (true)
	logCfg := output.LogConfig{Verbose: cfg.Verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(cfg.Timestamps)
	} else if resolved.Config.Log.Timestamps != nil {
		logCfg.Timestamps = resolved.Config.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("themelet CLI started", "version", info.Version, "cue_sdk", info.CUESDKVersion)
	config.LogResolvedValues(resolved.Values())

	return nil
}
