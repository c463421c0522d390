package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/config"
	oerrors "github.com/lfrtheme/themelet/internal/errors"
	"github.com/lfrtheme/themelet/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *GlobalConfig) *cobra.Command {
	var forceFlag bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a default configuration file to ~/.themelet/config.yaml, or to the
path given by --config or THEMELET_CONFIG.

Examples:
  # Initialize configuration
  themelet config init

  # Overwrite existing configuration
  themelet config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			path, err := configFilePath(cfg)
			if err != nil {
				return exitError(err)
			}

			exists, err := config.ConfigFileExists(path)
			if err != nil {
				return exitError(permissionOrIO(err, "checking", path))
			}
			if exists && !forceFlag {
				return exitError(&oerrors.DetailError{
					Type:     "validation failed",
					Message:  "configuration already exists",
					Location: path,
					Hint:     "Use --force to overwrite existing configuration.",
					Cause:    oerrors.ErrValidation,
				})
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return exitError(permissionOrIO(err, "creating", filepath.Dir(path)))
			}
			if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
				return exitError(permissionOrIO(err, "writing", path))
			}

			fmt.Fprintln(c.OutOrStdout(), output.FormatCheck("Configuration initialized", path))
			return nil
		},
	}

	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing configuration")

	return c
}

// configFilePath returns the resolved config path with ~ expanded.
func configFilePath(cfg *GlobalConfig) (string, error) {
	path := ""
	if cfg.Resolved != nil {
		path = cfg.Resolved.ConfigPath.Value
	} else {
		resolved, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: cfg.ConfigFlag})
		if err != nil {
			return "", err
		}
		path = resolved.Value
	}
	return config.ExpandPath(path)
}

func permissionOrIO(err error, op, path string) error {
	if errors.Is(err, fs.ErrPermission) {
		return oerrors.NewPermissionError(
			fmt.Sprintf("%s %s: %v", op, path, err),
			map[string]string{"Path": path},
			"Check the permissions of the directory or pass --config.",
		)
	}
	return oerrors.WrapIO(err, op, path)
}
