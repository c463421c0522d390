package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show themelet CLI version information.

Displays:
  - themelet version, commit, and build date
  - CUE SDK version used to read package.json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}
