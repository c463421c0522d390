package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/output"
	"github.com/lfrtheme/themelet/internal/pipeline"
)

// NewLintCmd creates the lint command.
func NewLintCmd(cfg *GlobalConfig) *cobra.Command {
	var strictFlag bool

	c := &cobra.Command{
		Use:   "lint [project-dir]",
		Short: "Lint the styles of every declared themelet",
		Long: `Check the css and scss sources of each declared themelet for unclosed
comments, strings and blocks, stray closing braces and empty blocks.

Findings are logged as warnings and do not fail the command unless --strict is set.

Examples:
  # Lint themelets of the current theme
  themelet lint

  # Fail (exit 2) when any finding is reported
  themelet lint --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			report, err := pipeline.New(pipelineOptions(cfg, projectDir(args))).Lint(c.Context())
			if err != nil {
				return exitError(err)
			}

			// Findings are logged by the lint stage as they are found.
			w := c.OutOrStdout()
			if len(report.Findings) == 0 {
				fmt.Fprintln(w, output.FormatCheck("Linted styles", plural(len(report.Themelets), "themelet")))
				return nil
			}

			summary := "lint reported " + plural(len(report.Findings), "finding")
			if strictFlag {
				return &ExitError{Code: ExitValidationError, Err: errors.New(summary)}
			}
			fmt.Fprintln(w, output.FormatWarning(summary, ""))
			return nil
		},
	}

	c.Flags().BoolVar(&strictFlag, "strict", false, "Exit with code 2 when findings are reported")

	return c
}
