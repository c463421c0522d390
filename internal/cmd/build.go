package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/output"
	"github.com/lfrtheme/themelet/internal/pipeline"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *GlobalConfig) *cobra.Command {
	var (
		outputFlag string
		noLintFlag bool
	)

	c := &cobra.Command{
		Use:   "build [project-dir]",
		Short: "Stage themelet assets and inject them into the theme",
		Long: `Run the full themelet pipeline for a theme project.

Stages, in order:
  lint-styles    lint each themelet's css/scss sources (never fails the build)
  aggregate-*    copy css, images, js and templates into <build>/<category>/themelets/<id>
  inject-*       write @import and <script> lines between the inject tags of
                 the theme's css entry file and portal_normal template

Arguments:
  project-dir    Theme project directory (default: current directory)

Examples:
  # Build the theme in the current directory
  themelet build

  # Build another project and print the report as JSON
  themelet build ../my-theme -o json

  # Skip linting
  themelet build --no-lint`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := parseOutputFormat(outputFlag, output.FormatText, output.FormatYAML, output.FormatJSON)
			if err != nil {
				return err
			}

			opts := pipelineOptions(cfg, projectDir(args))
			if noLintFlag {
				opts.Lint = false
			}

			var report *pipeline.Report
			err = output.Spin(c.Context(), "Building themelets...", func(ctx context.Context) error {
				var runErr error
				report, runErr = pipeline.New(opts).Run(ctx)
				return runErr
			})
			if err != nil {
				return exitError(err)
			}

			return writeReport(c, cfg, format, report)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text, yaml, json")
	c.Flags().BoolVar(&noLintFlag, "no-lint", false, "Skip the lint-styles stage")

	return c
}

// writeReport prints a pipeline report in the requested format.
func writeReport(c *cobra.Command, cfg *GlobalConfig, format output.Format, report *pipeline.Report) error {
	if format == output.FormatText {
		writeSummary(c.OutOrStdout(), report, cfg.Verbose)
		return nil
	}
	if err := output.WriteStructured(c.OutOrStdout(), format, report); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	return nil
}

// parseOutputFormat validates an -o value against the formats a command supports.
func parseOutputFormat(value string, allowed ...output.Format) (output.Format, error) {
	format, ok := output.ParseFormat(value)
	if ok {
		for _, a := range allowed {
			if format == a {
				return format, nil
			}
		}
	}
	return "", &ExitError{
		Code: ExitValidationError,
		Err:  fmt.Errorf("invalid output format %q (valid: %v)", value, allowed),
	}
}
