package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/output"
	"github.com/lfrtheme/themelet/internal/pipeline"
)

// NewInjectCmd creates the inject command.
func NewInjectCmd(cfg *GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "inject [project-dir]",
		Short: "Inject staged themelet assets into the theme entry files",
		Long: `Run only the inject stages against an existing build directory.

Assets already staged under <build>/css/themelets and <build>/js/themelets are
written between the inject tags of the theme's entry files. Running inject
twice produces the same files.

Examples:
  # Re-inject after editing a template by hand
  themelet inject`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := parseOutputFormat(outputFlag, output.FormatText, output.FormatYAML, output.FormatJSON)
			if err != nil {
				return err
			}

			report, err := pipeline.New(pipelineOptions(cfg, projectDir(args))).Inject(c.Context())
			if err != nil {
				return exitError(err)
			}
			return writeReport(c, cfg, format, report)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text, yaml, json")

	return c
}
