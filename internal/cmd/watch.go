package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/output"
	"github.com/lfrtheme/themelet/internal/pipeline"
	"github.com/lfrtheme/themelet/internal/theme"
	"github.com/lfrtheme/themelet/internal/watch"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd(cfg *GlobalConfig) *cobra.Command {
	var noLintFlag bool

	c := &cobra.Command{
		Use:   "watch [project-dir]",
		Short: "Rebuild whenever a themelet source changes",
		Long: `Build the theme, then watch the src directory of every declared themelet
and run the pipeline again once changes settle.

The quiet period is watch.debounce from the config file (default 500ms).
Stop with Ctrl-C.

Examples:
  themelet watch
  themelet watch ../my-theme --no-lint`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			opts := pipelineOptions(cfg, projectDir(args))
			if noLintFlag {
				opts.Lint = false
			}
			controller := pipeline.New(opts)

			report, err := controller.Run(ctx)
			if err != nil {
				return exitError(err)
			}
			writeSummary(c.OutOrStdout(), report, cfg.Verbose)

			roots, err := watchRoots(cfg, opts.ProjectDir)
			if err != nil {
				return exitError(err)
			}
			if len(roots) == 0 {
				output.Warn("no themelets declared, nothing to watch")
				return nil
			}

			w, err := watch.New(watch.Config{
				Roots:    roots,
				Debounce: cfg.Config().Watch.Debounce,
				OnChange: func(ctx context.Context, changed []string) error {
					output.Info("rebuilding", "changed", len(changed))
					report, err := controller.Run(ctx)
					if err != nil {
						return err
					}
					writeSummary(c.OutOrStdout(), report, cfg.Verbose)
					return nil
				},
			})
			if err != nil {
				return exitError(err)
			}

			output.Info("watching themelets", "count", len(roots))
			output.Debug("watching directories", "dirs", len(w.Watched()))
			return exitError(w.Run(ctx))
		},
	}

	c.Flags().BoolVar(&noLintFlag, "no-lint", false, "Skip the lint-styles stage")

	return c
}

// watchRoots returns the src directory of every declared themelet.
func watchRoots(cfg *GlobalConfig, dir string) ([]string, error) {
	project, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	themelets, err := theme.Resolve(project)
	if err != nil {
		return nil, err
	}

	nodeModulesDir := resolveProjectPath(project, cfg.Config().NodeModulesDir)
	roots := make([]string, 0, len(themelets))
	for _, id := range themelets {
		roots = append(roots, filepath.Join(nodeModulesDir, filepath.FromSlash(id), "src"))
	}
	return roots, nil
}
