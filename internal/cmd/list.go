package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/inject"
	"github.com/lfrtheme/themelet/internal/output"
	"github.com/lfrtheme/themelet/internal/theme"
)

// themeletEntry is one declared themelet in a listing.
type themeletEntry struct {
	ID        string `json:"id" yaml:"id"`
	Source    string `json:"source" yaml:"source"`
	Installed bool   `json:"installed" yaml:"installed"`
}

// targetEntry is one injection target and the lines it would receive.
type targetEntry struct {
	Label  string   `json:"label" yaml:"label"`
	File   string   `json:"file" yaml:"file"`
	Exists bool     `json:"exists" yaml:"exists"`
	Lines  []string `json:"lines" yaml:"lines"`
}

// listing is what `themelet list` reports.
type listing struct {
	Theme     theme.Config    `json:"theme" yaml:"theme"`
	Themelets []themeletEntry `json:"themelets" yaml:"themelets"`
	Targets   []targetEntry   `json:"targets" yaml:"targets"`
}

// NewListCmd creates the list command.
func NewListCmd(cfg *GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "list [project-dir]",
		Short: "List declared themelets and what would be injected",
		Long: `List the themelets a theme declares, in declaration order, the entry
files injection would rewrite, and the ordered lines each would receive given
the current build directory.

Examples:
  # Show themelets and injection targets as tables
  themelet list

  # Machine-readable
  themelet list -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := parseOutputFormat(outputFlag, output.FormatTable, output.FormatYAML, output.FormatJSON)
			if err != nil {
				return err
			}

			l, err := buildListing(cfg, projectDir(args))
			if err != nil {
				return exitError(err)
			}

			if format == output.FormatTable {
				writeListingTables(c, l)
				return nil
			}
			if err := output.WriteStructured(c.OutOrStdout(), format, l); err != nil {
				return &ExitError{Code: ExitGeneralError, Err: err}
			}
			return nil
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, yaml, json")

	return c
}

func buildListing(cfg *GlobalConfig, dir string) (*listing, error) {
	project, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	manifest, err := theme.LoadManifest(project)
	if err != nil {
		return nil, err
	}

	c := cfg.Config()
	buildDir := resolveProjectPath(project, c.BuildDir)
	nodeModulesDir := resolveProjectPath(project, c.NodeModulesDir)

	l := &listing{
		Theme:     manifest.Config(),
		Themelets: make([]themeletEntry, 0),
		Targets:   make([]targetEntry, 0, 2),
	}

	for _, id := range manifest.Themelets() {
		src := filepath.Join(nodeModulesDir, filepath.FromSlash(id), "src")
		info, statErr := os.Stat(src)
		l.Themelets = append(l.Themelets, themeletEntry{
			ID:        id,
			Source:    src,
			Installed: statErr == nil && info.IsDir(),
		})
	}

	for _, target := range []func(string, theme.Config) (inject.Target, error){inject.CSS, inject.JS} {
		t, err := target(buildDir, l.Theme)
		if err != nil {
			return nil, err
		}
		entry := targetEntry{Label: t.Label, File: t.File, Lines: make([]string, 0, len(t.Sources))}
		if _, statErr := os.Stat(t.File); statErr == nil {
			entry.Exists = true
		}
		for _, source := range t.Sources {
			entry.Lines = append(entry.Lines, t.Transform(source))
		}
		l.Targets = append(l.Targets, entry)
	}

	return l, nil
}

func writeListingTables(c *cobra.Command, l *listing) {
	w := c.OutOrStdout()

	themelets := output.NewTable("#", "THEMELET", "INSTALLED")
	for i, t := range l.Themelets {
		row := []string{strconv.Itoa(i + 1), t.ID, strconv.FormatBool(t.Installed)}
		if !t.Installed {
			themelets.Warn(row...)
			continue
		}
		themelets.Row(row...)
	}
	fmt.Fprintln(w, themelets.String())

	targets := output.NewTable("TARGET", "FILE", "LINE")
	for _, t := range l.Targets {
		file := filepath.Base(t.File)
		add := targets.Row
		if !t.Exists {
			file += " (missing)"
			add = targets.Warn
		}
		if len(t.Lines) == 0 {
			add(t.Label, file, "-")
			continue
		}
		for _, line := range t.Lines {
			add(t.Label, file, line)
		}
	}
	fmt.Fprintln(w, targets.String())
}
