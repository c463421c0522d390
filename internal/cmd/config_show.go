package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lfrtheme/themelet/internal/config"
	"github.com/lfrtheme/themelet/internal/output"
)

// resolvedEntry is one row of `themelet config show`.
type resolvedEntry struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Long: `Show every configuration value and where it came from: flag, env,
config or default.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(outputFlag, output.FormatTable, output.FormatYAML, output.FormatJSON)
			if err != nil {
				return err
			}

			entries := resolvedEntries(cfg)
			if format != output.FormatTable {
				if err := output.WriteStructured(c.OutOrStdout(), format, entries); err != nil {
					return &ExitError{Code: ExitGeneralError, Err: err}
				}
				return nil
			}

			tbl := output.NewTable("KEY", "VALUE", "SOURCE")
			for _, e := range entries {
				tbl.Row(e.Key, e.Value, e.Source)
			}
			fmt.Fprintln(c.OutOrStdout(), tbl.String())
			return nil
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, yaml, json")

	return c
}

// resolvedEntries lists the resolved values followed by the file-only settings.
func resolvedEntries(cfg *GlobalConfig) []resolvedEntry {
	entries := make([]resolvedEntry, 0, 6)
	if cfg.Resolved != nil {
		for _, v := range cfg.Resolved.Values() {
			entries = append(entries, resolvedEntry{Key: v.Key, Value: v.Value, Source: string(v.Source)})
		}
	}

	c := cfg.Config()
	loaded := cfg.Loaded
	if loaded == nil {
		loaded = &config.Config{}
	}

	timestamps := "true"
	if c.Log.Timestamps != nil {
		timestamps = strconv.FormatBool(*c.Log.Timestamps)
	}
	entries = append(entries,
		resolvedEntry{
			Key:    "lint.enabled",
			Value:  strconv.FormatBool(c.LintEnabled()),
			Source: fileSource(loaded.Lint.Enabled != nil),
		},
		resolvedEntry{
			Key:    "log.timestamps",
			Value:  timestamps,
			Source: fileSource(loaded.Log.Timestamps != nil),
		},
		resolvedEntry{
			Key:    "watch.debounce",
			Value:  c.Watch.Debounce.String(),
			Source: fileSource(loaded.Watch.Debounce > 0),
		},
	)
	return entries
}

// fileSource names the source of a setting only the config file (or its
// THEMELET_* env binding) can set.
func fileSource(set bool) string {
	if set {
		return string(config.SourceConfig)
	}
	return string(config.SourceDefault)
}
