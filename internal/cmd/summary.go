package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/lfrtheme/themelet/internal/asset"
	"github.com/lfrtheme/themelet/internal/inject"
	"github.com/lfrtheme/themelet/internal/output"
	"github.com/lfrtheme/themelet/internal/pipeline"
)

// writeSummary prints the human-readable result of a run. Warnings are
// logged by the pipeline as they happen and only counted here. Verbose
// adds one line per staged asset and per injection target.
func writeSummary(w io.Writer, report *pipeline.Report, verbose bool) {
	if slices.Contains(report.Stages, pipeline.StageLint) {
		fmt.Fprintln(w, output.FormatCheck("Linted styles", plural(len(report.Findings), "finding")))
	}

	for _, category := range asset.Categories {
		if !slices.Contains(report.Stages, pipeline.AggregateStage(category)) {
			continue
		}
		fmt.Fprintln(w, output.FormatCheck("Staged "+string(category), plural(report.Counts[category], "file")))
	}
	if verbose {
		for _, staged := range report.Staged {
			fmt.Fprintln(w, output.FormatAssetLine(string(staged.Category),
				buildRel(report, staged.Path, string(staged.Category)), output.StatusCopied))
		}
	}

	for _, res := range []*inject.Result{report.Styles, report.Scripts} {
		if res == nil {
			continue
		}
		fmt.Fprintln(w, output.FormatCheck("Injected "+res.Label, injectionDetail(res)))
		if verbose {
			dir := filepath.Base(filepath.Dir(res.Target))
			fmt.Fprintln(w, output.FormatAssetLine(dir, filepath.Base(res.Target), injectionStatus(res)))
		}
	}

	name := report.Theme.Name
	if name == "" {
		name = filepath.Base(report.ProjectDir)
	}
	detail := plural(len(report.Themelets), "themelet") + ", " + plural(report.Total(), "asset")
	if n := len(report.Warnings); n > 0 {
		detail += ", " + plural(n, "warning")
	}
	fmt.Fprintln(w, output.FormatCheck("Built "+name, detail))
}

func injectionDetail(res *inject.Result) string {
	file := filepath.Base(res.Target)
	switch {
	case res.TargetMissing:
		return file + " not found"
	case res.Sources == 0 && res.Changed:
		return "cleared " + file
	case res.Sources == 0:
		return "nothing to inject"
	case !res.Injected:
		return "no inject tags in " + file
	case !res.Changed:
		return file + " up to date"
	default:
		return plural(len(res.Lines), "line") + " into " + file
	}
}

func injectionStatus(res *inject.Result) string {
	switch {
	case res.Changed:
		return output.StatusInjected
	case res.Injected:
		return output.StatusUnchanged
	default:
		return output.StatusSkipped
	}
}

// buildRel returns path relative to the category directory of the build.
func buildRel(report *pipeline.Report, path, category string) string {
	rel, err := filepath.Rel(filepath.Join(report.BuildDir, category), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
