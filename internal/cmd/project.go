package cmd

import (
	"path/filepath"

	"github.com/lfrtheme/themelet/internal/pipeline"
)

// projectDir returns the project directory argument, defaulting to the
// current directory.
func projectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// pipelineOptions builds controller options from the resolved configuration.
func pipelineOptions(cfg *GlobalConfig, dir string) pipeline.Options {
	c := cfg.Config()
	return pipeline.Options{
		ProjectDir:     dir,
		BuildDir:       c.BuildDir,
		NodeModulesDir: c.NodeModulesDir,
		Lint:           c.LintEnabled(),
	}
}

// resolveProjectPath resolves a configured directory against the project,
// the way the pipeline does.
func resolveProjectPath(project, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(project, dir)
}
