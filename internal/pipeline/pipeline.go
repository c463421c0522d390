// Package pipeline sequences a themelet build: lint the themelet styles,
// stage every asset category, then inject references into the theme's entry
// files.
package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/lfrtheme/themelet/internal/aggregate"
	"github.com/lfrtheme/themelet/internal/asset"
	"github.com/lfrtheme/themelet/internal/dag"
	"github.com/lfrtheme/themelet/internal/inject"
	"github.com/lfrtheme/themelet/internal/lint"
	"github.com/lfrtheme/themelet/internal/output"
	"github.com/lfrtheme/themelet/internal/theme"
)

// Default directories, relative to the project.
const (
	DefaultBuildDir       = "build"
	DefaultNodeModulesDir = "node_modules"
)

// Options configures a Controller.
type Options struct {
	// ProjectDir is the theme project root. Required.
	ProjectDir string

	// BuildDir is the build output directory. Relative paths are resolved
	// against ProjectDir. Default: build.
	BuildDir string

	// NodeModulesDir is where themelets are installed. Relative paths are
	// resolved against ProjectDir. Default: node_modules.
	NodeModulesDir string

	// Lint enables the lint-styles stage of Run.
	Lint bool

	// Copier overrides the aggregation copy primitive. Default: aggregate.FSCopier.
	Copier aggregate.Copier
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.ProjectDir == "" {
		return errProjectRequired
	}
	return nil
}

// Controller runs the build stages for one project.
type Controller struct {
	opts Options
}

// New creates a Controller.
func New(opts Options) *Controller {
	return &Controller{opts: opts}
}

// Run executes the full build.
//
// Stage sequence:
//  1. LINT:      lint-styles (optional, never fails the build)
//  2. AGGREGATE: aggregate-css, aggregate-images, aggregate-js, aggregate-templates (concurrent)
//  3. INJECT:    inject-css, inject-js (concurrent)
//
// A missing package.json or any I/O failure while staging or injecting is
// fatal and returns (nil, err) with the failing stage in a *StageError.
// Missing inject markers are reported as warnings.
func (c *Controller) Run(ctx context.Context) (*Report, error) {
	return c.execute(ctx, BuildGraph(c.opts.Lint))
}

// Inject runs only the inject stages against the current build tree.
func (c *Controller) Inject(ctx context.Context) (*Report, error) {
	return c.execute(ctx, InjectGraph())
}

// Lint runs only the lint-styles stage.
func (c *Controller) Lint(ctx context.Context) (*Report, error) {
	return c.execute(ctx, LintGraph())
}

// run is the state shared by the stages of one execution.
type run struct {
	report     *Report
	themelets  []string
	cfg        theme.Config
	buildDir   string
	aggregator *aggregate.Aggregator
}

func (c *Controller) execute(ctx context.Context, g *dag.Graph) (*Report, error) {
	if err := c.opts.Validate(); err != nil {
		return nil, err
	}

	projectDir, err := filepath.Abs(c.opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	buildDir := resolveDir(projectDir, c.opts.BuildDir, DefaultBuildDir)
	nodeModulesDir := resolveDir(projectDir, c.opts.NodeModulesDir, DefaultNodeModulesDir)

	manifest, err := theme.LoadManifest(projectDir)
	if err != nil {
		return nil, err
	}

	r := &run{
		report:    newReport(projectDir, buildDir, manifest),
		themelets: manifest.Themelets(),
		cfg:       manifest.Config(),
		buildDir:  buildDir,
		aggregator: aggregate.New(aggregate.Options{
			NodeModulesDir: nodeModulesDir,
			BuildDir:       buildDir,
			Copier:         c.opts.Copier,
		}),
	}

	if len(r.themelets) == 0 {
		output.Debug("no themelets declared", "project", projectDir)
	}

	tasks := map[string]dag.Task{
		StageLint: func(ctx context.Context) error {
			return r.lint(ctx, nodeModulesDir)
		},
		StageInjectCSS: func(ctx context.Context) error {
			return r.inject(ctx, StageInjectCSS, inject.CSS)
		},
		StageInjectJS: func(ctx context.Context) error {
			return r.inject(ctx, StageInjectJS, inject.JS)
		},
	}
	for _, category := range asset.Categories {
		tasks[AggregateStage(category)] = func(ctx context.Context) error {
			return r.aggregate(ctx, category)
		}
	}
	for name, task := range tasks {
		tasks[name] = timed(name, r.report, task)
	}

	if err := dag.Run(ctx, g, tasks); err != nil {
		var nodeErr *dag.NodeError
		if errors.As(err, &nodeErr) {
			return nil, &StageError{Stage: nodeErr.Node, Err: nodeErr.Err}
		}
		return nil, err
	}

	r.report.finalize()
	return r.report, nil
}

// timed wraps a stage task with debug logging and completion tracking.
func timed(name string, report *Report, task dag.Task) dag.Task {
	return func(ctx context.Context) error {
		log := output.StageLogger(name)
		start := time.Now()
		log.Debug("stage started")

		if err := task(ctx); err != nil {
			return err
		}

		log.Debug("stage finished", "duration", time.Since(start).Round(time.Millisecond))
		report.stageDone(name)
		return nil
	}
}

// lint checks each themelet's src tree. Findings and lint I/O errors are
// logged; neither fails the build.
func (r *run) lint(ctx context.Context, nodeModulesDir string) error {
	roots := make([]string, 0, len(r.themelets))
	for _, id := range r.themelets {
		roots = append(roots, filepath.Join(nodeModulesDir, filepath.FromSlash(id), "src"))
	}

	findings, err := lint.LintPaths(ctx, roots)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		output.Warn("linting themelet styles failed", "error", err)
	}

	for _, f := range findings {
		output.Warn(f.Message,
			"file", f.File,
			"line", f.Line,
			"column", f.Column,
			"rule", f.Rule,
		)
	}
	r.report.addFindings(findings)
	return nil
}

func (r *run) aggregate(ctx context.Context, category asset.Category) error {
	staged, err := r.aggregator.Aggregate(ctx, category, r.themelets)
	r.report.addStaged(category, staged)
	return err
}

// inject builds the stage's target and rewrites it. A target whose markers
// are missing produces a warning when themelets are declared.
func (r *run) inject(ctx context.Context, stage string, target func(string, theme.Config) (inject.Target, error)) error {
	t, err := target(r.buildDir, r.cfg)
	if err != nil {
		return err
	}

	res, err := inject.Inject(ctx, t)
	if err != nil {
		return err
	}
	r.report.setInjection(stage, res)

	if res.NeedsWarning(len(r.themelets) > 0) {
		w := Warning{Stage: stage, Message: res.WarningMessage(), File: filepath.Base(res.Target)}
		output.Warn(w.Message, "file", w.File)
		r.report.addWarning(w)
	}

	output.Debug("injection finished",
		"target", res.Target,
		"sources", res.Sources,
		"injected", res.Injected,
		"changed", res.Changed,
	)
	return nil
}

// resolveDir resolves dir against base, falling back to def when empty.
func resolveDir(base, dir, def string) string {
	if dir == "" {
		dir = def
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}
