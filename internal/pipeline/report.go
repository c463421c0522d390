package pipeline

import (
	"sync"

	"github.com/lfrtheme/themelet/internal/asset"
	"github.com/lfrtheme/themelet/internal/inject"
	"github.com/lfrtheme/themelet/internal/lint"
	"github.com/lfrtheme/themelet/internal/theme"
)

// Warning is a non-fatal diagnostic raised during a run.
type Warning struct {
	Stage   string `json:"stage" yaml:"stage"`
	Message string `json:"message" yaml:"message"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Report summarises one run. Stages of a level write to it concurrently;
// every mutation goes through its methods.
type Report struct {
	mu sync.Mutex

	ProjectDir string       `json:"projectDir" yaml:"projectDir"`
	BuildDir   string       `json:"buildDir" yaml:"buildDir"`
	Theme      theme.Config `json:"theme" yaml:"theme"`
	Themelets  []string     `json:"themelets" yaml:"themelets"`

	// Staged lists staged assets grouped by category, in category order.
	Staged []asset.Staged `json:"staged" yaml:"staged"`

	// Counts is the number of staged assets per category.
	Counts map[asset.Category]int `json:"counts" yaml:"counts"`

	Findings []lint.Finding `json:"findings" yaml:"findings"`

	Styles  *inject.Result `json:"styles,omitempty" yaml:"styles,omitempty"`
	Scripts *inject.Result `json:"scripts,omitempty" yaml:"scripts,omitempty"`

	Warnings []Warning `json:"warnings" yaml:"warnings"`

	// Stages lists the stages that ran to completion, in completion order.
	Stages []string `json:"stages" yaml:"stages"`

	staged map[asset.Category][]asset.Staged
}

func newReport(projectDir, buildDir string, m *theme.Manifest) *Report {
	return &Report{
		ProjectDir: projectDir,
		BuildDir:   buildDir,
		Theme:      m.Config(),
		Themelets:  m.Themelets(),
		Counts:     make(map[asset.Category]int),
		staged:     make(map[asset.Category][]asset.Staged),
	}
}

func (r *Report) addStaged(category asset.Category, staged []asset.Staged) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staged[category] = append(r.staged[category], staged...)
	r.Counts[category] += len(staged)
}

func (r *Report) addFindings(findings []lint.Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Findings = append(r.Findings, findings...)
}

func (r *Report) setInjection(stage string, res inject.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stage == StageInjectCSS {
		r.Styles = &res
	} else {
		r.Scripts = &res
	}
}

func (r *Report) addWarning(w Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, w)
}

func (r *Report) stageDone(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stages = append(r.Stages, stage)
}

// finalize flattens staged assets in category order and makes every slice
// non-nil for consistent serialization.
func (r *Report) finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Staged = make([]asset.Staged, 0)
	for _, category := range asset.Categories {
		r.Staged = append(r.Staged, r.staged[category]...)
	}
	if r.Themelets == nil {
		r.Themelets = make([]string, 0)
	}
	if r.Findings == nil {
		r.Findings = make([]lint.Finding, 0)
	}
	if r.Warnings == nil {
		r.Warnings = make([]Warning, 0)
	}
	if r.Stages == nil {
		r.Stages = make([]string, 0)
	}
}

// Total returns the number of staged assets.
func (r *Report) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}
