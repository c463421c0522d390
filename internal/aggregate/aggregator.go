// Package aggregate stages themelet assets into the theme build tree.
//
// For a category, every declared themelet's node_modules/<id>/src/<category>
// subtree is copied to <build>/<category>/themelets/<id>, one themelet after
// another in declaration order. Themelets without the subtree contribute
// nothing. The category's themelets directory is emptied first, so only the
// currently declared themelets and their current files end up staged.
package aggregate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lfrtheme/themelet/internal/asset"
	oerrors "github.com/lfrtheme/themelet/internal/errors"
	"github.com/lfrtheme/themelet/internal/output"
)

// Options configures an Aggregator.
type Options struct {
	// NodeModulesDir is the absolute directory themelets are installed in.
	NodeModulesDir string

	// BuildDir is the absolute theme build directory.
	BuildDir string

	// Copier performs the copies. Defaults to FSCopier.
	Copier Copier
}

// Aggregator copies themelet sources into the build tree.
type Aggregator struct {
	nodeModulesDir string
	buildDir       string
	copier         Copier
}

// New creates an Aggregator.
func New(opts Options) *Aggregator {
	copier := opts.Copier
	if copier == nil {
		copier = FSCopier{}
	}
	return &Aggregator{
		nodeModulesDir: opts.NodeModulesDir,
		buildDir:       opts.BuildDir,
		copier:         copier,
	}
}

// SourceDir is where a themelet's files for category live.
func (a *Aggregator) SourceDir(themelet string, category asset.Category) string {
	return filepath.Join(a.nodeModulesDir, filepath.FromSlash(themelet), "src", string(category))
}

// DestDir is where a themelet's files for category are staged.
func (a *Aggregator) DestDir(themelet string, category asset.Category) string {
	return filepath.Join(a.StageDir(category), filepath.FromSlash(themelet))
}

// StageDir is the directory all themelets' files for category are staged under.
func (a *Aggregator) StageDir(category asset.Category) string {
	return filepath.Join(a.buildDir, string(category), asset.ThemeletsDir)
}

// Aggregate replaces the staged files of category with those of each
// themelet, in the given order. It stops at the first copy failure and
// returns what was staged before it.
func (a *Aggregator) Aggregate(ctx context.Context, category asset.Category, themelets []string) ([]asset.Staged, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stageDir := a.StageDir(category)
	if err := os.RemoveAll(stageDir); err != nil {
		return nil, oerrors.WrapIO(err, "clearing", stageDir)
	}

	var staged []asset.Staged

	for _, id := range themelets {
		if err := ctx.Err(); err != nil {
			return staged, err
		}

		written, err := a.copier.CopyTree(ctx, a.SourceDir(id, category), category.Pattern(), a.DestDir(id, category))
		for _, path := range written {
			staged = append(staged, asset.Staged{Path: path, Themelet: id, Category: category})
		}
		if err != nil {
			return staged, fmt.Errorf("aggregating %s of themelet %s: %w", category, id, err)
		}

		output.ThemeletLogger(id).Debug("staged themelet assets", "category", category, "files", len(written))
	}

	return staged, nil
}
