// Package inject writes references to aggregated themelet assets into the
// theme's entry files, between literal marker comments.
package inject

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	oerrors "github.com/lfrtheme/themelet/internal/errors"
)

// Target describes one injection: which file, which sources, how each
// source becomes a line.
type Target struct {
	// Label names the injected kind in messages ("styles", "js").
	Label string

	// File is the absolute path of the entry file to rewrite.
	File string

	// Sources are absolute paths, already in injection order.
	Sources []string

	// Markers delimit the region to rewrite.
	Markers Markers

	// Transform turns a source path into the line written for it.
	Transform func(source string) string
}

// Result is the outcome of one Inject call.
type Result struct {
	Label string `json:"label" yaml:"label"`

	// Target is the entry file path.
	Target string `json:"target" yaml:"target"`

	// Sources is the number of sources offered for injection.
	Sources int `json:"sources" yaml:"sources"`

	// Lines are the generated lines, in order. Empty unless Injected.
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`

	// Injected is true when markers were found and at least one source was written.
	Injected bool `json:"injected" yaml:"injected"`

	// Changed is true when the file content was rewritten.
	Changed bool `json:"changed" yaml:"changed"`

	// TargetMissing is true when the entry file does not exist.
	TargetMissing bool `json:"targetMissing,omitempty" yaml:"targetMissing,omitempty"`
}

// NeedsWarning reports whether the missing-markers warning applies: themelets
// are declared, sources exist, and nothing was injected.
func (r Result) NeedsWarning(themeletsDeclared bool) bool {
	return themeletsDeclared && r.Sources > 0 && !r.Injected
}

// WarningMessage is the text logged when NeedsWarning is true.
func (r Result) WarningMessage() string {
	return fmt.Sprintf("Failed to automatically inject themelet %s. Make sure inject tags are present in", r.Label)
}

// Inject rewrites the marker regions of t.File with one line per source.
//
// With no sources, regions still holding lines from an earlier run are
// emptied and a file whose regions are already empty is not touched. A
// missing entry file is reported through Result.TargetMissing, not as an
// error. Any other read or write failure is returned.
func Inject(ctx context.Context, t Target) (Result, error) {
	res := Result{Label: t.Label, Target: t.File, Sources: len(t.Sources)}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	info, err := os.Stat(t.File)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.TargetMissing = true
			return res, nil
		}
		return res, oerrors.WrapIO(err, "reading", t.File)
	}

	data, err := os.ReadFile(t.File)
	if err != nil {
		return res, oerrors.WrapIO(err, "reading", t.File)
	}
	content := string(data)

	var updated string
	if len(t.Sources) == 0 {
		if !HoldsContent(content, t.Markers) {
			return res, nil
		}
		updated, _ = ReplaceRegions(content, t.Markers, nil)
	} else {
		lines := make([]string, 0, len(t.Sources))
		for _, src := range t.Sources {
			lines = append(lines, t.Transform(src))
		}

		var found bool
		updated, found = ReplaceRegions(content, t.Markers, lines)
		if !found {
			return res, nil
		}
		res.Injected = true
		res.Lines = lines
	}

	if updated == content {
		return res, nil
	}

	if err := os.WriteFile(t.File, []byte(updated), info.Mode().Perm()); err != nil {
		return res, oerrors.WrapIO(err, "writing", t.File)
	}
	res.Changed = true

	return res, nil
}
