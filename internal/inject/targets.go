package inject

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lfrtheme/themelet/internal/asset"
	oerrors "github.com/lfrtheme/themelet/internal/errors"
	"github.com/lfrtheme/themelet/internal/order"
	"github.com/lfrtheme/themelet/internal/theme"
)

// Source patterns, relative to the build directory.
const (
	cssSourcePattern = "css/themelets/**/_custom.{css,scss}"
	jsSourcePattern  = "js/themelets/**/*.js"
)

// CSS returns the stylesheet injection target for a build directory: every
// aggregated _custom.css/_custom.scss, in lexical order, imported into the
// theme's CSS entry file.
func CSS(buildDir string, cfg theme.Config) (Target, error) {
	sources, err := CSSSources(buildDir)
	if err != nil {
		return Target{}, err
	}

	cssDir := filepath.Join(buildDir, string(asset.CSS))
	return Target{
		Label:   "styles",
		File:    filepath.Join(cssDir, cfg.CSSEntryFile()),
		Sources: sources,
		Markers: CSSMarkers,
		Transform: func(source string) string {
			return `@import "` + relSlash(cssDir, source) + `";`
		},
	}, nil
}

// JS returns the script injection target for a build directory: every
// aggregated script, in load order, referenced from the theme's page template.
// Scripts are served below the theme name, so a theme without one cannot
// have scripts injected.
func JS(buildDir string, cfg theme.Config) (Target, error) {
	sources, err := JSSources(buildDir)
	if err != nil {
		return Target{}, err
	}
	if len(sources) > 0 && cfg.Name == "" {
		return Target{}, oerrors.NewValidationError(
			"theme has no name to serve themelet scripts under",
			theme.ManifestFile,
			"name",
			"Set \"name\" in the theme's package.json.",
		)
	}

	return Target{
		Label:   "js",
		File:    filepath.Join(buildDir, string(asset.Templates), cfg.TemplateEntryFile()),
		Sources: sources,
		Markers: JSMarkers,
		Transform: func(source string) string {
			return `<script src="` + ScriptURL(cfg.Name, relSlash(buildDir, source)) + `"></script>`
		},
	}, nil
}

// ScriptURL is the URL a theme serves a build-relative script from.
func ScriptURL(themeName, buildRel string) string {
	return path.Join("/o", themeName, buildRel)
}

// CSSSources lists aggregated themelet stylesheets in lexical order.
func CSSSources(buildDir string) ([]string, error) {
	matches, err := glob(buildDir, cssSourcePattern)
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	return absolute(buildDir, matches), nil
}

// JSSources lists aggregated themelet scripts in load order.
func JSSources(buildDir string) ([]string, error) {
	matches, err := glob(buildDir, jsSourcePattern)
	if err != nil {
		return nil, err
	}

	// Rank paths relative to the themelet script tree, so the themelet
	// directory is the first element.
	prefix := path.Join(string(asset.JS), asset.ThemeletsDir) + "/"
	rels := make([]string, len(matches))
	for i, m := range matches {
		rels[i] = strings.TrimPrefix(m, prefix)
	}
	order.Sort(rels)

	for i, rel := range rels {
		matches[i] = prefix + rel
	}
	return absolute(buildDir, matches), nil
}

// glob returns slash-separated build-relative files matching pattern.
// A missing build directory yields no matches.
func glob(buildDir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(buildDir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("matching %s in %s: %w", pattern, buildDir, err)
	}
	return matches, nil
}

func absolute(base string, rels []string) []string {
	out := make([]string, len(rels))
	for i, rel := range rels {
		out[i] = filepath.Join(base, filepath.FromSlash(rel))
	}
	return out
}

// relSlash returns target relative to base with forward slashes.
func relSlash(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
