// Package order provides the load order of aggregated themelet scripts.
//
// Scripts are ranked by the directory they live in, then by file name:
// anything under a directory whose path contains "lib" loads first, then
// anything whose directory path contains "core", then the rest. The match is
// a plain substring test on the directory portion, so "libraries-old/" and a
// themelet named "my-lib-kit" both rank as lib. Within a rank, files sort by
// name, and ties on name are broken by the full path so the result never
// depends on the order the filesystem listed the files in.
package order

import (
	"cmp"
	"path"
	"slices"
	"strings"
)

// Weights of the directory ranks. Lower weights load first.
const (
	WeightLibCore = 0
	WeightLib     = 1
	WeightCore    = 2
	WeightDefault = 3
)

// Key is the sort key of a script path.
type Key struct {
	// Weight is the directory rank.
	Weight int
	// Dir is everything up to and including the last "/".
	Dir string
	// File is the final path element.
	File string
	// Path is the full path, the last tie breaker.
	Path string
}

// keyOf splits a slash-separated path relative to the themelet script tree
// into its sort key.
func keyOf(p string) Key {
	dir, file := path.Split(p)
	return Key{
		Weight: Weight(dir),
		Dir:    dir,
		File:   file,
		Path:   p,
	}
}

// Weight returns the rank of a directory portion.
func Weight(dir string) int {
	lib := strings.Contains(dir, "lib")
	core := strings.Contains(dir, "core")

	switch {
	case lib && core:
		return WeightLibCore
	case lib:
		return WeightLib
	case core:
		return WeightCore
	default:
		return WeightDefault
	}
}

// Compare orders two keys. It is a total order over distinct paths.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.Weight, other.Weight); c != 0 {
		return c
	}
	if c := strings.Compare(k.File, other.File); c != 0 {
		return c
	}
	return strings.Compare(k.Path, other.Path)
}

// Compare returns -1 if a loads before b, 1 if after, and 0 only when a == b.
func Compare(a, b string) int {
	return keyOf(a).Compare(keyOf(b))
}

// Sort orders paths in place.
func Sort(paths []string) {
	slices.SortFunc(paths, Compare)
}
