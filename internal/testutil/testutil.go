// Package testutil provides test helpers for building theme projects on disk.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of dir/name, failing the test if it cannot be read.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// PackageJSON renders a package.json declaring themelets in the given order.
// An empty version omits liferayTheme.version.
func PackageJSON(name, version string, themelets ...string) string {
	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString("  \"name\": " + strconv.Quote(name) + ",\n")
	b.WriteString("  \"version\": \"1.0.0\",\n")
	b.WriteString("  \"liferayTheme\": {\n")
	b.WriteString("    \"baseTheme\": \"styled\"")
	if version != "" {
		b.WriteString(",\n    \"version\": " + strconv.Quote(version))
	}
	b.WriteString(",\n    \"themeletDependencies\": {")
	for i, id := range themelets {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n      " + strconv.Quote(id) + ": {\"liferayTheme\": {\"themelet\": true}, \"version\": \"1.0.0\"}")
	}
	if len(themelets) > 0 {
		b.WriteString("\n    ")
	}
	b.WriteString("}\n  }\n}\n")
	return b.String()
}

// Project is a theme project laid out in a temporary directory.
type Project struct {
	t *testing.T

	// Dir is the project root.
	Dir string
}

// NewProject creates a project directory holding the given package.json.
func NewProject(t *testing.T, packageJSON string) *Project {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, "package.json", packageJSON)
	return &Project{t: t, Dir: dir}
}

// BuildDir returns the default build directory of the project.
func (p *Project) BuildDir() string {
	return filepath.Join(p.Dir, "build")
}

// Themelet writes a source file of an installed themelet.
// rel is relative to node_modules/<id>/src, e.g. "js/lib/util.js".
func (p *Project) Themelet(id, rel, content string) string {
	p.t.Helper()
	return WriteFile(p.t, filepath.Join(p.Dir, "node_modules", id, "src"), rel, content)
}

// Build writes a file into the build directory, e.g. "css/_custom.scss".
func (p *Project) Build(rel, content string) string {
	p.t.Helper()
	return WriteFile(p.t, p.BuildDir(), rel, content)
}

// ReadBuild reads a file from the build directory.
func (p *Project) ReadBuild(rel string) string {
	p.t.Helper()
	return ReadFile(p.t, p.BuildDir(), rel)
}
