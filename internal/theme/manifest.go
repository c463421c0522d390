// Package theme reads a theme project's package.json: the ordered list of
// declared themelets and the theme configuration the pipeline stages need.
//
// package.json is decoded through CUE rather than encoding/json so that the
// keys of liferayTheme.themeletDependencies keep their declaration order,
// and so that the sections themelet relies on are checked against the
// embedded #Package schema.
package theme

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	oerrors "github.com/lfrtheme/themelet/internal/errors"
	"github.com/lfrtheme/themelet/internal/output"
)

// ManifestFile is the project manifest name.
const ManifestFile = "package.json"

//go:embed schema/package.cue
var packageSchema string

// Manifest is a decoded package.json.
type Manifest struct {
	// Path is the absolute path of the package.json that was read.
	Path string

	config    Config
	themelets []string
}

// Themelets returns the declared themelet identifiers in declaration order.
// A manifest without liferayTheme or themeletDependencies, or with either
// set to null, declares none.
func (m *Manifest) Themelets() []string {
	out := make([]string, len(m.themelets))
	copy(out, m.themelets)
	return out
}

// Config returns the theme configuration.
func (m *Manifest) Config() Config {
	return m.config
}

// Resolve returns the themelets declared by the project in projectDir.
func Resolve(projectDir string) ([]string, error) {
	m, err := LoadManifest(projectDir)
	if err != nil {
		return nil, err
	}
	return m.Themelets(), nil
}

// LoadManifest reads and validates <projectDir>/package.json.
func LoadManifest(projectDir string) (*Manifest, error) {
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}
	path := filepath.Join(absDir, ManifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(
				"no package.json in project directory",
				path,
				"Run themelet from the theme root or pass the project directory as an argument.",
			)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, oerrors.NewPermissionError(
				"cannot read package.json",
				map[string]string{"path": path},
				"Check the file permissions of the theme project.",
			)
		}
		return nil, oerrors.WrapIO(err, "reading", path)
	}

	m, err := parseManifest(path, data)
	if err != nil {
		return nil, err
	}

	output.Debug("loaded theme manifest",
		"path", path,
		"name", m.config.Name,
		"version", m.config.Version,
		"themelets", len(m.themelets),
	)
	return m, nil
}

// parseManifest decodes package.json bytes. path is used for error locations only.
func parseManifest(path string, data []byte) (*Manifest, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(packageSchema, cue.Filename("package.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling package schema: %w", err)
	}

	expr, err := cuejson.Extract(path, data)
	if err != nil {
		return nil, oerrors.NewValidationError(
			"package.json is not valid JSON: "+firstMessage(err),
			path, "", "",
		)
	}
	value := ctx.BuildExpr(expr)
	if err := value.Err(); err != nil {
		return nil, oerrors.NewValidationError(firstMessage(err), path, "", "")
	}

	unified := schema.LookupPath(cue.ParsePath("#Package")).Unify(value)
	if err := unified.Validate(); err != nil {
		return nil, schemaError(path, err)
	}

	m := &Manifest{Path: path}

	m.config.Name = lookupString(value, "name")
	m.config.Version = lookupString(value, "liferayTheme.version")
	if m.config.Version == "" {
		m.config.Version = FormatCurrent
	}
	m.config.Language = lookupString(value, "liferayTheme.templateLanguage")

	// Iterate the data value, not the unified one: its field order is exactly
	// the order of the JSON object.
	deps := value.LookupPath(cue.ParsePath("liferayTheme.themeletDependencies"))
	if deps.Exists() && deps.Kind() == cue.StructKind {
		iter, err := deps.Fields()
		if err != nil {
			return nil, schemaError(path, err)
		}
		for iter.Next() {
			m.themelets = append(m.themelets, iter.Selector().Unquoted())
		}
	}

	return m, nil
}

// lookupString returns the string at path, or "" if absent.
func lookupString(v cue.Value, path string) string {
	s, err := v.LookupPath(cue.ParsePath(path)).String()
	if err != nil {
		return ""
	}
	return s
}

// schemaError converts a CUE validation error into a DetailError naming
// the first offending field.
func schemaError(path string, err error) error {
	var field string
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		field = strings.Join(errs[0].Path(), ".")
	}
	return oerrors.NewValidationError(
		firstMessage(err),
		path,
		field,
		"liferayTheme.version must be \"6.2\" or \"7.0\" and templateLanguage \"ftl\" or \"vm\".",
	)
}

// firstMessage returns the message of the first error in a CUE error list.
func firstMessage(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	format, args := errs[0].Msg()
	return fmt.Sprintf(format, args...)
}
