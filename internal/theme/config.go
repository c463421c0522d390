package theme

// Supported theme format versions.
const (
	FormatLegacy  = "6.2"
	FormatCurrent = "7.0"
)

// Template languages.
const (
	LanguageFreeMarker = "ftl"
	LanguageVelocity   = "vm"
)

// Config is the per-project theme configuration handed to the aggregation
// and injection stages. It is read once from package.json and passed
// explicitly; nothing downstream looks it up again.
type Config struct {
	// Name is the package name; it is the theme context path in script URLs.
	Name string `json:"name" yaml:"name"`

	// Version is the theme format version, FormatLegacy or FormatCurrent.
	Version string `json:"version" yaml:"version"`

	// Language is the configured template language. Empty means the
	// version default; use TemplateLanguage for the effective value.
	Language string `json:"templateLanguage,omitempty" yaml:"templateLanguage,omitempty"`
}

// IsLegacy reports whether the theme uses the 6.2 layout.
func (c Config) IsLegacy() bool {
	return c.Version == FormatLegacy
}

// CSSEntryFile is the stylesheet that receives @import lines.
func (c Config) CSSEntryFile() string {
	if c.IsLegacy() {
		return "custom.css"
	}
	return "_custom.scss"
}

// TemplateLanguage returns the configured language, else vm for 6.2 and ftl otherwise.
func (c Config) TemplateLanguage() string {
	if c.Language != "" {
		return c.Language
	}
	if c.IsLegacy() {
		return LanguageVelocity
	}
	return LanguageFreeMarker
}

// TemplateEntryFile is the page template that receives script tags.
func (c Config) TemplateEntryFile() string {
	return "portal_normal." + c.TemplateLanguage()
}
