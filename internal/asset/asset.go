// Package asset defines the themelet asset categories and the record of a
// staged asset.
package asset

// Category is one of the four asset kinds a themelet can contribute.
type Category string

// Asset categories, in the order the build processes them.
const (
	CSS       Category = "css"
	Images    Category = "images"
	JS        Category = "js"
	Templates Category = "templates"
)

// Categories lists every category.
var Categories = []Category{CSS, Images, JS, Templates}

// ThemeletsDir is the subtree below each category directory that holds
// aggregated themelet assets.
const ThemeletsDir = "themelets"

// Pattern returns the doublestar pattern selecting this category's files,
// relative to a themelet's src/<category> directory. Images take every file.
func (c Category) Pattern() string {
	switch c {
	case CSS:
		return "**/*.{css,scss}"
	case JS:
		return "**/*.js"
	case Templates:
		return "**/*.{ftl,vm}"
	default:
		return "**/*"
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Staged is one file copied into the build tree during aggregation.
// It is never modified after aggregation.
type Staged struct {
	// Path is the absolute destination path.
	Path string `json:"path" yaml:"path"`

	// Themelet is the identifier of the themelet that contributed the file.
	Themelet string `json:"themelet" yaml:"themelet"`

	// Category is the asset category.
	Category Category `json:"category" yaml:"category"`
}
