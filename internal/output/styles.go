package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: themelet ids, file paths, theme names.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "copied" and "injected" statuses.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings and the "skipped" status.
	ColorYellow = lipgloss.Color("220")

	// colorMagenta highlights file names inside warnings.
	colorMagenta = lipgloss.Color("213")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (themelet ids, paths, theme names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (aggregating, injecting, linting).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleFile styles file names called out in warnings.
	StyleFile = lipgloss.NewStyle().Foreground(colorMagenta)
)

// Asset status constants.
const (
	StatusCopied    = "copied"
	StatusInjected  = "injected"
	StatusSkipped   = "skipped"
	StatusUnchanged = "unchanged"
	statusFailed    = "failed"
)

// statusStyle returns the lipgloss style for a given asset status string.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCopied, StatusInjected:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minAssetColumnWidth is the minimum width for the asset path column
// before the status suffix. This keeps status words aligned.
const minAssetColumnWidth = 48

// FormatAssetLine renders an asset path with a right-aligned, color-coded
// status suffix.
//
// Format: a:<category>/<path>  <status>
func FormatAssetLine(category, path, status string) string {
	full := category + "/" + path

	padding := minAssetColumnWidth - len(full)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("a:")
	styledPath := StyleNoun.Render(full)
	styledStatus := statusStyle(status).Render(status)

	return prefix + styledPath + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// checkLabelWidth is the column where FormatCheck details start.
const checkLabelWidth = 28

// FormatCheck renders a checkmark line with a label and an aligned, dimmed
// detail. An empty detail renders only the label.
func FormatCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}

	padding := checkLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}

// FormatWarning renders the "Warning:" prefix used for non-fatal build
// diagnostics, followed by the message and the highlighted file name.
func FormatWarning(msg, file string) string {
	prefix := lipgloss.NewStyle().Foreground(ColorYellow).Render("Warning:")
	if file == "" {
		return prefix + " " + msg
	}
	return prefix + " " + msg + " " + StyleFile.Render(file)
}
