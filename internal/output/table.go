package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableWarnStyle   = tableCellStyle.Foreground(ColorYellow)
)

// Table is a bordered listing. Rows added with Warn are highlighted, e.g. a
// declared themelet that is not installed.
type Table struct {
	tbl  *table.Table
	rows int
	warn map[int]bool
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	t := &Table{warn: make(map[int]bool)}
	t.tbl = table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorDimGray)).
		Headers(headers...).
		StyleFunc(t.style)
	return t
}

// Row appends a row.
func (t *Table) Row(cells ...string) *Table {
	t.tbl.Row(cells...)
	t.rows++
	return t
}

// Warn appends a highlighted row.
func (t *Table) Warn(cells ...string) *Table {
	t.warn[t.rows] = true
	return t.Row(cells...)
}

// String renders the table.
func (t *Table) String() string {
	return t.tbl.String()
}

func (t *Table) style(row, _ int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return tableHeaderStyle
	case t.warn[row]:
		return tableWarnStyle
	default:
		return tableCellStyle
	}
}
