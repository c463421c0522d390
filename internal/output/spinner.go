package output

import (
	"context"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Spin runs action behind a spinner titled title while stdout is a terminal,
// and calls it directly otherwise. The spinner draws on stderr so a report
// written to stdout is never interleaved with spinner frames. Cancelling ctx
// stops the spinner and is passed on to action.
func Spin(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	return spinner.New().
		Title(title).
		Style(lipgloss.NewStyle().Foreground(ColorCyan)).
		TitleStyle(StyleAction).
		Output(os.Stderr).
		Context(ctx).
		ActionWithErr(action).
		Run()
}
