package pipeline

import (
	"fmt"

	oerrors "github.com/lfrtheme/themelet/internal/errors"
)

// StageError indicates a stage failed and the build stopped.
type StageError struct {
	// Stage is the failing stage name (e.g. "aggregate-js").
	Stage string

	// Err is the underlying failure.
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying failure.
func (e *StageError) Unwrap() error {
	return e.Err
}

// errProjectRequired is returned by Options.Validate when no project directory is set.
var errProjectRequired = oerrors.NewValidationError(
	"project directory is required",
	"", "",
	"Pass the theme project directory as an argument.",
)
