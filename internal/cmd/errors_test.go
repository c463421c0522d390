package cmd

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/lfrtheme/themelet/internal/errors"
	"github.com/lfrtheme/themelet/internal/pipeline"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			wantCode: ExitSuccess,
		},
		{
			name:     "validation error",
			err:      oerrors.ErrValidation,
			wantCode: ExitValidationError,
		},
		{
			name:     "detailed validation error",
			err:      oerrors.NewValidationError("bad version", "package.json", "liferayTheme.version", ""),
			wantCode: ExitValidationError,
		},
		{
			name:     "permission error",
			err:      oerrors.NewPermissionError("cannot read", nil, ""),
			wantCode: ExitPermissionDenied,
		},
		{
			name:     "not found error",
			err:      oerrors.NewNotFoundError("package.json not found", "/srv/theme", ""),
			wantCode: ExitNotFound,
		},
		{
			name:     "io error inside a stage",
			err:      &pipeline.StageError{Stage: "aggregate-js", Err: oerrors.WrapIO(os.ErrClosed, "copy", "/x")},
			wantCode: ExitGeneralError,
		},
		{
			name:     "explicit exit error wins",
			err:      fmt.Errorf("lint: %w", &ExitError{Code: ExitValidationError, Err: errors.New("3 findings")}),
			wantCode: ExitValidationError,
		},
		{
			name:     "unknown error returns general error",
			err:      errors.New("unknown error"),
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Validation Error", ExitCodeName(ExitValidationError))
	assert.Equal(t, "Not Found", ExitCodeName(ExitNotFound))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}

func TestExitError(t *testing.T) {
	inner := oerrors.ErrNotFound
	err := exitError(inner)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitNotFound, exitErr.Code)
	assert.False(t, exitErr.Printed)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
	assert.Equal(t, inner.Error(), err.Error())

	assert.Same(t, exitErr, exitError(exitErr))
	assert.NoError(t, exitError(nil))
	assert.Equal(t, "exit status 2", (&ExitError{Code: 2}).Error())
}
