package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks the configuration for values the pipeline cannot use.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs ValidationErrors

	if cfg.BuildDir != "" && strings.TrimSpace(cfg.BuildDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "buildDir",
			Message: "must not be empty or whitespace only",
		})
	}
	if cfg.NodeModulesDir != "" && strings.TrimSpace(cfg.NodeModulesDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "nodeModulesDir",
			Message: "must not be empty or whitespace only",
		})
	}
	if cfg.BuildDir != "" && cfg.BuildDir == cfg.NodeModulesDir {
		errs = append(errs, ValidationError{
			Field:   "buildDir",
			Message: "must differ from nodeModulesDir",
		})
	}
	if filepath.Clean(cfg.BuildDir) == "." && cfg.BuildDir != "" {
		errs = append(errs, ValidationError{
			Field:   "buildDir",
			Message: "must not be the project root",
		})
	}
	if cfg.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
