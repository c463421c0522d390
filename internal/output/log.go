package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-level logger. Commands reconfigure it through SetupLogging.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	ReportCaller:    false,
})

// LogConfig controls logger setup.
type LogConfig struct {
	// Verbose enables debug level, timestamps and caller reporting.
	Verbose bool

	// Timestamps controls whether timestamps are shown. nil means the default (true).
	// Verbose forces timestamps on regardless of this value.
	Timestamps *bool
}

// SetupLogging configures the logger based on verbosity and timestamp preference.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// SetWriter redirects log output, keeping the current level and options.
// Used by tests and by commands that capture diagnostics.
func SetWriter(w io.Writer) {
	logger.SetOutput(w)
}

// ThemeletLogger returns a child logger whose lines are prefixed with the
// themelet identifier.
func ThemeletLogger(id string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("t:") + StyleNoun.Render(id))
}

// StageLogger returns a child logger prefixed with a pipeline stage name.
func StageLogger(stage string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("s:") + stage)
}

// BoolPtr returns a pointer to b. Used for optional config booleans.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}
