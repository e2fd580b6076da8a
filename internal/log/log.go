// ABOUTME: Leveled logging for the CLI, backed by charmbracelet/log
// ABOUTME: Global level via SetLevel; writes to stderr so stdout stays parseable

package log

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Level constants, ordered like slog levels.
const (
	LevelDebug = charmlog.DebugLevel
	LevelInfo  = charmlog.InfoLevel
	LevelWarn  = charmlog.WarnLevel
	LevelError = charmlog.ErrorLevel
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	Prefix: "clib",
	Level:  LevelInfo,
})

// SetLevel sets the global log level.
func SetLevel(l charmlog.Level) {
	logger.SetLevel(l)
}

// GetLevel returns the current log level.
func GetLevel() charmlog.Level {
	return logger.GetLevel()
}

// ParseLevel maps "debug", "info", "warn" or "error" to a level.
func ParseLevel(s string) (charmlog.Level, error) {
	return charmlog.ParseLevel(s)
}

// SetOutput redirects log output; tests use it to capture messages.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	logger.Errorf(format, args...)
}
