package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file and copies every
// entry to also
func NewFileLogger(path string, level log.Level, also ...io.Writer) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewMultiLogger(level, append([]io.Writer{f}, also...)...), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	return NewWithLevel(io.MultiWriter(writers...), level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel maps a level name to a log level. Unknown names fall back
// to info.
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ParseCompleted logs a finished parse
func (l *Logger) ParseCompleted(file string, nodes int, duration time.Duration) {
	l.Debug("parse completed",
		"file", file,
		"nodes", nodes,
		"duration", duration.Round(time.Microsecond))
}

// RenderCompleted logs a finished export
func (l *Logger) RenderCompleted(file, format string, bytes int) {
	l.Debug("render completed",
		"file", file,
		"format", format,
		"bytes", bytes)
}

// RenderFailed logs an export that stopped on a handler error
func (l *Logger) RenderFailed(file, format string, err error) {
	l.Error("render failed",
		"file", file,
		"format", format,
		"error", err)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// InvalidTree logs structural problems found after parsing
func (l *Logger) InvalidTree(file string, err error) {
	l.Warn("invalid tree",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, maxDepth int, disabled []string) {
	l.Debug("config loaded",
		"path", path,
		"max_depth", maxDepth,
		"disabled", disabled)
}

// RoundtripChecked logs the result of a round-trip comparison
func (l *Logger) RoundtripChecked(file string, clean bool) {
	l.Info("roundtrip checked",
		"file", file,
		"clean", clean)
}
