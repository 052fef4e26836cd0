package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
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

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path, language, format string) {
	l.Debug("config loaded",
		"path", path,
		"language", language,
		"format", format)
}

// RenderStarted logs the start of a document render
func (l *Logger) RenderStarted(file, format string) {
	l.Debug("render started",
		"file", file,
		"format", format)
}

// RenderCompleted logs a successful document render
func (l *Logger) RenderCompleted(file string, bytes int, duration time.Duration) {
	l.Info("render completed",
		"file", file,
		"bytes", bytes,
		"duration", duration.Round(time.Millisecond))
}

// IndexCompleted logs a successful tsvector compilation
func (l *Logger) IndexCompleted(file string, bytes int, duration time.Duration) {
	l.Info("index completed",
		"file", file,
		"bytes", bytes,
		"duration", duration.Round(time.Millisecond))
}

// TokensListed logs a completed tokenizer run
func (l *Logger) TokensListed(file string, count int) {
	l.Debug("tokens listed",
		"file", file,
		"count", count)
}

// ParseFailed logs a parse error for a specific document
func (l *Logger) ParseFailed(file string, err error) {
	l.Error("parse failed",
		"file", file,
		"error", err)
}

// MacroRegistered logs the registration of a macro
func (l *Logger) MacroRegistered(name string) {
	l.Debug("macro registered", "name", name)
}
