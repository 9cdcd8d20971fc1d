// Package logger provides structured logging for the storefront services.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry with the component name attached so every
// service logs under a stable "component" field.
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
}

// NewDefault creates a logger for the named component writing JSON to stderr.
// The level is taken from LOG_LEVEL when set, defaulting to info.
func NewDefault(component string) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.JSONFormatter{})

	level := logrus.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	base.SetLevel(level)

	return &Logger{
		base:  base,
		entry: base.WithField("component", component),
	}
}

// SetOutput redirects all output of this logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// WithField returns a logger carrying an additional structured field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithField(key, value)}
}

// WithFields returns a logger carrying the given structured fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithError returns a logger carrying the error as a structured field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *Logger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *Logger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *Logger) Error(args ...interface{}) { l.entry.Error(args...) }
func (l *Logger) Fatal(args ...interface{}) { l.entry.Fatal(args...) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
