// Package hclog adapts hashicorp/go-hclog to the domain Logger interface.
package hclog

import (
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/signdroid/signdroid/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of hashicorp/go-hclog
type Logger struct {
	backend hclog.Logger
}

// New creates a leveled logger writing to w. Unknown level strings fall back
// to info.
func New(name, level string, w io.Writer) *Logger {
	return &Logger{
		backend: hclog.New(&hclog.LoggerOptions{
			Name:   name,
			Level:  hclog.LevelFromString(level),
			Output: w,
		}),
	}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.backend.Debug(msg, flatten(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.backend.Info(msg, flatten(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.backend.Warn(msg, flatten(fields)...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.backend.Error(msg, flatten(fields)...)
}

// flatten converts domain fields to hclog's alternating key/value form
func flatten(fields []interfaces.Field) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
}
