package logger

import "github.com/user/delogo/pkg/ports"

// NoopLogger discards everything. Selected with --quiet and used as the
// default logger in tests.
type NoopLogger struct{}

// NewNoop creates a no-op logger.
func NewNoop() NoopLogger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...interface{}) {}
func (NoopLogger) Info(string, ...interface{})  {}
func (NoopLogger) Warn(string, ...interface{})  {}
func (NoopLogger) Error(string, ...interface{}) {}

// WithComponent returns the logger unchanged; there is nothing to tag.
func (l NoopLogger) WithComponent(string) ports.Logger {
	return l
}

var _ ports.Logger = NoopLogger{}
