package logger

import (
	"github.com/ideamans/go-l10n"
	"github.com/user/delogo/pkg/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger emits structured JSON log lines through zap. It is selected
// with --log-json, for running delogo inside a larger processing service
// where the console format is not machine-readable.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZap creates a JSON logger at the specified level.
func NewZap(level ports.LogLevel) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	cfg.DisableStacktrace = true

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: zl.Sugar()}, nil
}

// Debug logs a debug message.
func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugf(l10n.T(msg), args...)
}

// Info logs an informational message.
func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.sugar.Infof(l10n.T(msg), args...)
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnf(l10n.T(msg), args...)
}

// Error logs an error message.
func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.sugar.Errorf(l10n.T(msg), args...)
}

// WithComponent returns a logger named after the component.
func (l *ZapLogger) WithComponent(component string) ports.Logger {
	return &ZapLogger{sugar: l.sugar.Named(component)}
}

// Sync flushes buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

func zapLevel(level ports.LogLevel) zapcore.Level {
	switch level {
	case ports.LevelDebug:
		return zapcore.DebugLevel
	case ports.LevelInfo:
		return zapcore.InfoLevel
	case ports.LevelWarn:
		return zapcore.WarnLevel
	case ports.LevelError:
		return zapcore.ErrorLevel
	case ports.LevelQuiet:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

var _ ports.Logger = (*ZapLogger)(nil)
