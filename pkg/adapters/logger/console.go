// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/user/delogo/pkg/ports"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// ConsoleLogger writes human-readable lines to the console. Orchestration
// messages carry no prefix; stage and adapter loggers derived with
// WithComponent render a bracketed component tag.
type ConsoleLogger struct {
	level  ports.LogLevel
	prefix string // pre-rendered "[component] ", empty at orchestration level
	color  bool
}

// NewConsole creates a console logger at the given level. Colors are enabled
// when stdout is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	return &ConsoleLogger{
		level: level,
		color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// WithComponent returns a logger whose lines are tagged with the component
// name, e.g. "[accumulate]". The tag is rendered once here, not per line.
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	if l.color {
		prefix = colorCyan + "[" + component + "]" + colorReset + " "
	}
	return &ConsoleLogger{
		level:  l.level,
		prefix: prefix,
		color:  l.color,
	}
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.level <= ports.LevelDebug {
		l.log(ports.LevelDebug, msg, args...)
	}
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	if l.level <= ports.LevelInfo {
		l.log(ports.LevelInfo, msg, args...)
	}
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	if l.level <= ports.LevelWarn {
		l.log(ports.LevelWarn, msg, args...)
	}
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	if l.level <= ports.LevelError {
		l.log(ports.LevelError, msg, args...)
	}
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	// The message key is translated through go-l10n before formatting.
	line := l.prefix + l10n.F(msg, args...)

	if l.color {
		switch level {
		case ports.LevelDebug:
			line = colorGray + line + colorReset
		case ports.LevelWarn:
			line = colorYellow + line + colorReset
		case ports.LevelError:
			line = colorRed + line + colorReset
		}
	}

	// Progress goes to stdout; problems go to stderr.
	if level >= ports.LevelWarn {
		fmt.Fprintln(os.Stderr, line)
	} else {
		fmt.Fprintln(os.Stdout, line)
	}
}
