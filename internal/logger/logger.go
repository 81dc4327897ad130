package logger

import (
	"time"

	"github.com/harrison/treedump/internal/aggregate"
)

// Logger is the logging surface used by the CLI commands.
// Both ConsoleLogger and FileLogger implement it, and it satisfies
// aggregate.Logger.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogRunStart(root, output string)
	LogSummary(summary *aggregate.Summary, duration time.Duration)
}

// MultiLogger fans every call out to each of its loggers in order.
type MultiLogger []Logger

// NewMultiLogger combines loggers, dropping nil entries.
func NewMultiLogger(loggers ...Logger) MultiLogger {
	m := make(MultiLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			m = append(m, l)
		}
	}
	return m
}

func (m MultiLogger) LogTrace(message string) {
	for _, l := range m {
		l.LogTrace(message)
	}
}

func (m MultiLogger) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

func (m MultiLogger) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

func (m MultiLogger) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

func (m MultiLogger) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}

func (m MultiLogger) LogRunStart(root, output string) {
	for _, l := range m {
		l.LogRunStart(root, output)
	}
}

func (m MultiLogger) LogSummary(summary *aggregate.Summary, duration time.Duration) {
	for _, l := range m {
		l.LogSummary(summary, duration)
	}
}

var (
	_ Logger           = (*ConsoleLogger)(nil)
	_ Logger           = (*FileLogger)(nil)
	_ Logger           = MultiLogger(nil)
	_ aggregate.Logger = MultiLogger(nil)
)
