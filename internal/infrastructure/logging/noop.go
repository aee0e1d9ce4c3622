package logging

import (
	"context"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

// NoOpLogger discards all log entries. It is the default for library
// consumers that do not inject a logger.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(context.Context, string, ...interface{}) {}

func (n *NoOpLogger) Info(context.Context, string, ...interface{}) {}

func (n *NoOpLogger) Warn(context.Context, string, ...interface{}) {}

func (n *NoOpLogger) Error(context.Context, string, ...interface{}) {}

func (n *NoOpLogger) With(...interface{}) ports.Logger { return n }

// NewNoOpLogger returns a ports.Logger that discards all log entries.
func NewNoOpLogger() ports.Logger {
	return &NoOpLogger{}
}

// OrNoOp returns logger, or a NoOpLogger when logger is nil.
func OrNoOp(logger ports.Logger) ports.Logger {
	if logger == nil {
		return NewNoOpLogger()
	}
	return logger
}
