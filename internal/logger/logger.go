package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger wraps zerolog for the CLI bootstrap path: failures that happen
// before configuration is loaded, and the zerolog log backend.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: logger}, nil
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}

// Port adapts the logger to ports.Logger so domain components can log
// through zerolog when it is the configured backend.
func (l *Logger) Port() ports.Logger {
	if l == nil {
		return portAdapter{base: zerolog.Nop()}
	}
	return portAdapter{base: l.base}
}

type portAdapter struct {
	base zerolog.Logger
}

func (a portAdapter) Debug(ctx context.Context, msg string, fields ...interface{}) {
	a.emit(ctx, a.base.Debug(), msg, fields)
}

func (a portAdapter) Info(ctx context.Context, msg string, fields ...interface{}) {
	a.emit(ctx, a.base.Info(), msg, fields)
}

func (a portAdapter) Warn(ctx context.Context, msg string, fields ...interface{}) {
	a.emit(ctx, a.base.Warn(), msg, fields)
}

func (a portAdapter) Error(ctx context.Context, msg string, fields ...interface{}) {
	a.emit(ctx, a.base.Error(), msg, fields)
}

func (a portAdapter) With(fields ...interface{}) ports.Logger {
	return portAdapter{base: a.base.With().Fields(fields).Logger()}
}

func (a portAdapter) emit(ctx context.Context, event *zerolog.Event, msg string, fields []interface{}) {
	if event == nil {
		return
	}
	if id := ports.GetCorrelationID(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}
	event.Fields(fields).Msg(msg)
}
