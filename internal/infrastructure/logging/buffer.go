package logging

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

const defaultBufferLimit = 1000

// Level is the severity of a buffered entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBU"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERRO"
	default:
		return "INFO"
	}
}

// Entry is one buffered log call.
type Entry struct {
	ctx    context.Context
	Level  Level
	Msg    string
	Fields []interface{}
}

// String renders the entry on one line as "LEVL msg key=value ...".
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Level.String())
	b.WriteByte(' ')
	b.WriteString(e.Msg)
	for i := 0; i+1 < len(e.Fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.Fields[i], e.Fields[i+1])
	}
	return b.String()
}

// EventBuffer is a bounded ring of log entries. The CLI buffers entries
// emitted before configuration is loaded, and the preview keeps its recent
// log lines in one.
type EventBuffer struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
}

// NewEventBuffer creates a buffer with the provided capacity (defaults to 1000).
func NewEventBuffer(limit int) *EventBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &EventBuffer{
		limit:   limit,
		entries: make([]Entry, 0, limit),
	}
}

func (b *EventBuffer) add(entry Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == b.limit {
		copy(b.entries, b.entries[1:])
		b.entries[len(b.entries)-1] = entry
		return
	}
	b.entries = append(b.entries, entry)
}

// Recent returns up to n of the newest entries, oldest first.
func (b *EventBuffer) Recent(n int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]Entry, n)
	copy(out, b.entries[len(b.entries)-n:])
	return out
}

// Len returns the number of buffered entries.
func (b *EventBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Flush replays buffered entries using the provided logger, preserving order,
// and empties the buffer.
func (b *EventBuffer) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	b.entries = b.entries[:0]
	b.mu.Unlock()

	for _, entry := range entries {
		switch entry.Level {
		case LevelDebug:
			delegate.Debug(entry.ctx, entry.Msg, entry.Fields...)
		case LevelWarn:
			delegate.Warn(entry.ctx, entry.Msg, entry.Fields...)
		case LevelError:
			delegate.Error(entry.ctx, entry.Msg, entry.Fields...)
		default:
			delegate.Info(entry.ctx, entry.Msg, entry.Fields...)
		}
	}
}

// BufferedLogger implements ports.Logger by writing into an EventBuffer.
type BufferedLogger struct {
	buffer *EventBuffer
	fields []interface{}
}

// NewBufferedLogger returns a logger that stores entries in the provided buffer.
func NewBufferedLogger(buffer *EventBuffer) *BufferedLogger {
	return &BufferedLogger{buffer: buffer}
}

func (l *BufferedLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelDebug, msg, fields...)
}

func (l *BufferedLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelInfo, msg, fields...)
}

func (l *BufferedLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelWarn, msg, fields...)
}

func (l *BufferedLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelError, msg, fields...)
}

// With returns a child buffered logger with persistent fields.
func (l *BufferedLogger) With(fields ...interface{}) ports.Logger {
	next := append(append([]interface{}{}, l.fields...), fields...)
	return &BufferedLogger{buffer: l.buffer, fields: next}
}

func (l *BufferedLogger) log(ctx context.Context, level Level, msg string, fields ...interface{}) {
	if l == nil || l.buffer == nil {
		return
	}
	payload := append(append([]interface{}{}, l.fields...), fields...)
	l.buffer.add(Entry{
		ctx:    ctx,
		Level:  level,
		Msg:    msg,
		Fields: payload,
	})
}

var _ ports.Logger = (*BufferedLogger)(nil)
