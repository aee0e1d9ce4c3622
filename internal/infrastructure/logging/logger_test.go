package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	cblog "github.com/charmbracelet/log"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

func TestLoggerIncludesCorrelationIDAndLayer(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:     &buf,
		Level:      "debug",
		Format:     "json",
		Layer:      "domain",
		Component:  "mode",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := ports.WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "mode changed", "mode", "dark")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log output, got empty string")
	}

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}

	if payload["layer"] != "domain" {
		t.Fatalf("expected layer to be domain, got %v", payload["layer"])
	}
	if payload["component"] != "mode" {
		t.Fatalf("expected component field, got %v", payload["component"])
	}
	if payload["correlation_id"] != "abc123" {
		t.Fatalf("expected correlation_id to be abc123, got %v", payload["correlation_id"])
	}
	if payload["mode"] != "dark" {
		t.Fatalf("expected mode to be recorded, got %v", payload["mode"])
	}
	if payload["msg"] != "mode changed" {
		t.Fatalf("expected message to be recorded, got %v", payload["msg"])
	}
}

func TestLoggerWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Formatter: cblog.JSONFormatter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := logger.With("component", "resolver").(*Logger)
	child.Warn(context.Background(), "unknown token", "token", "primry")

	line := strings.TrimSpace(buf.String())
	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}

	if payload["component"] != "resolver" {
		t.Fatalf("expected component=resolver, got %v", payload["component"])
	}
	if payload["token"] != "primry" {
		t.Fatalf("expected token primry, got %v", payload["token"])
	}
	if payload["layer"] != "infrastructure" {
		t.Fatalf("expected default layer infrastructure, got %v", payload["layer"])
	}
}

func TestLoggerWithOverridesLayer(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Formatter: cblog.JSONFormatter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.With("layer", "application").Info(context.Background(), "ready")

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if payload["layer"] != "application" {
		t.Fatalf("expected layer application, got %v", payload["layer"])
	}
}

func TestNewRejectsUnknownLevelAndFormat(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNoOpLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Formatter: cblog.JSONFormatter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")

	if buf.Len() != 0 {
		t.Fatalf("expected no output from noop logger, got %s", buf.String())
	}

	if noOp.With("key", "value") != noOp {
		t.Fatalf("expected With to return same no-op logger instance")
	}
	if OrNoOp(nil) == nil {
		t.Fatal("expected OrNoOp to substitute a logger")
	}

	logger.Info(context.Background(), "emitted")
	if buf.Len() == 0 {
		t.Fatal("expected base logger to write output")
	}
}

func TestBufferedLoggerStoresAndFlushes(t *testing.T) {
	buffer := NewEventBuffer(10)
	bufLogger := NewBufferedLogger(buffer)

	ctx := ports.WithCorrelationID(context.Background(), "buffered")
	bufLogger.Info(ctx, "booting", "component", "bootstrap")
	bufLogger.With("component", "storage").Error(ctx, "failed", "attempt", 1)

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output, Formatter: cblog.JSONFormatter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buffer.Flush(delegate)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("failed to parse first log line: %v", err)
	}
	if first["msg"] != "booting" || first["component"] != "bootstrap" {
		t.Fatalf("unexpected first event payload: %+v", first)
	}

	var second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("failed to parse second log line: %v", err)
	}
	if second["msg"] != "failed" || second["component"] != "storage" {
		t.Fatalf("unexpected second event payload: %+v", second)
	}
	if second["correlation_id"] != "buffered" {
		t.Fatalf("expected correlation id to be preserved, got %v", second["correlation_id"])
	}
	if buffer.Len() != 0 {
		t.Fatalf("expected flush to empty the buffer, got %d entries", buffer.Len())
	}
}

func TestEventBufferRecentKeepsNewest(t *testing.T) {
	buffer := NewEventBuffer(3)
	log := NewBufferedLogger(buffer)
	for _, msg := range []string{"a", "b", "c", "d"} {
		log.Info(context.Background(), msg)
	}

	recent := buffer.Recent(2)
	if len(recent) != 2 || recent[0].Msg != "c" || recent[1].Msg != "d" {
		t.Fatalf("unexpected recent entries: %+v", recent)
	}
	if got := len(buffer.Recent(0)); got != 3 {
		t.Fatalf("expected ring to hold 3 entries, got %d", got)
	}

	log.With("mode", "dark").Warn(context.Background(), "switched")
	if got := buffer.Recent(1)[0].String(); got != "WARN switched mode=dark" {
		t.Fatalf("unexpected rendering %q", got)
	}
}
