package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"command": "mode", "config": "themekit.yaml"})
	log.Info("loading configuration")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "loading configuration", entry["message"])
	require.Equal(t, "mode", entry["command"])
	require.Equal(t, "themekit.yaml", entry["config"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"path": "config.yaml"})
	log.Error(errors.New("boom"), "failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "failed", entry["message"])
	require.Equal(t, "config.yaml", entry["path"])
	require.Equal(t, "boom", entry["error"])
}

func TestPortAdapterWritesFieldsAndCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	port := log.Port().With("component", "mode")
	ctx := ports.WithCorrelationID(context.Background(), "cid-1")
	port.Warn(ctx, "persistence unavailable", "key", "themekit.mode")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "mode", entry["component"])
	require.Equal(t, "themekit.mode", entry["key"])
	require.Equal(t, "cid-1", entry["correlation_id"])
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "verbose"})
	require.Error(t, err)
}
