package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, level string) *bytes.Buffer {
	var buf bytes.Buffer
	Initialize(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() {
		Initialize(Config{Level: "info", Format: "console"})
	})
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestLogger_Fields(t *testing.T) {
	buf := captureJSON(t, "debug")

	Info("order placed", map[string]interface{}{"order_id": 7})

	entry := lastLine(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "order placed", entry["message"])
	assert.Equal(t, float64(7), entry["order_id"])
	assert.Contains(t, entry["caller"], "logger_test.go")
}

func TestLogger_Error(t *testing.T) {
	buf := captureJSON(t, "info")

	Error("checkout failed", errors.New("boom"))

	entry := lastLine(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	buf := captureJSON(t, "warn")

	Debug("hidden")
	Info("hidden")
	assert.Empty(t, buf.String())

	Warn("shown")
	assert.Equal(t, "shown", lastLine(t, buf)["message"])
}

func TestLogger_WithContext(t *testing.T) {
	buf := captureJSON(t, "info")

	WithContext(map[string]interface{}{"request_id": "abc"}).Info("handled")

	entry := lastLine(t, buf)
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "handled", entry["message"])
}
