package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleHandler_WritesJSONAndConsole(t *testing.T) {
	color.NoColor = true

	var jsonBuf, consoleBuf bytes.Buffer
	log := slog.New(NewConsoleHandler(&consoleBuf, &jsonBuf, slog.LevelInfo, "facility"))

	log.With("component", "report").Warn("shift anomaly", "person_id", "P001")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &entry))
	assert.Equal(t, "shift anomaly", entry["msg"])
	assert.Equal(t, "facility", entry["service"])
	assert.Equal(t, "report", entry["component"])
	assert.Equal(t, "P001", entry["person_id"])
	assert.Contains(t, entry, "timestamp")

	assert.Contains(t, consoleBuf.String(), "WARN")
	assert.Contains(t, consoleBuf.String(), "shift anomaly component=report person_id=P001")
}

func TestConsoleHandler_RespectsLevel(t *testing.T) {
	var jsonBuf bytes.Buffer
	log := slog.New(NewConsoleHandler(nil, &jsonBuf, slog.LevelWarn, "facility"))

	log.Info("hidden")
	assert.Empty(t, jsonBuf.String())

	log.Error("shown")
	assert.Contains(t, jsonBuf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
