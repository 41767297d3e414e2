package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw    string
		want   zerolog.Level
		wantOK bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARN ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"verbose", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseLevel(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNewJSON(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogJSON, "")

	var buf bytes.Buffer
	logger := New("mpssectl", Options{Level: "debug", JSON: true, Out: &buf})
	logger.Debug().Int("len", 3).Msg("send")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "mpssectl", entry["app"])
	assert.Equal(t, "send", entry["message"])
	assert.Equal(t, float64(3), entry["len"])
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogJSON, "true")

	var buf bytes.Buffer
	logger := New("mpssectl", Options{Level: "debug", Out: &buf})
	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	logger.Error().Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
