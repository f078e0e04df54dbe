package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel(" warn ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := New(&buffer, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("measured release", "tag", "v1.0")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &record))
	assert.Equal(t, "measured release", record["msg"])
	assert.Equal(t, "v1.0", record["tag"])
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.Error(t, err)
}
