package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, zerolog.DebugLevel, NewLogger("DEBUG", &buf).GetLevel())
	assert.Equal(t, zerolog.WarnLevel, NewLogger(" warn ", &buf).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger("invalid", &buf).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger("", &buf).GetLevel())
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("info", &buf)
	log.Debug().Msg("hidden")
	log.Info().Int("files", 40).Msg("day folder written")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "day folder written", line["message"])
	assert.Equal(t, float64(40), line["files"])
	assert.Contains(t, line, "time")
}
