package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdevnel/device-portal/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNewWithWriter_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "info", Service: "device-portal"}, &buf)

	l.Debug().Msg("hidden")
	l.Info().Int("quote_id", 7).Msg("quote created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "quote created", entry["message"])
	assert.Equal(t, "device-portal", entry["service"])
	assert.EqualValues(t, 7, entry["quote_id"])
}

func TestNewWithWriter_LevelFiltersAndInstallsGlobal(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "staging", Level: "warn"}, &buf)

	l.Info().Msg("dropped")
	l.Warn().Msg("device unavailable")
	log.Error().Msg("storage failure")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), `"level":"warn"`)
	assert.Contains(t, string(lines[1]), `"message":"storage failure"`)
}
