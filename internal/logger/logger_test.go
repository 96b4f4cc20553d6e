package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dom/hero-builds/internal/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONWithRunID(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "production", "warn")

	log.Info().Msg("dropped")
	log.Warn().Str("table", "builds").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "exactly one JSON line expected: %s", buf.String())

	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "builds", line["table"])
	assert.NotEmpty(t, line["run_id"])
}

func TestInit_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "production", "loud")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
