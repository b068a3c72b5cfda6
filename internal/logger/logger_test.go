package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/folio/backend/internal/config"
)

func TestNewJSONIncludesServiceAndStack(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Error().Stack().Err(errors.New("boom")).Msg("failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "folio-api", entry["service"])
	assert.Equal(t, "failed", entry["message"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotNil(t, entry["stack"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud", Format: "json"}, &bytes.Buffer{})
	assert.Error(t, err)
}
