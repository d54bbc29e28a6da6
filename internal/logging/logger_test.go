package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Error().Str("endpoint", "/chat").Msg("request failed")
	assert.Contains(t, buf.String(), `"endpoint":"/chat"`)
	assert.Contains(t, buf.String(), `"app":"coldmail"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty")

	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	log.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "coldmail.log")

	log, closer, err := Open(path, "info")
	require.NoError(t, err)
	log.Info().Msg("first")
	require.NoError(t, closer.Close())

	log, closer, err = Open(path, "info")
	require.NoError(t, err)
	log.Info().Msg("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}
