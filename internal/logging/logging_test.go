package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel, false)

	logger.Debug().Msg("hidden")
	logger.Info().Str("cep", "01310100").Msg("postal code resolved")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "postal code resolved", entry["message"])
	assert.Equal(t, "01310100", entry["cep"])
	assert.Equal(t, "onboard", entry["app"])
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "onboard.log")

	logger, closer, err := New(Options{Level: "warn", File: path})
	require.NoError(t, err)

	logger.Info().Msg("skipped")
	logger.Warn().Msg("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "skipped")
}

func TestNewDebugOverridesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboard.log")

	logger, closer, err := New(Options{Level: "error", File: path, Debug: true})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	assert.Equal(t, filepath.Join("/var/state", "onboard", DefaultFileName), DefaultPath())
}
