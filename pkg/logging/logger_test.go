package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopmcp.log")

	logger, closeFn, err := Setup(Config{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Info().Str("component", "test").Msg("hello")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hello"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestSetup_BadFilePathFails(t *testing.T) {
	_, _, err := Setup(Config{File: filepath.Join(t.TempDir(), "missing", "shopmcp.log")})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLevel(tc.in), tc.in)
	}
}
