package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservas/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewFileOnly(t *testing.T) {
	t.Run("NoFileIsSilent", func(t *testing.T) {
		logger := NewFileOnly(config.LoggingConfig{})
		assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	})

	t.Run("WritesToFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "calendario.log")
		logger := NewFileOnly(config.LoggingConfig{File: path, Level: "info"})
		logger.Info().Str("tienda", "Store A").Msg("loaded")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"tienda":"Store A"`)
		assert.Contains(t, string(data), `"message":"loaded"`)
	})
}
