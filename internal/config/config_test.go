package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		// t.Setenv registers the restore; Unsetenv leaves the variable
		// absent for the duration of the subtest.
		t.Setenv("EMBEDDER_BASE_URL", "placeholder")
		os.Unsetenv("EMBEDDER_BASE_URL")

		_, err := Load()
		assert.ErrorIs(t, err, ErrEmbedderBaseURLRequired)
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv("EMBEDDER_BASE_URL", "http://localhost:8080")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080", cfg.EmbedderBaseURL)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbedderModel)
		assert.Empty(t, cfg.EmbedderAPIKey)
		assert.Equal(t, "auto", cfg.Device)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("explicit values override defaults", func(t *testing.T) {
		t.Setenv("EMBEDDER_BASE_URL", "https://embeddings.internal")
		t.Setenv("EMBEDDER_MODEL", "all-minilm-l6-v2")
		t.Setenv("EMBEDDER_API_KEY", "secret-key")
		t.Setenv("DEVICE", "cuda")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://embeddings.internal", cfg.EmbedderBaseURL)
		assert.Equal(t, "all-minilm-l6-v2", cfg.EmbedderModel)
		assert.Equal(t, "secret-key", cfg.EmbedderAPIKey)
		assert.Equal(t, "cuda", cfg.Device)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{
			EmbedderBaseURL: "http://localhost:8080",
			EmbedderModel:   "text-embedding-3-small",
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing base URL", func(t *testing.T) {
		cfg := &Config{EmbedderModel: "text-embedding-3-small"}
		assert.ErrorIs(t, cfg.Validate(), ErrEmbedderBaseURLRequired)
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := &Config{EmbedderBaseURL: "http://localhost:8080"}
		assert.ErrorIs(t, cfg.Validate(), ErrEmbedderModelRequired)
	})
}

func TestConfig_String_MasksAPIKey(t *testing.T) {
	cfg := &Config{
		EmbedderBaseURL: "http://localhost:8080",
		EmbedderModel:   "text-embedding-3-small",
		EmbedderAPIKey:  "super-secret",
		Device:          "auto",
		LogFormat:       "text",
		LogLevel:        "info",
	}

	s := cfg.String()
	assert.NotContains(t, s, "super-secret")
	assert.Contains(t, s, "http://localhost:8080")
}

func TestConfig_NewLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		cfg := &Config{LogFormat: "json", LogLevel: "info"}
		logger := cfg.NewLogger()
		require.NotNil(t, logger)
	})

	t.Run("text format", func(t *testing.T) {
		cfg := &Config{LogFormat: "text", LogLevel: "debug"}
		logger := cfg.NewLogger()
		require.NotNil(t, logger)
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}
