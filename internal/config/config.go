// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrEmbedderBaseURLRequired is returned when EMBEDDER_BASE_URL is not set.
	ErrEmbedderBaseURLRequired = errors.New("config: EMBEDDER_BASE_URL is required")
	// ErrEmbedderModelRequired is returned when EMBEDDER_MODEL is empty.
	ErrEmbedderModelRequired = errors.New("config: EMBEDDER_MODEL is required")
)

// Config holds all configuration for the clip finder CLI.
type Config struct {
	// Embedding collaborator settings
	EmbedderBaseURL string `env:"EMBEDDER_BASE_URL, required" json:"embedder_base_url"`
	EmbedderModel   string `env:"EMBEDDER_MODEL, default=text-embedding-3-small" json:"embedder_model"`
	EmbedderAPIKey  string `env:"EMBEDDER_API_KEY" json:"-"` // Masked in JSON

	// Device is the execution target forwarded to the embedding backend.
	Device string `env:"DEVICE, default=auto" json:"device"`

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables using go-envconfig.
// It returns an error if required variables are not set.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		if strings.Contains(err.Error(), "EMBEDDER_BASE_URL") {
			return nil, ErrEmbedderBaseURLRequired
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() error {
	if c.EmbedderBaseURL == "" {
		return ErrEmbedderBaseURLRequired
	}
	if c.EmbedderModel == "" {
		return ErrEmbedderModelRequired
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs. Logs go to stderr so the
// clip list on stdout stays machine-readable.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{EmbedderBaseURL: %s, EmbedderModel: %s, Device: %s, LogFormat: %s, LogLevel: %s}",
		c.EmbedderBaseURL,
		c.EmbedderModel,
		c.Device,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
