// Package main provides the clipfinder CLI. It reads a transcription JSON
// file, runs the TextTile clip-finding pipeline against a configured
// embedding endpoint, and writes the resulting clip list as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/clipforge/clipforge/internal/clip"
	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/embed"
	"github.com/clipforge/clipforge/internal/transcript"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaults := clip.Defaults()

	transcriptPath := flag.String("transcript", "", "path to transcription JSON (\"-\" for stdin)")
	outPath := flag.String("out", "", "path for the clip list JSON (default stdout)")
	minClipTime := flag.Float64("min-clip-time", defaults.MinClipTime, "minimum clip duration in seconds")
	maxClipTime := flag.Float64("max-clip-time", defaults.MaxClipTime, "maximum clip duration in seconds")
	cutoffPolicy := flag.String("cutoff-policy", defaults.CutoffPolicy, "boundary cutoff policy: high, low, or average")
	embeddingPool := flag.String("embedding-pool", defaults.EmbeddingAggregationPoolMethod, "embedding aggregation pool method: mean or max")
	comparePool := flag.String("window-compare-pool", defaults.WindowComparePoolMethod, "window compare pool method: mean or max")
	smoothingWidth := flag.Int("smoothing-width", defaults.SmoothingWidth, "similarity smoothing width")
	windowSize := flag.Int("window-size", defaults.WindowSize, "comparison window width in words")
	device := flag.String("device", "", "embedding device override (auto, cpu, cuda)")
	flag.Parse()

	if *transcriptPath == "" {
		return fmt.Errorf("usage: clipfinder -transcript <path/to/transcription.json>")
	}

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	resolvedDevice := cfg.Device
	if *device != "" {
		resolvedDevice = *device
	}

	logger.Info("starting clipfinder",
		slog.String("transcript", *transcriptPath),
		slog.String("embedder_base_url", cfg.EmbedderBaseURL),
		slog.String("embedder_model", cfg.EmbedderModel),
		slog.String("device", resolvedDevice),
		slog.String("cutoff_policy", *cutoffPolicy),
		slog.Float64("min_clip_time", *minClipTime),
		slog.Float64("max_clip_time", *maxClipTime),
	)

	tr, err := readTranscription(*transcriptPath)
	if err != nil {
		return err
	}

	// Initialize the embedding collaborator with per-run caching
	client, err := embed.NewClient(
		cfg.EmbedderBaseURL,
		cfg.EmbedderModel,
		embed.WithAPIKey(cfg.EmbedderAPIKey),
		embed.WithDevice(resolvedDevice),
	)
	if err != nil {
		return fmt.Errorf("create embedder client: %w", err)
	}
	embedder := embed.NewCache(client)

	req := clip.Request{
		Device:                         resolvedDevice,
		CutoffPolicy:                   *cutoffPolicy,
		EmbeddingAggregationPoolMethod: *embeddingPool,
		WindowComparePoolMethod:        *comparePool,
		MinClipTime:                    *minClipTime,
		MaxClipTime:                    *maxClipTime,
		SmoothingWidth:                 *smoothingWidth,
		WindowSize:                     *windowSize,
	}

	result := clip.Find(context.Background(), tr, req, embedder, logger)

	if err := writeResult(*outPath, result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("clip finding failed: %s", result.Message)
	}
	return nil
}

// readTranscription loads a transcription from a JSON file or stdin.
func readTranscription(path string) (transcript.Transcription, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return transcript.Transcription{}, fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		r = f
	}

	var tr transcript.Transcription
	if err := json.NewDecoder(r).Decode(&tr); err != nil {
		return transcript.Transcription{}, fmt.Errorf("decode transcript: %w", err)
	}
	return tr, nil
}

// writeResult writes the result envelope as indented JSON to the given path
// or stdout.
func writeResult(path string, result clip.Result) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
