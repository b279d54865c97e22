// Package embed provides the embedding collaborator interface used by the
// segmentation core, a caching wrapper that deduplicates texts within one
// run, and an HTTP client for OpenAI-compatible embeddings endpoints.
package embed

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Static errors for embedding results.
var (
	// ErrEmptyBatch is returned when Embed is called with no texts.
	ErrEmptyBatch = errors.New("embed: empty text batch")
	// ErrBatchSizeMismatch is returned when the collaborator returns a
	// different number of vectors than texts submitted.
	ErrBatchSizeMismatch = errors.New("embed: vector count does not match text count")
	// ErrDimensionMismatch is returned when vectors in one run disagree on
	// dimensionality.
	ErrDimensionMismatch = errors.New("embed: inconsistent vector dimensions")
	// ErrMalformedVector is returned when a vector is empty or contains
	// non-finite values.
	ErrMalformedVector = errors.New("embed: malformed vector")
)

// Embedder maps texts to fixed-length numeric vectors. Implementations must
// be deterministic for identical input and configuration. One call may embed
// many texts; implementations are free to batch internally.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbedderFunc adapts a plain function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, texts []string) ([][]float64, error)

// Embed calls f.
func (f EmbedderFunc) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	return f(ctx, texts)
}

// validateVectors checks that the collaborator returned one well-formed,
// finite vector per text, all of the same dimension.
func validateVectors(texts []string, vectors [][]float64) error {
	if len(vectors) != len(texts) {
		return fmt.Errorf("%w: got %d vectors for %d texts",
			ErrBatchSizeMismatch, len(vectors), len(texts))
	}
	dim := -1
	for i, vec := range vectors {
		if len(vec) == 0 {
			return fmt.Errorf("%w: empty vector at index %d", ErrMalformedVector, i)
		}
		if dim == -1 {
			dim = len(vec)
		} else if len(vec) != dim {
			return fmt.Errorf("%w: got %d, want %d (index %d)",
				ErrDimensionMismatch, len(vec), dim, i)
		}
		for _, v := range vec {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite value at index %d", ErrMalformedVector, i)
			}
		}
	}
	return nil
}
