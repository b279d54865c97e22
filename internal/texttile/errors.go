package texttile

import "errors"

// Static errors produced by the segmentation core. The core raises these and
// never translates them; mapping to status codes happens in the caller's
// envelope.
var (
	// ErrEmbedderRequired is returned when a ClipFinder is constructed
	// without an embedding collaborator.
	ErrEmbedderRequired = errors.New("texttile: embedder is required")
	// ErrInvalidConfig is returned when a pool method, cutoff policy, or
	// width option is not recognized.
	ErrInvalidConfig = errors.New("texttile: invalid configuration")
	// ErrInsufficientData is returned when the transcript has fewer words
	// than one window width.
	ErrInsufficientData = errors.New("texttile: transcript too short to form a window")
	// ErrInvalidDurationConstraint is returned when the min/max clip
	// durations are misconfigured or the transcript is shorter than the
	// minimum clip duration.
	ErrInvalidDurationConstraint = errors.New("texttile: invalid clip duration constraints")
	// ErrEmbedding is returned when the embedding collaborator fails or
	// returns malformed output.
	ErrEmbedding = errors.New("texttile: embedding failed")
)
