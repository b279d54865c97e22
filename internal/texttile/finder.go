// Package texttile implements TextTiling-style topic segmentation over a
// timestamped transcript. It scores the gap between every pair of adjacent
// text windows with semantic embeddings, turns deep similarity valleys into
// boundary candidates, filters them through a statistical cutoff policy,
// and assembles the surviving boundaries into clips that satisfy minimum
// and maximum duration constraints.
package texttile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clipforge/clipforge/internal/embed"
	"github.com/clipforge/clipforge/internal/transcript"
)

// Config holds the tunable parameters of the segmentation pipeline.
type Config struct {
	// CutoffPolicy selects the boundary acceptance threshold rule.
	CutoffPolicy CutoffPolicy
	// EmbeddingAggregationPoolMethod pools word embeddings into one window
	// vector.
	EmbeddingAggregationPoolMethod PoolMethod
	// WindowComparePoolMethod pools neighboring window vectors into the
	// comparison anchors on each side of a gap.
	WindowComparePoolMethod PoolMethod
	// SmoothingWidth is the moving-average width applied to raw similarity
	// scores. 1 disables smoothing.
	SmoothingWidth int
	// WindowSize is the window width in words.
	WindowSize int
	// MinClipDuration and MaxClipDuration bound clip length in seconds.
	MinClipDuration float64
	MaxClipDuration float64
}

// DefaultConfig returns the default pipeline parameters.
func DefaultConfig() Config {
	return Config{
		CutoffPolicy:                   CutoffHigh,
		EmbeddingAggregationPoolMethod: PoolMax,
		WindowComparePoolMethod:        PoolMean,
		SmoothingWidth:                 3,
		WindowSize:                     20,
		MinClipDuration:                15,
		MaxClipDuration:                900,
	}
}

// ClipFinder runs the segmentation pipeline. One call processes one
// transcript to completion; no state is shared between calls, so a finder
// is safe for concurrent use as long as its embedder is.
type ClipFinder struct {
	embedder embed.Embedder
	cfg      Config
	logger   *slog.Logger
}

// FinderOption configures a ClipFinder.
type FinderOption func(*ClipFinder)

// WithLogger sets the logger used for pipeline progress.
func WithLogger(logger *slog.Logger) FinderOption {
	return func(f *ClipFinder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewClipFinder creates a ClipFinder with the given embedding collaborator
// and configuration. Pool methods, the cutoff policy, and widths are
// checked here; duration constraints are checked per call so they fail
// before any embedding work.
func NewClipFinder(embedder embed.Embedder, cfg Config, opts ...FinderOption) (*ClipFinder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if !cfg.CutoffPolicy.valid() {
		return nil, fmt.Errorf("%w: unknown cutoff policy %q", ErrInvalidConfig, cfg.CutoffPolicy)
	}
	if !cfg.EmbeddingAggregationPoolMethod.valid() {
		return nil, fmt.Errorf("%w: unknown embedding aggregation pool method %q",
			ErrInvalidConfig, cfg.EmbeddingAggregationPoolMethod)
	}
	if !cfg.WindowComparePoolMethod.valid() {
		return nil, fmt.Errorf("%w: unknown window compare pool method %q",
			ErrInvalidConfig, cfg.WindowComparePoolMethod)
	}
	if cfg.SmoothingWidth < 1 {
		return nil, fmt.Errorf("%w: smoothing width must be >= 1, got %d",
			ErrInvalidConfig, cfg.SmoothingWidth)
	}
	if cfg.WindowSize < 1 {
		return nil, fmt.Errorf("%w: window size must be >= 1, got %d",
			ErrInvalidConfig, cfg.WindowSize)
	}

	f := &ClipFinder{
		embedder: embedder,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FindClips locates topic-aligned clips in the transcription. The returned
// clips are ordered by time and cover the transcript contiguously. A
// transcript with no detectable topic shifts yields a single clip, which is
// still split when it exceeds the maximum duration.
func (f *ClipFinder) FindClips(ctx context.Context, tr transcript.Transcription) ([]Clip, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	if err := f.checkDurations(tr); err != nil {
		return nil, err
	}

	windows, err := buildWindows(tr.Words, f.cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("built transcript windows",
		slog.Int("words", len(tr.Words)),
		slog.Int("windows", len(windows)),
		slog.Int("window_size", f.cfg.WindowSize),
	)

	texts := make([]string, len(tr.Words))
	for i, w := range tr.Words {
		texts[i] = w.Text
	}
	wordVecs, err := f.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmbedding, err)
	}
	if len(wordVecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d words",
			ErrEmbedding, len(wordVecs), len(texts))
	}

	vectors := windowVectors(windows, wordVecs, f.cfg.EmbeddingAggregationPoolMethod)
	scores, err := similarityScores(vectors, f.cfg.WindowComparePoolMethod, f.cfg.WindowSize)
	if err != nil {
		return nil, err
	}

	smoothed := smoothScores(scores, f.cfg.SmoothingWidth)
	depths := depthScores(smoothed)
	gaps, err := selectBoundaries(depths, f.cfg.CutoffPolicy)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("selected topic boundaries",
		slog.Int("gaps", len(scores)),
		slog.Int("boundaries", len(gaps)),
		slog.String("cutoff_policy", string(f.cfg.CutoffPolicy)),
	)

	// Gap i separates window i from window i+1; the next clip begins at
	// word i+1.
	cuts := make([]int, len(gaps))
	for i, g := range gaps {
		cuts[i] = g + 1
	}

	asm := &assembler{tr: tr, minD: f.cfg.MinClipDuration, maxD: f.cfg.MaxClipDuration}
	clips := asm.assembleClips(cuts)

	f.logger.Debug("assembled clips",
		slog.Int("clips", len(clips)),
		slog.Float64("transcript_duration", tr.Duration()),
	)
	return clips, nil
}

// checkDurations validates the duration constraints against each other and
// the transcript. It runs before any embedding call.
func (f *ClipFinder) checkDurations(tr transcript.Transcription) error {
	if f.cfg.MinClipDuration <= 0 {
		return fmt.Errorf("%w: min clip duration %.3fs must be positive",
			ErrInvalidDurationConstraint, f.cfg.MinClipDuration)
	}
	if f.cfg.MinClipDuration > f.cfg.MaxClipDuration {
		return fmt.Errorf("%w: min %.3fs exceeds max %.3fs",
			ErrInvalidDurationConstraint, f.cfg.MinClipDuration, f.cfg.MaxClipDuration)
	}
	if tr.Duration() < f.cfg.MinClipDuration {
		return fmt.Errorf("%w: transcript duration %.3fs is shorter than min clip duration %.3fs",
			ErrInvalidDurationConstraint, tr.Duration(), f.cfg.MinClipDuration)
	}
	return nil
}
