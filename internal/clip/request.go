package clip

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/clipforge/clipforge/internal/texttile"
)

// ErrInvalidRequest is returned when a resolved clip request fails
// validation.
var ErrInvalidRequest = errors.New("clip: invalid request")

// validate is shared across calls; the validator caches parsed struct tags.
var validate = validator.New()

// Request carries the recognized clip options. Zero values are imputed with
// defaults by Resolve before validation, so callers only set what they want
// to override.
type Request struct {
	// Device is the execution target for the embedding model. It is a
	// pass-through to the embedding collaborator; the segmentation
	// algorithm never reads it.
	Device string `json:"device" validate:"oneof=auto cpu cuda"`
	// CutoffPolicy selects the boundary threshold rule.
	CutoffPolicy string `json:"cutoff_policy" validate:"oneof=high low average"`
	// EmbeddingAggregationPoolMethod pools word embeddings per window.
	EmbeddingAggregationPoolMethod string `json:"embedding_aggregation_pool_method" validate:"oneof=mean max"`
	// WindowComparePoolMethod pools window vectors into comparison anchors.
	WindowComparePoolMethod string `json:"window_compare_pool_method" validate:"oneof=mean max"`
	// MinClipTime and MaxClipTime bound clip duration in seconds.
	MinClipTime float64 `json:"min_clip_time" validate:"gt=0"`
	MaxClipTime float64 `json:"max_clip_time" validate:"gtefield=MinClipTime"`
	// SmoothingWidth is the similarity moving-average width.
	SmoothingWidth int `json:"smoothing_width" validate:"min=1"`
	// WindowSize is the comparison window width in words.
	WindowSize int `json:"window_size" validate:"min=1"`
}

// Defaults returns the default clip request.
func Defaults() Request {
	return Request{
		Device:                         "auto",
		CutoffPolicy:                   "high",
		EmbeddingAggregationPoolMethod: "max",
		WindowComparePoolMethod:        "mean",
		MinClipTime:                    15,
		MaxClipTime:                    900,
		SmoothingWidth:                 3,
		WindowSize:                     20,
	}
}

// Resolve imputes defaults into unset fields and validates the resulting
// request. It always returns the resolved request, even on error, so
// failure envelopes can echo the configuration that was rejected.
func Resolve(req Request) (Request, error) {
	defaults := Defaults()
	if req.Device == "" {
		req.Device = defaults.Device
	}
	if req.CutoffPolicy == "" {
		req.CutoffPolicy = defaults.CutoffPolicy
	}
	if req.EmbeddingAggregationPoolMethod == "" {
		req.EmbeddingAggregationPoolMethod = defaults.EmbeddingAggregationPoolMethod
	}
	if req.WindowComparePoolMethod == "" {
		req.WindowComparePoolMethod = defaults.WindowComparePoolMethod
	}
	if req.MinClipTime == 0 {
		req.MinClipTime = defaults.MinClipTime
	}
	if req.MaxClipTime == 0 {
		req.MaxClipTime = defaults.MaxClipTime
	}
	if req.SmoothingWidth == 0 {
		req.SmoothingWidth = defaults.SmoothingWidth
	}
	if req.WindowSize == 0 {
		req.WindowSize = defaults.WindowSize
	}

	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	return req, nil
}

// finderConfig maps the resolved request onto the core's configuration.
func (r Request) finderConfig() texttile.Config {
	return texttile.Config{
		CutoffPolicy:                   texttile.CutoffPolicy(r.CutoffPolicy),
		EmbeddingAggregationPoolMethod: texttile.PoolMethod(r.EmbeddingAggregationPoolMethod),
		WindowComparePoolMethod:        texttile.PoolMethod(r.WindowComparePoolMethod),
		SmoothingWidth:                 r.SmoothingWidth,
		WindowSize:                     r.WindowSize,
		MinClipDuration:                r.MinClipTime,
		MaxClipDuration:                r.MaxClipTime,
	}
}
