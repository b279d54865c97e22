// Package clip is the thin envelope around the segmentation core. It
// imputes defaults into a clip request, validates it, runs the finder, and
// translates typed errors into a status-coded result for callers that want
// a single self-describing value instead of a Go error.
package clip

import (
	"context"
	"log/slog"

	"github.com/clipforge/clipforge/internal/embed"
	"github.com/clipforge/clipforge/internal/texttile"
	"github.com/clipforge/clipforge/internal/transcript"
)

// Result is the envelope returned by Find. On success Clips is populated;
// on failure Status, Message, and StackTraceInfo describe what went wrong
// and Data echoes the resolved configuration the run was attempted with.
type Result struct {
	Success        bool            `json:"success"`
	Status         int             `json:"status,omitempty"`
	Message        string          `json:"message,omitempty"`
	StackTraceInfo string          `json:"stack_trace_info,omitempty"`
	Data           *Request        `json:"data,omitempty"`
	Clips          []texttile.Clip `json:"clips,omitempty"`
}

// Find resolves and validates the request, runs the clip finder against the
// transcription, and wraps the outcome in a Result. The core's typed errors
// are translated to status codes here and nowhere else.
func Find(ctx context.Context, tr transcript.Transcription, req Request, embedder embed.Embedder, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}

	resolved, err := Resolve(req)
	if err != nil {
		logger.Error("clip request rejected",
			slog.Int("status", statusCode(err)),
			slog.String("error", err.Error()),
		)
		return failure(err, &resolved)
	}

	finder, err := texttile.NewClipFinder(embedder, resolved.finderConfig(), texttile.WithLogger(logger))
	if err != nil {
		logger.Error("clip finder construction failed",
			slog.Int("status", statusCode(err)),
			slog.String("error", err.Error()),
		)
		return failure(err, &resolved)
	}

	logger.Debug("finding clips",
		slog.String("cutoff_policy", resolved.CutoffPolicy),
		slog.Float64("min_clip_time", resolved.MinClipTime),
		slog.Float64("max_clip_time", resolved.MaxClipTime),
	)

	clips, err := finder.FindClips(ctx, tr)
	if err != nil {
		logger.Error("clip finding failed",
			slog.Int("status", statusCode(err)),
			slog.String("error", err.Error()),
		)
		return failure(err, &resolved)
	}

	logger.Info("clips found",
		slog.Int("clips", len(clips)),
		slog.Float64("transcript_duration", tr.Duration()),
	)
	return Result{Success: true, Clips: clips, Data: &resolved}
}

func failure(err error, data *Request) Result {
	return Result{
		Success:        false,
		Status:         statusCode(err),
		Message:        err.Error(),
		StackTraceInfo: stackTraceInfo(),
		Data:           data,
	}
}
