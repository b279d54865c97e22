package clip

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/clipforge/clipforge/internal/embed"
	"github.com/clipforge/clipforge/internal/texttile"
	"github.com/clipforge/clipforge/internal/transcript"
)

// statusCode maps a typed pipeline error onto an HTTP-style status code.
// Caller mistakes are 400s, a misbehaving embedding collaborator is a 502,
// anything unrecognized is a 500.
func statusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, texttile.ErrInvalidConfig),
		errors.Is(err, texttile.ErrInvalidDurationConstraint),
		errors.Is(err, texttile.ErrInsufficientData),
		errors.Is(err, transcript.ErrEmptyTranscription),
		errors.Is(err, transcript.ErrNonMonotonicTimes),
		errors.Is(err, transcript.ErrOverlappingOffsets),
		errors.Is(err, transcript.ErrInvalidWordSpan):
		return http.StatusBadRequest
	case errors.Is(err, texttile.ErrEmbedding),
		errors.Is(err, embed.ErrRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// stackTraceInfo captures a short caller trace for failure envelopes. It
// skips runtime and package-internal frames so the trace starts at the
// caller of the envelope.
func stackTraceInfo() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}
