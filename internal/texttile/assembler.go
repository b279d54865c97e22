package texttile

import (
	"math"

	"github.com/clipforge/clipforge/internal/transcript"
)

// Clip is the final output unit: one contiguous span of the transcript in
// time and character offsets. Clips returned from one run are ordered,
// non-overlapping, and cover the transcript exactly; each clip's end equals
// the next clip's start.
type Clip struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	StartChar int     `json:"start_char"`
	EndChar   int     `json:"end_char"`
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	return c.EndTime - c.StartTime
}

// segment is a candidate clip during assembly, expressed as a half-open
// range of cut positions. A cut position is a word index where a new clip
// begins; position 0 is the transcript start and position len(words) the
// transcript end. subCuts holds original boundary positions absorbed by
// merges, kept so an oversized merged segment can split back at a real
// topic boundary instead of an arbitrary point.
type segment struct {
	start   int
	end     int
	subCuts []int
}

// assembler converts accepted boundary cuts into clips satisfying the
// duration constraints.
type assembler struct {
	tr   transcript.Transcription
	minD float64
	maxD float64
}

// cutTime maps a cut position to its time. Interior cuts sit at the start
// of the word they precede, so consecutive clips share the boundary value.
func (a *assembler) cutTime(pos int) float64 {
	switch {
	case pos <= 0:
		return a.tr.StartTime()
	case pos >= len(a.tr.Words):
		return a.tr.EndTime()
	default:
		return a.tr.Words[pos].StartTime
	}
}

// cutChar maps a cut position to its character offset.
func (a *assembler) cutChar(pos int) int {
	switch {
	case pos <= 0:
		return a.tr.StartChar()
	case pos >= len(a.tr.Words):
		return a.tr.EndChar()
	default:
		return a.tr.Words[pos].StartChar
	}
}

func (a *assembler) duration(s segment) float64 {
	return a.cutTime(s.end) - a.cutTime(s.start)
}

// assembleClips builds the final clip list from accepted boundary cuts.
// Segments below the minimum duration are merged greedily into their right
// neighbor; segments above the maximum are split back at absorbed
// sub-boundaries when possible and at word-snapped even intervals otherwise.
// A trailing undersized segment merges left even when that pushes the left
// clip past the maximum by a bounded amount.
func (a *assembler) assembleClips(cuts []int) []Clip {
	segments := a.initialSegments(cuts)
	segments = a.mergeShort(segments)
	segments = a.splitLong(segments)
	segments = a.mergeTrailing(segments)

	clips := make([]Clip, len(segments))
	for i, s := range segments {
		clips[i] = Clip{
			StartTime: a.cutTime(s.start),
			EndTime:   a.cutTime(s.end),
			StartChar: a.cutChar(s.start),
			EndChar:   a.cutChar(s.end),
		}
	}
	return clips
}

// initialSegments builds one candidate segment per boundary interval:
// transcript start to the first cut, cut to cut, last cut to transcript end.
func (a *assembler) initialSegments(cuts []int) []segment {
	segments := make([]segment, 0, len(cuts)+1)
	prev := 0
	for _, c := range cuts {
		if c <= prev || c >= len(a.tr.Words) {
			continue
		}
		segments = append(segments, segment{start: prev, end: c})
		prev = c
	}
	segments = append(segments, segment{start: prev, end: len(a.tr.Words)})
	return segments
}

// mergeShort walks left to right, merging any segment below the minimum
// duration into its right neighbor until it meets the minimum or runs out
// of neighbors. The absorbed cut is remembered as a sub-boundary.
func (a *assembler) mergeShort(segments []segment) []segment {
	out := make([]segment, 0, len(segments))
	i := 0
	for i < len(segments) {
		s := segments[i]
		for a.duration(s) < a.minD && i+1 < len(segments) {
			next := segments[i+1]
			s.subCuts = append(s.subCuts, next.start)
			s.subCuts = append(s.subCuts, next.subCuts...)
			s.end = next.end
			i++
		}
		out = append(out, s)
		i++
	}
	return out
}

// splitLong splits every segment exceeding the maximum duration. Splits at
// absorbed sub-boundaries are re-examined because the halves can still be
// oversized; evenly split pieces are final. The worklist keeps this
// iterative regardless of transcript length.
func (a *assembler) splitLong(segments []segment) []segment {
	var out []segment
	for _, root := range segments {
		pending := []segment{root}
		var done []segment
		for len(pending) > 0 {
			s := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			if a.duration(s) <= a.maxD {
				done = append(done, s)
				continue
			}
			if left, right, ok := a.splitAtSubCut(s); ok {
				// Stack order keeps output sorted: right is processed
				// after left.
				pending = append(pending, right, left)
				continue
			}
			done = append(done, a.splitEvenly(s)...)
		}
		out = append(out, done...)
	}
	return out
}

// splitAtSubCut splits a merged segment at the absorbed original boundary
// nearest its temporal midpoint, provided both halves stay at or above the
// minimum duration.
func (a *assembler) splitAtSubCut(s segment) (left, right segment, ok bool) {
	if len(s.subCuts) == 0 {
		return segment{}, segment{}, false
	}
	mid := a.cutTime(s.start) + a.duration(s)/2

	best := -1
	bestDist := math.Inf(1)
	for _, c := range s.subCuts {
		if a.cutTime(c)-a.cutTime(s.start) < a.minD {
			continue
		}
		if a.cutTime(s.end)-a.cutTime(c) < a.minD {
			continue
		}
		if dist := math.Abs(a.cutTime(c) - mid); dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	if best < 0 {
		return segment{}, segment{}, false
	}

	left = segment{start: s.start, end: best}
	right = segment{start: best, end: s.end}
	for _, c := range s.subCuts {
		switch {
		case c < best:
			left.subCuts = append(left.subCuts, c)
		case c > best:
			right.subCuts = append(right.subCuts, c)
		}
	}
	return left, right, true
}

// splitEvenly splits an oversized segment with no usable sub-boundary into
// near-equal pieces at the nearest word boundaries. The piece count and each
// target are re-derived from the previously snapped cut, so snapping drift
// never accumulates into a piece over the maximum; a snap that still lands
// past the maximum is pulled back to the latest word boundary within it.
// When even pieces would fall below the minimum duration it instead chops
// maximum-length clips from the left, leaving one undersized remainder at
// the end.
func (a *assembler) splitEvenly(s segment) []segment {
	d := a.duration(s)
	pieces := math.Ceil(d / a.maxD)
	if pieces < 2 {
		pieces = 2
	}
	if d/pieces < a.minD {
		return a.chopAtMax(s)
	}

	var cuts []int
	prev := s.start
	for {
		remaining := a.cutTime(s.end) - a.cutTime(prev)
		if remaining <= a.maxD {
			break
		}
		k := math.Ceil(remaining / a.maxD)
		target := a.cutTime(prev) + remaining/k
		c := a.nearestCut(target, prev, s.end)
		if c <= prev || c >= s.end {
			break
		}
		if a.cutTime(c)-a.cutTime(prev) > a.maxD {
			c = a.latestCutWithin(a.cutTime(prev)+a.maxD, prev, s.end)
			if c <= prev {
				break
			}
		}
		cuts = append(cuts, c)
		prev = c
	}
	return a.segmentsBetween(s, cuts)
}

// latestCutWithin returns the largest cut position in (lo, hi) whose time is
// at most limit, or -1 when none exists.
func (a *assembler) latestCutWithin(limit float64, lo, hi int) int {
	for c := hi - 1; c > lo; c-- {
		if a.cutTime(c) <= limit {
			return c
		}
	}
	return -1
}

// chopAtMax cuts maximum-duration clips from the left of an unsplittable
// oversized segment. The final remainder is the one clip allowed to fall
// below the minimum duration.
func (a *assembler) chopAtMax(s segment) []segment {
	var cuts []int
	prev := s.start
	for {
		target := a.cutTime(prev) + a.maxD
		if target >= a.cutTime(s.end) {
			break
		}
		c := a.nearestCut(target, prev, s.end)
		if c <= prev || c >= s.end {
			break
		}
		cuts = append(cuts, c)
		prev = c
	}
	return a.segmentsBetween(s, cuts)
}

// segmentsBetween slices s at the given interior cuts, keeping the order.
func (a *assembler) segmentsBetween(s segment, cuts []int) []segment {
	out := make([]segment, 0, len(cuts)+1)
	prev := s.start
	for _, c := range cuts {
		out = append(out, segment{start: prev, end: c})
		prev = c
	}
	out = append(out, segment{start: prev, end: s.end})
	return out
}

// nearestCut returns the cut position closest in time to target within the
// open interval (lo, hi). Snapping to a word start keeps splits off
// mid-word.
func (a *assembler) nearestCut(target float64, lo, hi int) int {
	w := a.tr.WordAtTime(target)

	best := -1
	bestDist := math.Inf(1)
	for _, cand := range []int{w, w + 1} {
		if cand <= lo || cand >= hi {
			continue
		}
		if dist := math.Abs(a.cutTime(cand) - target); dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	if best < 0 {
		// Fall back to the first legal interior cut.
		if lo+1 < hi {
			return lo + 1
		}
		return -1
	}
	return best
}

// mergeTrailing merges a final undersized segment into its left neighbor.
// The left clip may exceed the maximum duration by a bounded amount; that
// beats emitting a fragment shorter than the caller asked for.
func (a *assembler) mergeTrailing(segments []segment) []segment {
	if len(segments) < 2 {
		return segments
	}
	last := segments[len(segments)-1]
	if a.duration(last) >= a.minD {
		return segments
	}
	prev := &segments[len(segments)-2]
	prev.subCuts = append(prev.subCuts, last.start)
	prev.end = last.end
	return segments[:len(segments)-1]
}
