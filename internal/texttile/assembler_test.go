package texttile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/clipforge/internal/transcript"
)

func newAssembler(tr transcript.Transcription, minD, maxD float64) *assembler {
	return &assembler{tr: tr, minD: minD, maxD: maxD}
}

// assertContiguous checks the coverage invariants: clips are ordered,
// share boundaries exactly, and span the whole transcript.
func assertContiguous(t *testing.T, tr transcript.Transcription, clips []Clip) {
	t.Helper()
	require.NotEmpty(t, clips)

	assert.Equal(t, tr.StartTime(), clips[0].StartTime)
	assert.Equal(t, tr.StartChar(), clips[0].StartChar)
	assert.Equal(t, tr.EndTime(), clips[len(clips)-1].EndTime)
	assert.Equal(t, tr.EndChar(), clips[len(clips)-1].EndChar)

	for i, c := range clips {
		assert.Greater(t, c.EndTime, c.StartTime, "clip %d", i)
		if i == 0 {
			continue
		}
		assert.Equal(t, clips[i-1].EndTime, c.StartTime, "clip %d start time", i)
		assert.Equal(t, clips[i-1].EndChar, c.StartChar, "clip %d start char", i)
	}
}

func TestAssembleClips_NoBoundaries(t *testing.T) {
	tr := repeatWords(5, "word", 12) // 60s
	clips := newAssembler(tr, 25, 100).assembleClips(nil)

	require.Len(t, clips, 1)
	assert.Equal(t, 0.0, clips[0].StartTime)
	assert.Equal(t, 60.0, clips[0].EndTime)
	assertContiguous(t, tr, clips)
}

func TestAssembleClips_MergesShortSegmentsRight(t *testing.T) {
	tr := repeatWords(5, "word", 12) // 60s
	// Cuts at words 2 and 4 carve two 10s segments, both under the 25s
	// minimum; they are swallowed rightward into one 60s clip.
	clips := newAssembler(tr, 25, 100).assembleClips([]int{2, 4})

	require.Len(t, clips, 1)
	assert.Equal(t, 60.0, clips[0].Duration())
	assertContiguous(t, tr, clips)
}

func TestAssembleClips_KeepsLegalBoundaries(t *testing.T) {
	tr := repeatWords(5, "word", 40) // 200s
	clips := newAssembler(tr, 20, 120).assembleClips([]int{10, 26})

	require.Len(t, clips, 3)
	assert.Equal(t, 50.0, clips[0].Duration())
	assert.Equal(t, 80.0, clips[1].Duration())
	assert.Equal(t, 70.0, clips[2].Duration())
	assertContiguous(t, tr, clips)
}

func TestAssembleClips_SplitsOversizedSegmentEvenly(t *testing.T) {
	tr := repeatWords(5, "word", 40) // 200s
	// [10,40) is 150s, over the 120s maximum, and holds no sub-boundary;
	// it splits evenly at the word nearest its temporal midpoint.
	clips := newAssembler(tr, 20, 120).assembleClips([]int{10})

	require.Len(t, clips, 3)
	assert.Equal(t, 50.0, clips[0].Duration())
	assert.Equal(t, 75.0, clips[1].Duration())
	assert.Equal(t, 75.0, clips[2].Duration())
	assertContiguous(t, tr, clips)
}

func TestSplitLong_PrefersAbsorbedSubBoundaries(t *testing.T) {
	tr := repeatWords(5, "word", 60) // 300s
	asm := newAssembler(tr, 40, 160)

	segments := asm.splitLong([]segment{
		{start: 0, end: 60, subCuts: []int{20, 30}},
	})

	// The sub-boundary at word 30 (t=150) sits exactly on the midpoint and
	// wins over the one at word 20.
	require.Len(t, segments, 2)
	assert.Equal(t, 0, segments[0].start)
	assert.Equal(t, 30, segments[0].end)
	assert.Equal(t, 30, segments[1].start)
	assert.Equal(t, 60, segments[1].end)
}

func TestSplitLong_SkipsSubBoundariesThatBreakTheMinimum(t *testing.T) {
	tr := repeatWords(5, "word", 60) // 300s
	asm := newAssembler(tr, 120, 200)

	// Both sub-boundaries would leave a half under the 120s minimum, so the
	// segment falls back to an even split.
	segments := asm.splitLong([]segment{
		{start: 0, end: 60, subCuts: []int{4, 56}},
	})

	require.Len(t, segments, 2)
	assert.Equal(t, 30, segments[0].end)
	assert.Equal(t, 30, segments[1].start)
}

func TestAssembleClips_TrailingRemainderMergesLeft(t *testing.T) {
	tr := repeatWords(5, "word", 30) // 150s
	// [26,30) is a 20s tail under the 40s minimum with only a left
	// neighbor; merging left pushes that clip past the 130s maximum, which
	// is the documented tolerance for the final remainder.
	clips := newAssembler(tr, 40, 130).assembleClips([]int{26})

	require.Len(t, clips, 1)
	assert.Equal(t, 150.0, clips[0].Duration())
	assertContiguous(t, tr, clips)
}

func TestAssembleClips_ChopsWhenEvenPiecesWouldBeTooShort(t *testing.T) {
	tr := repeatWords(5, "word", 400) // 2000s
	// ceil(2000/900) = 3 even pieces of ~667s would all fall under the
	// 700s minimum, so maximum-length clips are chopped from the left and
	// the remainder merges into the last one.
	clips := newAssembler(tr, 700, 900).assembleClips(nil)

	require.Len(t, clips, 2)
	assert.Equal(t, 900.0, clips[0].Duration())
	assert.Equal(t, 1100.0, clips[1].Duration())
	assertContiguous(t, tr, clips)
}

func TestAssembleClips_EvenSplitHoldsMaxWithCoarseWords(t *testing.T) {
	// Word duration is comparable to the maximum, so every split target sits
	// between word boundaries. Targets computed from the previous snapped cut
	// keep each piece within the bounds; fixed fractional targets would let
	// snapping drift stretch interior pieces past the maximum.
	tr := repeatWords(10, "word", 10) // 100s
	minD, maxD := 20.0, 25.0
	clips := newAssembler(tr, minD, maxD).assembleClips(nil)

	require.Len(t, clips, 5)
	assertContiguous(t, tr, clips)
	for i, c := range clips {
		assert.GreaterOrEqual(t, c.Duration(), minD, "clip %d", i)
		assert.LessOrEqual(t, c.Duration(), maxD, "clip %d", i)
	}
}

func TestAssembleClips_EvenSplitClampsOvershootingSnap(t *testing.T) {
	// Irregular word lengths put the nearest boundary to the first target at
	// t=28, past the 25s maximum; the cut falls back to the latest boundary
	// within it (t=18) and the rest re-balances from there.
	words := []transcript.Word{
		{Text: "opening", StartTime: 0, EndTime: 18, StartChar: 0, EndChar: 7},
		{Text: "word", StartTime: 18, EndTime: 28, StartChar: 8, EndChar: 12},
		{Text: "word", StartTime: 28, EndTime: 38, StartChar: 13, EndChar: 17},
		{Text: "word", StartTime: 38, EndTime: 48, StartChar: 18, EndChar: 22},
	}
	tr := transcript.Transcription{Words: words}
	clips := newAssembler(tr, 10, 25).assembleClips(nil)

	require.Len(t, clips, 3)
	assert.Equal(t, 18.0, clips[0].Duration())
	assert.Equal(t, 10.0, clips[1].Duration())
	assert.Equal(t, 20.0, clips[2].Duration())
	assertContiguous(t, tr, clips)
}

func TestAssembleClips_CoverageInvariants(t *testing.T) {
	tr := repeatWords(3, "word", 100) // 300s
	minD, maxD := 15.0, 60.0
	clips := newAssembler(tr, minD, maxD).assembleClips([]int{7, 23, 31, 55, 80})

	assertContiguous(t, tr, clips)
	for i, c := range clips {
		assert.GreaterOrEqual(t, c.Duration(), minD, "clip %d", i)
		assert.LessOrEqual(t, c.Duration(), maxD, "clip %d", i)
	}
}

func TestAssembleClips_IgnoresOutOfRangeCuts(t *testing.T) {
	tr := repeatWords(5, "word", 20) // 100s
	clips := newAssembler(tr, 10, 100).assembleClips([]int{0, 10, 10, 20, 99})

	require.Len(t, clips, 2)
	assert.Equal(t, 50.0, clips[0].Duration())
	assertContiguous(t, tr, clips)
}
