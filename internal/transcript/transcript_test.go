package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words builds a contiguous transcription where every word lasts dur
// seconds and character offsets run left to right with single spaces.
func words(dur float64, texts ...string) Transcription {
	var out []Word
	char := 0
	for i, text := range texts {
		out = append(out, Word{
			Text:      text,
			StartTime: float64(i) * dur,
			EndTime:   float64(i+1) * dur,
			StartChar: char,
			EndChar:   char + len(text),
		})
		char += len(text) + 1
	}
	return Transcription{Words: out}
}

func TestTranscription_Validate(t *testing.T) {
	t.Run("valid transcription", func(t *testing.T) {
		tr := words(1.5, "the", "quick", "brown", "fox")
		require.NoError(t, tr.Validate())
	})

	t.Run("empty transcription", func(t *testing.T) {
		err := Transcription{}.Validate()
		assert.ErrorIs(t, err, ErrEmptyTranscription)
	})

	t.Run("negative word span", func(t *testing.T) {
		tr := Transcription{Words: []Word{
			{Text: "oops", StartTime: 2, EndTime: 1, StartChar: 0, EndChar: 4},
		}}
		assert.ErrorIs(t, tr.Validate(), ErrInvalidWordSpan)
	})

	t.Run("times running backwards", func(t *testing.T) {
		tr := words(1, "one", "two")
		tr.Words[1].StartTime = -5
		tr.Words[1].EndTime = -4
		assert.ErrorIs(t, tr.Validate(), ErrNonMonotonicTimes)
	})

	t.Run("overlapping character offsets", func(t *testing.T) {
		tr := words(1, "one", "two")
		tr.Words[1].StartChar = 1
		tr.Words[1].EndChar = 4
		assert.ErrorIs(t, tr.Validate(), ErrOverlappingOffsets)
	})
}

func TestTranscription_Spans(t *testing.T) {
	tr := words(2, "alpha", "beta", "gamma")

	assert.Equal(t, 0.0, tr.StartTime())
	assert.Equal(t, 6.0, tr.EndTime())
	assert.Equal(t, 6.0, tr.Duration())
	assert.Equal(t, 0, tr.StartChar())
	assert.Equal(t, len("alpha beta gamma"), tr.EndChar())
}

func TestTranscription_WordAtTime(t *testing.T) {
	tr := words(2, "a", "b", "c", "d") // word i spans [2i, 2i+2)

	tests := []struct {
		name string
		sec  float64
		want int
	}{
		{"inside first word", 0.5, 0},
		{"inside third word", 4.7, 2},
		{"before transcript", -3, 0},
		{"after transcript", 100, 3},
		{"on a word edge", 4.0, 1}, // both match; first wins
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.WordAtTime(tt.sec))
		})
	}
}
