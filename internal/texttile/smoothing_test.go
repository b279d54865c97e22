package texttile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothScores(t *testing.T) {
	t.Run("width one is the identity", func(t *testing.T) {
		scores := []float64{0.9, 0.1, 0.8, 0.2}
		assert.Equal(t, scores, smoothScores(scores, 1))
	})

	t.Run("truncated window at the edges", func(t *testing.T) {
		scores := []float64{1, 0, 1, 0, 1}
		smoothed := smoothScores(scores, 3)
		require.Len(t, smoothed, 5)

		// Edge gaps average over the two values that exist; no synthetic
		// padding is introduced.
		assert.InDelta(t, 0.5, smoothed[0], 1e-12)
		assert.InDelta(t, 2.0/3.0, smoothed[1], 1e-12)
		assert.InDelta(t, 1.0/3.0, smoothed[2], 1e-12)
		assert.InDelta(t, 2.0/3.0, smoothed[3], 1e-12)
		assert.InDelta(t, 0.5, smoothed[4], 1e-12)
	})

	t.Run("does not alias the input", func(t *testing.T) {
		scores := []float64{0.5, 0.5}
		smoothed := smoothScores(scores, 1)
		smoothed[0] = 9
		assert.Equal(t, 0.5, scores[0])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, smoothScores(nil, 3))
	})
}

// TestSmoothing_RemovesSpuriousBoundaries checks the monotonicity property:
// smoothing can only remove boundary candidates from a noisy similarity
// sequence, never add them.
func TestSmoothing_RemovesSpuriousBoundaries(t *testing.T) {
	noisy := []float64{1, 0.2, 1, 0.2, 1, 0.2, 1}

	countBoundaries := func(scores []float64) int {
		gaps, err := selectBoundaries(depthScores(scores), CutoffAverage)
		require.NoError(t, err)
		return len(gaps)
	}

	raw := countBoundaries(smoothScores(noisy, 1))
	smoothed := countBoundaries(smoothScores(noisy, 7))

	assert.Equal(t, 3, raw)
	assert.Equal(t, 2, smoothed)
	assert.LessOrEqual(t, smoothed, raw)
}
