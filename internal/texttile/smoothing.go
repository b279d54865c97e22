package texttile

// smoothScores applies a symmetric moving average of the given width over
// the raw similarity sequence. Gaps near the sequence edges average over a
// truncated window instead of padding with synthetic values, so boundary
// strength at the transcript edges is not biased. Width 1 is the identity.
func smoothScores(scores []float64, width int) []float64 {
	out := make([]float64, len(scores))
	if width <= 1 {
		copy(out, scores)
		return out
	}

	half := width / 2
	for i := range scores {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(scores)-1 {
			hi = len(scores) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += scores[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}
