package texttile

// depthScores converts smoothed similarities into depth scores. For each
// interior gap the sequence is climbed outward in both directions to the
// nearest local maximum; the depth is how far similarity drops into the gap
// from both peaks combined. A gap at the sequence edge lacks a peak on one
// side and scores zero, so it is never selected as a boundary.
//
// The climbs use explicit index arithmetic; transcripts can be long enough
// that recursion here would be a liability.
func depthScores(scores []float64) []float64 {
	depths := make([]float64, len(scores))
	if len(scores) < 3 {
		return depths
	}

	for i := 1; i < len(scores)-1; i++ {
		l := i
		for l > 0 && scores[l-1] >= scores[l] {
			l--
		}
		r := i
		for r < len(scores)-1 && scores[r+1] >= scores[r] {
			r++
		}
		depths[i] = (scores[l] - scores[i]) + (scores[r] - scores[i])
	}
	return depths
}
