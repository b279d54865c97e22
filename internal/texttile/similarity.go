package texttile

import (
	"fmt"
	"math"
)

// PoolMethod selects how a set of vectors is aggregated into one.
type PoolMethod string

// Supported pooling methods.
const (
	// PoolMean averages vectors elementwise.
	PoolMean PoolMethod = "mean"
	// PoolMax takes the elementwise maximum.
	PoolMax PoolMethod = "max"
)

func (p PoolMethod) valid() bool {
	return p == PoolMean || p == PoolMax
}

// poolVectors aggregates vectors elementwise using the given method. All
// vectors must share one dimension; the embed package enforces that upstream.
func poolVectors(vectors [][]float64, method PoolMethod) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	out := make([]float64, dim)

	switch method {
	case PoolMax:
		copy(out, vectors[0])
		for _, vec := range vectors[1:] {
			for d, v := range vec {
				if v > out[d] {
					out[d] = v
				}
			}
		}
	default: // PoolMean
		for _, vec := range vectors {
			for d, v := range vec {
				out[d] += v
			}
		}
		for d := range out {
			out[d] /= float64(len(vectors))
		}
	}
	return out
}

// cosineSimilarity returns the cosine of the angle between a and b, in
// [-1, 1]. A zero-norm vector yields 0.
func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for d := range a {
		dot += a[d] * b[d]
		normA += a[d] * a[d]
		normB += b[d] * b[d]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// windowVectors pools each window's word-level embeddings into one window
// vector using the embedding aggregation pool method.
func windowVectors(windows []Window, wordVectors [][]float64, method PoolMethod) [][]float64 {
	out := make([][]float64, len(windows))
	for i, win := range windows {
		out[i] = poolVectors(wordVectors[win.StartWord:win.EndWord], method)
	}
	return out
}

// similarityScores computes one similarity score per gap between adjacent
// windows. For gap i the windows on each side are pooled into a comparison
// anchor with the window-compare pool method; up to context windows per side
// contribute, which suppresses single-window noise. Scores are cosine
// similarities: higher means more similar, so a weaker boundary candidate.
func similarityScores(vectors [][]float64, method PoolMethod, context int) ([]float64, error) {
	if context < 1 {
		return nil, fmt.Errorf("%w: compare context must be >= 1, got %d",
			ErrInvalidConfig, context)
	}
	if len(vectors) < 2 {
		return nil, nil
	}

	scores := make([]float64, len(vectors)-1)
	for i := range scores {
		lo := i - context + 1
		if lo < 0 {
			lo = 0
		}
		hi := i + 1 + context
		if hi > len(vectors) {
			hi = len(vectors)
		}
		left := poolVectors(vectors[lo:i+1], method)
		right := poolVectors(vectors[i+1:hi], method)
		scores[i] = cosineSimilarity(left, right)
	}
	return scores, nil
}
