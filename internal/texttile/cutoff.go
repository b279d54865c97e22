package texttile

import (
	"fmt"
	"math"
)

// CutoffPolicy names the statistical rule that converts depth scores into
// accept/reject boundary decisions.
type CutoffPolicy string

// Supported cutoff policies.
const (
	// CutoffHigh accepts only strong boundaries: mean + c*stdev.
	CutoffHigh CutoffPolicy = "high"
	// CutoffLow accepts weaker boundaries too: mean - c*stdev.
	CutoffLow CutoffPolicy = "low"
	// CutoffAverage thresholds at the mean exactly.
	CutoffAverage CutoffPolicy = "average"
)

func (p CutoffPolicy) valid() bool {
	return p == CutoffHigh || p == CutoffLow || p == CutoffAverage
}

// depthStdevFactor is the multiplier applied to the depth-score standard
// deviation for the high and low policies. Half a standard deviation keeps
// the high policy conservative without starving long transcripts of
// boundaries entirely.
const depthStdevFactor = 0.5

// cutoffThreshold computes the depth-score threshold for the given policy.
// The policy is a pure function of the depth sequence; no state survives
// between calls.
func cutoffThreshold(depths []float64, policy CutoffPolicy) (float64, error) {
	mean, stdev := meanStdev(depths)
	switch policy {
	case CutoffHigh:
		return mean + depthStdevFactor*stdev, nil
	case CutoffLow:
		return mean - depthStdevFactor*stdev, nil
	case CutoffAverage:
		return mean, nil
	default:
		return 0, fmt.Errorf("%w: unknown cutoff policy %q", ErrInvalidConfig, policy)
	}
}

// selectBoundaries returns the gap indices accepted as boundaries: depth at
// or above the policy threshold, strictly positive, and a local maximum
// among immediate neighbors. The local-max requirement stops one genuine
// topic shift from being accepted at two adjacent gaps.
func selectBoundaries(depths []float64, policy CutoffPolicy) ([]int, error) {
	if len(depths) == 0 {
		return nil, nil
	}
	threshold, err := cutoffThreshold(depths, policy)
	if err != nil {
		return nil, err
	}

	var accepted []int
	for i, d := range depths {
		if d <= 0 || d < threshold {
			continue
		}
		if i > 0 && depths[i-1] > d {
			continue
		}
		if i < len(depths)-1 && depths[i+1] >= d {
			continue
		}
		accepted = append(accepted, i)
	}
	return accepted, nil
}

func meanStdev(values []float64) (mean, stdev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}
