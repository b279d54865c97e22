// Package transcript defines the transcription data model consumed by the
// clip-finding pipeline. A transcription is an ordered sequence of words,
// each carrying its time range and character offsets into the full
// transcript text.
package transcript

import (
	"errors"
	"fmt"
)

// Static errors for transcription validation.
var (
	// ErrEmptyTranscription is returned when a transcription contains no words.
	ErrEmptyTranscription = errors.New("transcript: transcription contains no words")
	// ErrNonMonotonicTimes is returned when word times are not ordered.
	ErrNonMonotonicTimes = errors.New("transcript: word times are not monotonically non-decreasing")
	// ErrOverlappingOffsets is returned when word character offsets overlap
	// or run backwards.
	ErrOverlappingOffsets = errors.New("transcript: word character offsets overlap")
	// ErrInvalidWordSpan is returned when a single word has a negative time
	// or character span.
	ErrInvalidWordSpan = errors.New("transcript: word has a negative time or character span")
)

// Word is a single transcribed word with its time range in seconds and its
// character offsets into the full transcript string.
type Word struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	StartChar int     `json:"start_char"`
	EndChar   int     `json:"end_char"`
}

// Duration returns the length of the word in seconds.
func (w Word) Duration() float64 {
	return w.EndTime - w.StartTime
}

// Transcription is an ordered sequence of transcribed words covering one
// piece of media. It is immutable once constructed; the pipeline never
// mutates it.
type Transcription struct {
	Words []Word `json:"words"`
}

// Validate checks the ordering invariants: per-word spans are non-negative,
// times are monotonically non-decreasing, and character offsets are
// non-overlapping and non-decreasing.
func (t Transcription) Validate() error {
	if len(t.Words) == 0 {
		return ErrEmptyTranscription
	}
	for i, w := range t.Words {
		if w.EndTime < w.StartTime || w.EndChar < w.StartChar {
			return fmt.Errorf("%w: word %d (%q)", ErrInvalidWordSpan, i, w.Text)
		}
		if i == 0 {
			continue
		}
		prev := t.Words[i-1]
		if w.StartTime < prev.StartTime || w.EndTime < prev.EndTime {
			return fmt.Errorf("%w: word %d (%q)", ErrNonMonotonicTimes, i, w.Text)
		}
		if w.StartChar < prev.EndChar {
			return fmt.Errorf("%w: word %d (%q)", ErrOverlappingOffsets, i, w.Text)
		}
	}
	return nil
}

// StartTime returns the start time of the first word.
func (t Transcription) StartTime() float64 {
	if len(t.Words) == 0 {
		return 0
	}
	return t.Words[0].StartTime
}

// EndTime returns the end time of the last word.
func (t Transcription) EndTime() float64 {
	if len(t.Words) == 0 {
		return 0
	}
	return t.Words[len(t.Words)-1].EndTime
}

// Duration returns the total spoken duration in seconds, from the first
// word's start to the last word's end.
func (t Transcription) Duration() float64 {
	return t.EndTime() - t.StartTime()
}

// StartChar returns the character offset of the first word.
func (t Transcription) StartChar() int {
	if len(t.Words) == 0 {
		return 0
	}
	return t.Words[0].StartChar
}

// EndChar returns the character offset just past the last word.
func (t Transcription) EndChar() int {
	if len(t.Words) == 0 {
		return 0
	}
	return t.Words[len(t.Words)-1].EndChar
}

// WordAtTime returns the index of the word whose span is nearest to the
// given time. Split points are snapped to word boundaries with this lookup
// so a clip never cuts mid-word.
func (t Transcription) WordAtTime(sec float64) int {
	best := 0
	bestDist := distanceToWord(t.Words[0], sec)
	for i := 1; i < len(t.Words); i++ {
		d := distanceToWord(t.Words[i], sec)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func distanceToWord(w Word, sec float64) float64 {
	switch {
	case sec < w.StartTime:
		return w.StartTime - sec
	case sec > w.EndTime:
		return sec - w.EndTime
	default:
		return 0
	}
}
