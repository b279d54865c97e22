package texttile

import (
	"fmt"
	"strings"

	"github.com/clipforge/clipforge/internal/transcript"
)

// Window is a contiguous run of words used as one comparison unit. Windows
// slide over the transcript with stride one word, so adjacent windows
// overlap. Trailing windows near the transcript end are shorter than the
// configured width; they are emitted rather than dropped so boundary
// detection covers the tail.
type Window struct {
	// StartWord and EndWord delimit the word index range, EndWord exclusive.
	StartWord int
	EndWord   int

	StartChar int
	EndChar   int
	StartTime float64
	EndTime   float64
	Text      string
}

// buildWindows produces one window per word index, each covering up to size
// words. It fails when the transcript cannot fill even one full window.
func buildWindows(words []transcript.Word, size int) ([]Window, error) {
	if len(words) < size {
		return nil, fmt.Errorf("%w: %d words, window size %d",
			ErrInsufficientData, len(words), size)
	}

	windows := make([]Window, len(words))
	for i := range words {
		end := i + size
		if end > len(words) {
			end = len(words)
		}

		texts := make([]string, 0, end-i)
		for _, w := range words[i:end] {
			texts = append(texts, w.Text)
		}

		windows[i] = Window{
			StartWord: i,
			EndWord:   end,
			StartChar: words[i].StartChar,
			EndChar:   words[end-1].EndChar,
			StartTime: words[i].StartTime,
			EndTime:   words[end-1].EndTime,
			Text:      strings.Join(texts, " "),
		}
	}
	return windows, nil
}
