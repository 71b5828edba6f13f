// Package split segments raw OCR output into ordered paragraphs.
package split

import (
	"regexp"
	"strings"
)

// DefaultMinLength drops paragraphs of this length or shorter. OCR on
// photographed pages tends to emit stray characters and page numbers as
// their own segments.
const DefaultMinLength = 20

var blankLines = regexp.MustCompile(`\n\s*\n+`)

// Splitter breaks text into paragraphs on blank lines. The zero value
// uses DefaultMinLength.
type Splitter struct {
	// MinLength is the filter threshold; paragraphs of MinLength
	// characters or fewer are discarded. Negative keeps everything.
	MinLength int
}

func NewSplitter(minLength int) Splitter {
	return Splitter{MinLength: minLength}
}

// Split returns the non-trivial paragraphs of text in document order.
// Internal whitespace runs, including line breaks within a paragraph,
// collapse to single spaces. Splitting is deterministic.
func (s Splitter) Split(text string) []string {
	minLen := s.MinLength
	if minLen == 0 {
		minLen = DefaultMinLength
	}

	parts := blankLines.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		para := strings.Join(strings.Fields(part), " ")
		if para != "" && len(para) > minLen {
			paragraphs = append(paragraphs, para)
		}
	}

	return paragraphs
}
