// Package segment splits raw text into Unicode sentence and word spans.
// It wraps UAX #29 text segmentation and keeps only spans carrying at
// least one letter or digit, so whitespace and punctuation-only spans
// never reach the ranking pipeline.
package segment

import (
	"unicode"

	"github.com/clipperhouse/uax29/sentences"
	"github.com/clipperhouse/uax29/words"
)

// Sentences returns the sentence spans of text in document order.
// Spans include their trailing whitespace and never overlap.
// Empty input yields nil.
func Sentences(text string) []string {
	if text == "" {
		return nil
	}

	var out []string
	seg := sentences.NewSegmenter([]byte(text))
	for seg.Next() {
		span := string(seg.Bytes())
		if alphanumeric(span) {
			out = append(out, span)
		}
	}
	return out
}

// Words returns the word tokens of a span, excluding whitespace and
// punctuation tokens.
func Words(span string) []string {
	if span == "" {
		return nil
	}

	var out []string
	seg := words.NewSegmenter([]byte(span))
	for seg.Next() {
		token := string(seg.Bytes())
		if alphanumeric(token) {
			out = append(out, token)
		}
	}
	return out
}

// alphanumeric reports whether s contains at least one letter or digit.
func alphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
