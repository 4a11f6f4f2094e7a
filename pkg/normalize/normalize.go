// Package normalize reduces raw word tokens to canonical comparison
// terms. A term is the token after optional language-specific snowball
// stemming, always lowercased. Stopwords are checked case-insensitively
// against the raw token, before stemming, and are never materialized as
// terms.
package normalize

import (
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/french"
	"github.com/kljensen/snowball/hungarian"
	"github.com/kljensen/snowball/norwegian"
	"github.com/kljensen/snowball/russian"
	"github.com/kljensen/snowball/spanish"
	"github.com/kljensen/snowball/swedish"

	"github.com/skimtext/skim/pkg/stopwords"
)

// StemFunc reduces a word to its root form.
type StemFunc func(string) string

// Stemmer returns the snowball stemmer for the named language, or nil
// when no stemming algorithm is available for it.
func Stemmer(language string) StemFunc {
	switch language {
	case "english":
		return func(w string) string { return english.Stem(w, false) }
	case "french":
		return func(w string) string { return french.Stem(w, false) }
	case "hungarian":
		return func(w string) string { return hungarian.Stem(w, false) }
	case "norwegian":
		return func(w string) string { return norwegian.Stem(w, false) }
	case "russian":
		return func(w string) string { return russian.Stem(w, false) }
	case "spanish":
		return func(w string) string { return spanish.Stem(w, false) }
	case "swedish":
		return func(w string) string { return swedish.Stem(w, false) }
	default:
		return nil
	}
}

// Normalizer bundles the stemming and stopword capabilities of one
// language. Both capabilities are optional and independent. A
// Normalizer is immutable and safe for concurrent use.
type Normalizer struct {
	stem StemFunc
	stop stopwords.Set
}

// New builds a Normalizer from an optional stemmer and stopword set.
// A nil stemmer means terms are only lowercased; a nil or empty set
// disables stopword filtering.
func New(stem StemFunc, stop stopwords.Set) *Normalizer {
	if stop == nil {
		stop = stopwords.Set{}
	}
	return &Normalizer{stem: stem, stop: stop}
}

// IsStopword reports whether the raw token is a stopword, ignoring case.
func (n *Normalizer) IsStopword(word string) bool {
	return n.stop.Contains(word)
}

// Term returns the canonical comparison key for a word.
func (n *Normalizer) Term(word string) string {
	if n.stem != nil {
		word = n.stem(word)
	}
	return strings.ToLower(word)
}

// Terms maps a token sequence to comparison keys, dropping stopwords.
func (n *Normalizer) Terms(words []string) []string {
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if n.IsStopword(word) {
			continue
		}
		terms = append(terms, n.Term(word))
	}
	return terms
}
