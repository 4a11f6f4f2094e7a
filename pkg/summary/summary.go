// Package summary extracts the sentences which best represent a
// document.
//
// The ranking heuristic identifies a "core" sentence by tf-idf cosine
// similarity to the document at large, then gathers the sentences with
// the highest cosine similarity to that core sentence. Selected
// sentences are returned in their original document order.
//
//	s := summary.New(summary.English)
//	sentences, err := s.SummarizeSentences("See Spot. See Spot run. Run Spot, run!", 2)
package summary

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/skimtext/skim/pkg/normalize"
	"github.com/skimtext/skim/pkg/segment"
	"github.com/skimtext/skim/pkg/stopwords"
	"github.com/skimtext/skim/pkg/vectorize"
)

// MaxDocumentBytes is the hard ceiling on document size. Inputs larger
// than this are rejected before any processing begins.
const MaxDocumentBytes = math.MaxUint32

// Precondition violations reported by the summarization calls.
var (
	ErrDocumentTooLarge     = errors.New("summary: document exceeds the 4 GiB size limit")
	ErrInvalidRatio         = errors.New("summary: ratio must be in [0.0, 1.0]")
	ErrInvalidSentenceCount = errors.New("summary: sentence count must be at least 1")
)

// Summarizer bundles the normalization profile of one language. It
// holds no mutable state: construct it once and share it freely across
// goroutines and documents.
type Summarizer struct {
	norm *normalize.Normalizer
}

// New creates a Summarizer for the given language. The language's
// stemmer and stopword table are resolved once, here, not per call.
func New(lang Language) *Summarizer {
	return &Summarizer{
		norm: normalize.New(normalize.Stemmer(string(lang)), stopwords.For(string(lang))),
	}
}

// NewLanguageAgnostic creates a Summarizer with stemming disabled and
// an empty stopword set.
func NewLanguageAgnostic() *Summarizer {
	return &Summarizer{norm: normalize.New(nil, nil)}
}

// SummarizeSentences returns an n-sentence summary of text, in original
// document order. If the text has no more than n sentences, all of them
// are returned. n must be at least 1 and text no larger than
// MaxDocumentBytes.
func (s *Summarizer) SummarizeSentences(text string, n int) ([]string, error) {
	if n < 1 {
		return nil, ErrInvalidSentenceCount
	}

	sentences, ranking, err := s.rank(text)
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, nil
	}

	if n < len(ranking) {
		ranking = ranking[:n]
	}
	return assemble(sentences, ranking), nil
}

// SummarizeRatio returns a summary reduced to the given ratio of the
// text's byte length, in original document order. Selection walks the
// ranking accumulating trimmed sentence lengths (plus one byte per
// sentence for a separator) and stops once the target is exceeded,
// keeping the sentence that overflowed it. A target at or above the
// document's full length keeps every sentence: the per-sentence
// separator charge can overshoot the raw byte count when sentence
// boundaries carry no whitespace, and must not drop anything at
// ratio 1.0. A non-empty document always yields at least one sentence.
// ratio must be in [0.0, 1.0].
func (s *Summarizer) SummarizeRatio(text string, ratio float64) ([]string, error) {
	if math.IsNaN(ratio) || ratio < 0.0 || ratio > 1.0 {
		return nil, ErrInvalidRatio
	}

	sentences, ranking, err := s.rank(text)
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, nil
	}

	target := int(math.Round(ratio * float64(len(text))))
	end := len(ranking)
	if target < len(text) {
		total := 0
		for i, j := range ranking {
			total += len(strings.TrimRightFunc(sentences[j], unicode.IsSpace)) + 1
			if total > target {
				end = i + 1
				break
			}
		}
	}
	return assemble(sentences, ranking[:end]), nil
}

// rank segments text and orders all sentence indices by descending
// similarity to the core sentence. An empty document yields empty
// results and no error.
func (s *Summarizer) rank(text string) (sentences []string, ranking []int, err error) {
	if len(text) > MaxDocumentBytes {
		return nil, nil, ErrDocumentTooLarge
	}

	sentences = segment.Sentences(text)
	if len(sentences) == 0 {
		return nil, nil, nil
	}

	terms := make([][]string, len(sentences))
	for i, sentence := range sentences {
		terms[i] = s.norm.Terms(segment.Words(sentence))
	}

	idf := vectorize.IDF(terms)
	vectors := make([]vectorize.Vector, len(sentences))
	for i := range sentences {
		vectors[i] = vectorize.TFIDF(idf, terms[i])
	}
	document := vectorize.TFIDF(idf, terms...)

	core := coreSentence(vectors, document)

	similarity := make([]float64, len(sentences))
	for i, vec := range vectors {
		similarity[i] = vec.Dot(vectors[core])
	}

	ranking = make([]int, len(sentences))
	for i := range ranking {
		ranking[i] = i
	}
	// Descending similarity; equal similarities keep document order so
	// the ranking is a fixed total order even for degenerate vectors.
	sort.Slice(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if similarity[a] != similarity[b] {
			return similarity[a] > similarity[b]
		}
		return a < b
	})

	return sentences, ranking, nil
}

// coreSentence picks the sentence most similar to the whole-document
// vector. Ties go to the highest index reaching the maximum.
func coreSentence(vectors []vectorize.Vector, document vectorize.Vector) int {
	core := 0
	best := math.Inf(-1)
	for i, vec := range vectors {
		if sim := vec.Dot(document); sim >= best {
			core, best = i, sim
		}
	}
	return core
}

// assemble restores the selected indices to ascending document order
// and materializes the sentence spans.
func assemble(sentences []string, selected []int) []string {
	indices := make([]int, len(selected))
	copy(indices, selected)
	sort.Ints(indices)

	out := make([]string, len(indices))
	for i, j := range indices {
		out[i] = sentences[j]
	}
	return out
}
