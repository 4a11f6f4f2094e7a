// Package vectorize implements the tf-idf weighting and cosine scoring
// used to rank sentences against each other.
//
// Vectors are sparse, keyed by normalized term. Every non-degenerate
// vector is scaled to unit L2 norm, so cosine similarity between two
// vectors reduces to their plain dot product.
package vectorize

import "math"

// Vector is a sparse term-weight vector.
type Vector map[string]float64

// Dot returns the dot product of v and other. For the unit vectors
// produced by TFIDF this is the cosine similarity. The zero vector has
// similarity 0 with everything.
func (v Vector) Dot(other Vector) float64 {
	// Iterate the smaller map.
	if len(other) < len(v) {
		v, other = other, v
	}

	var dot float64
	for term, x := range v {
		if y, ok := other[term]; ok {
			dot += x * y
		}
	}
	return dot
}

// IDF builds the inverse-document-frequency table for a sentence set.
// Each sentence contributes its distinct terms once, so df is at least 1
// for every term in the table; weight = log2(N/df). A term present in
// every sentence gets weight 0.
func IDF(sentenceTerms [][]string) map[string]float64 {
	n := float64(len(sentenceTerms))

	df := make(map[string]int)
	for _, terms := range sentenceTerms {
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log2(n / float64(count))
	}
	return idf
}

// TFIDF builds the L2-normalized tf-idf vector for a group of one or
// more sentences' terms. Terms absent from the idf table weigh 0. When
// every weight is 0 (all-stopword or all-ubiquitous content) the zero
// vector is returned instead of dividing by a zero norm.
func TFIDF(idf map[string]float64, groups ...[]string) Vector {
	tf := make(map[string]int)
	for _, terms := range groups {
		for _, term := range terms {
			tf[term]++
		}
	}

	vec := make(Vector, len(tf))
	var sumSquares float64
	for term, count := range tf {
		w := float64(count) * idf[term]
		vec[term] = w
		sumSquares += w * w
	}

	if sumSquares == 0 {
		return vec
	}
	norm := math.Sqrt(sumSquares)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}
