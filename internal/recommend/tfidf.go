// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// vector is a sparse document vector mapping term index to weight.
type vector map[int]float64

// analyzer splits a document into terms.
type analyzer func(doc string) []string

// wordAnalyzer lowercases a document and emits word tokens of two or more
// characters (letters, digits, underscores).
func wordAnalyzer(doc string) []string {
	var terms []string
	var cur []rune
	flush := func() {
		if len(cur) >= 2 {
			terms = append(terms, string(cur))
		}
		cur = cur[:0]
	}
	for _, r := range strings.ToLower(doc) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			cur = append(cur, r)
			continue
		}
		flush()
	}
	flush()
	return terms
}

// charNGramAnalyzer emits overlapping character fragments of length minN to
// maxN from each whitespace token, padded with a leading and trailing space
// so fragments anchor at word edges. Near-identical spellings then share
// most of their fragments.
func charNGramAnalyzer(minN, maxN int) analyzer {
	return func(doc string) []string {
		var terms []string
		for _, tok := range strings.Fields(strings.ToLower(doc)) {
			// Placeholder tokens stay opaque: products with a blank
			// manufacturer must never partially match each other.
			if strings.HasPrefix(tok, manufacturerPlaceholderPrefix) {
				terms = append(terms, tok)
				continue
			}
			padded := []rune(" " + tok + " ")
			emitted := false
			for n := minN; n <= maxN; n++ {
				if len(padded) < n {
					break
				}
				for i := 0; i+n <= len(padded); i++ {
					terms = append(terms, string(padded[i:i+n]))
				}
				emitted = true
			}
			if !emitted {
				terms = append(terms, string(padded))
			}
		}
		return terms
	}
}

// vectorizer fits a TF-IDF vocabulary over a corpus and produces
// L2-normalized sparse document vectors. The vocabulary is capped at
// maxTerms, keeping the terms most frequent across the corpus.
type vectorizer struct {
	analyze    analyzer
	maxTerms   int
	vocabulary map[string]int
	idf        []float64
}

func newVectorizer(an analyzer, maxTerms int) *vectorizer {
	return &vectorizer{analyze: an, maxTerms: maxTerms}
}

// fitTransform fits the vocabulary and IDF weights on the corpus and
// returns the document-vector matrix, rows aligned to the corpus order.
func (v *vectorizer) fitTransform(corpus []string) *matrix {
	counts := make([]map[string]int, len(corpus))
	df := make(map[string]int)
	total := make(map[string]int)
	for i, doc := range corpus {
		tf := make(map[string]int)
		for _, term := range v.analyze(doc) {
			tf[term]++
		}
		counts[i] = tf
		for term, n := range tf {
			df[term]++
			total[term] += n
		}
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	// Most frequent terms first, ties broken alphabetically, so the cap
	// bounds memory deterministically on large catalogs.
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.maxTerms > 0 && len(terms) > v.maxTerms {
		terms = terms[:v.maxTerms]
	}

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for j, term := range terms {
		v.vocabulary[term] = j
		// Smoothed IDF, as if one extra document contained every term.
		v.idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([]vector, len(corpus))
	for i, tf := range counts {
		row := make(vector, len(tf))
		for term, c := range tf {
			j, ok := v.vocabulary[term]
			if !ok {
				continue
			}
			row[j] = float64(c) * v.idf[j]
		}
		normalize(row)
		rows[i] = row
	}
	return &matrix{rows: rows}
}

// vocabularySize returns the number of fitted terms.
func (v *vectorizer) vocabularySize() int {
	return len(v.vocabulary)
}

// matrix holds one sparse document vector per catalog row.
type matrix struct {
	rows []vector
}

// scale multiplies every entry by s.
func (m *matrix) scale(s float64) {
	if s == 1 {
		return
	}
	for _, row := range m.rows {
		for j := range row {
			row[j] *= s
		}
	}
}

// similarities returns the dot product of row idx against every row. For
// L2-normalized rows this equals the cosine similarity.
func (m *matrix) similarities(idx int) []float64 {
	sims := make([]float64, len(m.rows))
	q := m.rows[idx]
	for i, row := range m.rows {
		sims[i] = dot(q, row)
	}
	return sims
}

func dot(a, b vector) float64 {
	// Iterate the smaller operand.
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for j, x := range a {
		if y, ok := b[j]; ok {
			sum += x * y
		}
	}
	return sum
}

func normalize(v vector) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for j := range v {
		v[j] *= inv
	}
}
