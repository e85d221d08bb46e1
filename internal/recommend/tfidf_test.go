// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestWordAnalyzer(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			doc:  "Brake-Pad, Ceramic!",
			want: []string{"brake", "pad", "ceramic"},
		},
		{
			name: "drops single-character tokens",
			doc:  "a v8 b engine",
			want: []string{"v8", "engine"},
		},
		{
			name: "keeps underscores inside tokens",
			doc:  "part_no 123",
			want: []string{"part_no", "123"},
		},
		{
			name: "handles cyrillic",
			doc:  "Тормозной диск",
			want: []string{"тормозной", "диск"},
		},
		{
			name: "empty document",
			doc:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordAnalyzer(tt.doc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wordAnalyzer(%q) = %v, want %v", tt.doc, got, tt.want)
			}
		})
	}
}

func TestCharNGramAnalyzer(t *testing.T) {
	an := charNGramAnalyzer(3, 3)

	t.Run("pads tokens with word boundaries", func(t *testing.T) {
		got := an("ab")
		want := []string{" ab", "ab "}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("emits short token whole", func(t *testing.T) {
		an := charNGramAnalyzer(5, 6)
		got := an("ab")
		want := []string{" ab "}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("placeholder tokens stay opaque", func(t *testing.T) {
		got := an(manufacturerPlaceholderPrefix + "42")
		want := []string{manufacturerPlaceholderPrefix + "42"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("similar spellings share fragments", func(t *testing.T) {
		a := map[string]bool{}
		for _, g := range an("brembo") {
			a[g] = true
		}
		shared := 0
		for _, g := range an("brembbo") {
			if a[g] {
				shared++
			}
		}
		if shared == 0 {
			t.Error("expected near-identical spellings to share fragments")
		}
	})
}

func TestVectorizerFitTransform(t *testing.T) {
	t.Run("rows are L2 normalized", func(t *testing.T) {
		v := newVectorizer(wordAnalyzer, 0)
		mat := v.fitTransform([]string{"brake pad set", "brake disc set", "engine oil"})
		for i, row := range mat.rows {
			var sum float64
			for _, x := range row {
				sum += x * x
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("row %d norm squared = %f, want 1", i, sum)
			}
		}
	})

	t.Run("shared term has smoothed idf of one", func(t *testing.T) {
		v := newVectorizer(wordAnalyzer, 0)
		v.fitTransform([]string{"brake pad", "brake disc"})
		j, ok := v.vocabulary["brake"]
		if !ok {
			t.Fatal("term brake missing from vocabulary")
		}
		// ln((1+2)/(1+2)) + 1
		if math.Abs(v.idf[j]-1) > 1e-9 {
			t.Errorf("idf(brake) = %f, want 1", v.idf[j])
		}
	})

	t.Run("rare terms weigh more than common ones", func(t *testing.T) {
		v := newVectorizer(wordAnalyzer, 0)
		mat := v.fitTransform([]string{"brake pad", "brake disc", "brake drum"})
		row := mat.rows[0]
		if row[v.vocabulary["pad"]] <= row[v.vocabulary["brake"]] {
			t.Error("expected the rare term to outweigh the corpus-wide one")
		}
	})

	t.Run("vocabulary capped by corpus frequency", func(t *testing.T) {
		v := newVectorizer(wordAnalyzer, 2)
		v.fitTransform([]string{"aa aa bb", "bb cc"})
		if v.vocabularySize() != 2 {
			t.Fatalf("vocabulary size = %d, want 2", v.vocabularySize())
		}
		for _, term := range []string{"aa", "bb"} {
			if _, ok := v.vocabulary[term]; !ok {
				t.Errorf("expected term %q in capped vocabulary", term)
			}
		}
		if _, ok := v.vocabulary["cc"]; ok {
			t.Error("least frequent term survived the cap")
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		v := newVectorizer(wordAnalyzer, 0)
		mat := v.fitTransform(nil)
		if len(mat.rows) != 0 {
			t.Errorf("rows = %d, want 0", len(mat.rows))
		}
	})
}

func TestMatrixSimilarities(t *testing.T) {
	v := newVectorizer(wordAnalyzer, 0)
	corpus := []string{
		"ceramic brake pad",
		"metal brake pad",
		"engine oil filter",
	}
	mat := v.fitTransform(corpus)
	sims := mat.similarities(0)

	if math.Abs(sims[0]-1) > 1e-9 {
		t.Errorf("self similarity = %f, want 1", sims[0])
	}
	if sims[1] <= 0 || sims[1] >= 1 {
		t.Errorf("overlapping docs similarity = %f, want in (0, 1)", sims[1])
	}
	if sims[2] != 0 {
		t.Errorf("disjoint docs similarity = %f, want 0", sims[2])
	}

	// Cross-check against a dense reference computation.
	ref := referenceCosine(mat.rows[0], mat.rows[1])
	if math.Abs(sims[1]-ref) > 1e-9 {
		t.Errorf("similarity = %f, reference = %f", sims[1], ref)
	}
}

// referenceCosine computes cosine similarity independently of the sparse
// dot-product implementation under test.
func referenceCosine(a, b vector) float64 {
	var dot, na, nb float64
	for j, x := range a {
		na += x * x
		if y, ok := b[j]; ok {
			dot += x * y
		}
	}
	for _, y := range b {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestMatrixScale(t *testing.T) {
	v := newVectorizer(wordAnalyzer, 0)
	mat := v.fitTransform([]string{"brake pad", "brake pad"})
	mat.scale(0.5)
	sims := mat.similarities(0)
	// Both rows scaled, so the cosine contribution scales by the square.
	if math.Abs(sims[1]-0.25) > 1e-9 {
		t.Errorf("scaled similarity = %f, want 0.25", sims[1])
	}
}
