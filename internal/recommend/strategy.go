// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"fmt"
)

// corpus holds the per-space documents assembled for one build, rows
// aligned with the snapshot's id order.
type corpus struct {
	text         []string
	category     []string
	manufacturer []string
}

// SimilarityStrategy builds the vector spaces for one snapshot variant.
// The two variants mirror the engine's evolution: a single full-text space,
// and the multi-component blend that superseded it.
type SimilarityStrategy interface {
	// Name returns the strategy identifier used in configuration.
	Name() string

	// buildSpaces fits the strategy's vector spaces over the corpus.
	buildSpaces(docs corpus, cfg *Config) []vectorSpace
}

// strategyFor resolves a configured strategy name.
func strategyFor(name string) (SimilarityStrategy, error) {
	switch name {
	case StrategyMulti:
		return multiSpace{}, nil
	case StrategySingle:
		return singleSpace{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// multiSpace builds three independent vector spaces: the full product text,
// a narrow categorical space (category + compatibility), and a manufacturer
// space vectorized with character fragments for fuzzy name tolerance.
type multiSpace struct{}

func (multiSpace) Name() string { return StrategyMulti }

func (multiSpace) buildSpaces(docs corpus, cfg *Config) []vectorSpace {
	text := newVectorizer(wordAnalyzer, cfg.TextVocabularyLimit)
	cat := newVectorizer(wordAnalyzer, cfg.CategoryVocabularyLimit)
	manuf := newVectorizer(
		charNGramAnalyzer(cfg.ManufacturerNGramMin, cfg.ManufacturerNGramMax),
		cfg.ManufacturerVocabularyLimit,
	)

	textMat := text.fitTransform(docs.text)
	catMat := cat.fitTransform(docs.category)
	manufMat := manuf.fitTransform(docs.manufacturer)

	catMat.scale(cfg.CatScale)
	manufMat.scale(cfg.CatScale)

	return []vectorSpace{
		{name: "text", weight: cfg.Weights.Text, vec: text, mat: textMat},
		{name: "category", weight: cfg.Weights.Category, vec: cat, mat: catMat},
		{name: "manufacturer", weight: cfg.Weights.Manufacturer, vec: manuf, mat: manufMat},
	}
}

// singleSpace builds only the full-text space; category and manufacturer
// similarity contribute nothing under this strategy.
type singleSpace struct{}

func (singleSpace) Name() string { return StrategySingle }

func (singleSpace) buildSpaces(docs corpus, cfg *Config) []vectorSpace {
	text := newVectorizer(wordAnalyzer, cfg.TextVocabularyLimit)
	return []vectorSpace{
		{name: "text", weight: cfg.Weights.Text, vec: text, mat: text.fitTransform(docs.text)},
	}
}

// Ensure both variants implement the interface.
var (
	_ SimilarityStrategy = multiSpace{}
	_ SimilarityStrategy = singleSpace{}
)
