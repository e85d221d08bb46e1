// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"fmt"
)

// Strategy names selectable via configuration.
const (
	// StrategyMulti blends three vector spaces (text, category,
	// manufacturer) with a popularity term.
	StrategyMulti = "multi"

	// StrategySingle uses one full-text vector space plus popularity.
	StrategySingle = "single"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Strategy selects the similarity strategy: "multi" or "single".
	Strategy string `koanf:"strategy" json:"strategy"`

	// Weights defines the contribution of each scoring component.
	// Weights are configuration, not normalized at runtime; they are
	// expected to sum to roughly 1.0 but this is not enforced.
	Weights Weights `koanf:"weights" json:"weights"`

	// CatScale scales the category and manufacturer matrices before
	// blending. Because both rows of a pair are scaled, the cosine
	// contribution of those spaces scales by CatScale squared.
	CatScale float64 `koanf:"cat_scale" json:"cat_scale"`

	// TextVocabularyLimit caps the text space vocabulary.
	TextVocabularyLimit int `koanf:"text_vocabulary_limit" json:"text_vocabulary_limit"`

	// CategoryVocabularyLimit caps the categorical space vocabulary.
	CategoryVocabularyLimit int `koanf:"category_vocabulary_limit" json:"category_vocabulary_limit"`

	// ManufacturerVocabularyLimit caps the manufacturer space vocabulary.
	ManufacturerVocabularyLimit int `koanf:"manufacturer_vocabulary_limit" json:"manufacturer_vocabulary_limit"`

	// ManufacturerNGramMin is the shortest character fragment used for
	// fuzzy manufacturer matching.
	ManufacturerNGramMin int `koanf:"manufacturer_ngram_min" json:"manufacturer_ngram_min"`

	// ManufacturerNGramMax is the longest character fragment used for
	// fuzzy manufacturer matching.
	ManufacturerNGramMax int `koanf:"manufacturer_ngram_max" json:"manufacturer_ngram_max"`

	// DefaultTopK is the result count used when a query passes topK <= 0.
	DefaultTopK int `koanf:"default_top_k" json:"default_top_k"`
}

// Weights defines the contribution of each scoring component.
// All weights must be non-negative.
type Weights struct {
	// Text is the weight of the full-text cosine similarity.
	Text float64 `koanf:"text" json:"text"`

	// Category is the weight of the category/compatibility cosine.
	Category float64 `koanf:"category" json:"category"`

	// Manufacturer is the weight of the manufacturer-name cosine.
	Manufacturer float64 `koanf:"manufacturer" json:"manufacturer"`

	// Popularity is the weight of the normalized order-count term.
	Popularity float64 `koanf:"popularity" json:"popularity"`
}

// DefaultConfig returns a Config with the multi-space production defaults.
func DefaultConfig() *Config {
	return &Config{
		Strategy: StrategyMulti,
		Weights: Weights{
			Text:         0.6,
			Category:     0.2,
			Manufacturer: 0.1,
			Popularity:   0.1,
		},
		CatScale:                    1.0,
		TextVocabularyLimit:         5000,
		CategoryVocabularyLimit:     300,
		ManufacturerVocabularyLimit: 200,
		ManufacturerNGramMin:        3,
		ManufacturerNGramMax:        6,
		DefaultTopK:                 5,
	}
}

// SingleSpaceWeights returns the default weights for the single-space
// strategy, which blends only full-text similarity and popularity.
func SingleSpaceWeights() Weights {
	return Weights{Text: 0.8, Popularity: 0.2}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Strategy != StrategyMulti && c.Strategy != StrategySingle {
		return fmt.Errorf("strategy must be %q or %q, got %q", StrategyMulti, StrategySingle, c.Strategy)
	}

	// Weights are non-negative by contract: the self-exclusion sentinel
	// and the "score <= 0" filter both assume it.
	if c.Weights.Text < 0 {
		return fmt.Errorf("weights.text must be non-negative, got %f", c.Weights.Text)
	}
	if c.Weights.Category < 0 {
		return fmt.Errorf("weights.category must be non-negative, got %f", c.Weights.Category)
	}
	if c.Weights.Manufacturer < 0 {
		return fmt.Errorf("weights.manufacturer must be non-negative, got %f", c.Weights.Manufacturer)
	}
	if c.Weights.Popularity < 0 {
		return fmt.Errorf("weights.popularity must be non-negative, got %f", c.Weights.Popularity)
	}
	if c.CatScale < 0 {
		return fmt.Errorf("cat_scale must be non-negative, got %f", c.CatScale)
	}

	if c.TextVocabularyLimit < 1 {
		return fmt.Errorf("text_vocabulary_limit must be positive, got %d", c.TextVocabularyLimit)
	}
	if c.CategoryVocabularyLimit < 1 {
		return fmt.Errorf("category_vocabulary_limit must be positive, got %d", c.CategoryVocabularyLimit)
	}
	if c.ManufacturerVocabularyLimit < 1 {
		return fmt.Errorf("manufacturer_vocabulary_limit must be positive, got %d", c.ManufacturerVocabularyLimit)
	}

	if c.ManufacturerNGramMin < 1 {
		return fmt.Errorf("manufacturer_ngram_min must be positive, got %d", c.ManufacturerNGramMin)
	}
	if c.ManufacturerNGramMax < c.ManufacturerNGramMin {
		return fmt.Errorf("manufacturer_ngram_max must be >= manufacturer_ngram_min, got %d < %d",
			c.ManufacturerNGramMax, c.ManufacturerNGramMin)
	}

	if c.DefaultTopK < 1 {
		return fmt.Errorf("default_top_k must be positive, got %d", c.DefaultTopK)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All fields are value types, a shallow copy is a deep copy.
	cp := *c
	return &cp
}
