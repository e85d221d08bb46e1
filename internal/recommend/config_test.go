// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:   "single strategy",
			mutate: func(c *Config) { c.Strategy = StrategySingle },
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Strategy = "hybrid" },
			wantErr: true,
		},
		{
			name:    "negative text weight",
			mutate:  func(c *Config) { c.Weights.Text = -0.1 },
			wantErr: true,
		},
		{
			name:    "negative category weight",
			mutate:  func(c *Config) { c.Weights.Category = -1 },
			wantErr: true,
		},
		{
			name:    "negative manufacturer weight",
			mutate:  func(c *Config) { c.Weights.Manufacturer = -1 },
			wantErr: true,
		},
		{
			name:    "negative popularity weight",
			mutate:  func(c *Config) { c.Weights.Popularity = -0.5 },
			wantErr: true,
		},
		{
			name:   "all weights zero is allowed",
			mutate: func(c *Config) { c.Weights = Weights{} },
		},
		{
			name:    "negative cat scale",
			mutate:  func(c *Config) { c.CatScale = -2 },
			wantErr: true,
		},
		{
			name:    "zero text vocabulary limit",
			mutate:  func(c *Config) { c.TextVocabularyLimit = 0 },
			wantErr: true,
		},
		{
			name:    "zero category vocabulary limit",
			mutate:  func(c *Config) { c.CategoryVocabularyLimit = 0 },
			wantErr: true,
		},
		{
			name:    "zero manufacturer vocabulary limit",
			mutate:  func(c *Config) { c.ManufacturerVocabularyLimit = 0 },
			wantErr: true,
		},
		{
			name:    "zero ngram min",
			mutate:  func(c *Config) { c.ManufacturerNGramMin = 0 },
			wantErr: true,
		},
		{
			name:    "ngram max below min",
			mutate:  func(c *Config) { c.ManufacturerNGramMax = 2 },
			wantErr: true,
		},
		{
			name:    "zero top k",
			mutate:  func(c *Config) { c.DefaultTopK = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.Weights.Text = 0.9
	cp.Strategy = StrategySingle
	if cfg.Weights.Text != 0.6 || cfg.Strategy != StrategyMulti {
		t.Error("mutating the clone changed the original")
	}
}

func TestSingleSpaceWeights(t *testing.T) {
	w := SingleSpaceWeights()
	if w.Text != 0.8 || w.Popularity != 0.2 {
		t.Errorf("unexpected single-space weights: %+v", w)
	}
	if w.Category != 0 || w.Manufacturer != 0 {
		t.Error("single-space weights must not use categorical components")
	}
}
