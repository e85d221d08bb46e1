// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/autosalon/partsreco/internal/logging"
	"github.com/autosalon/partsreco/internal/recommend"
)

// Load builds the configuration from layered sources, lowest to highest
// precedence:
//  1. Built-in defaults
//  2. Legacy reco_config.json weight-tuning file
//  3. Optional YAML config file (CONFIG_PATH, ./config.yaml,
//     /etc/partsreco/config.yaml)
//  4. Environment variables
//
// Only the defaults layer is required. Any other layer that is missing or
// malformed is logged at warn level and skipped, and a recommend section
// that fails validation after merging is reset to its defaults. Load
// therefore always returns a valid configuration.
func Load() *Config {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		// Loading from an in-memory struct cannot realistically fail;
		// if it does, the zero-value struct path below still holds.
		logging.Warn().Err(err).Msg("failed to load configuration defaults")
	}

	if err := applyLegacyConfig(k, LegacyConfigFile); err != nil {
		logging.Warn().Err(err).Str("file", LegacyConfigFile).
			Msg("legacy tuning file skipped")
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logging.Warn().Err(err).Str("file", path).Msg("config file skipped")
		} else {
			logging.Info().Str("file", path).Msg("loaded config file")
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		logging.Warn().Err(err).Msg("environment overrides skipped")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		logging.Warn().Err(err).Msg("configuration unmarshal failed, using defaults")
		c := defaultConfig()
		return &c
	}

	// The single-space strategy carries its own default weights. Apply
	// them only when no layer overrode the multi-space defaults, so an
	// explicit weight choice always wins.
	if cfg.Recommend.Strategy == recommend.StrategySingle &&
		cfg.Recommend.Weights == recommend.DefaultConfig().Weights {
		cfg.Recommend.Weights = recommend.SingleSpaceWeights()
	}

	if err := cfg.Recommend.Validate(); err != nil {
		logging.Warn().Err(err).Msg("invalid recommend configuration, using defaults")
		cfg.Recommend = *recommend.DefaultConfig()
	}

	return cfg
}

// findConfigFile returns the first YAML config file that exists, or ""
// when there is none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		logging.Warn().Str("path", envPath).
			Msg("CONFIG_PATH set but file not found")
		return ""
	}

	for _, path := range []string{"config.yaml", "/etc/partsreco/config.yaml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables map to "" and are ignored, so the process environment
// cannot inject arbitrary keys.
//
// Examples:
//   - RECO_STRATEGY -> recommend.strategy
//   - RECO_W_TEXT -> recommend.weights.text
//   - DB_PATH -> database.path
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		"reco_strategy":       "recommend.strategy",
		"reco_w_text":         "recommend.weights.text",
		"reco_w_category":     "recommend.weights.category",
		"reco_w_manufacturer": "recommend.weights.manufacturer",
		"reco_w_popularity":   "recommend.weights.popularity",
		"reco_cat_scale":      "recommend.cat_scale",
		"reco_top_k":          "recommend.default_top_k",

		"db_path": "database.path",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}
	return envMappings[strings.ToLower(key)]
}

// Summary returns a compact single-line description for startup logs.
func (c *Config) Summary() string {
	return fmt.Sprintf("db=%s strategy=%s weights=%.2f/%.2f/%.2f/%.2f",
		c.Database.Path,
		c.Recommend.Strategy,
		c.Recommend.Weights.Text,
		c.Recommend.Weights.Category,
		c.Recommend.Weights.Manufacturer,
		c.Recommend.Weights.Popularity,
	)
}
