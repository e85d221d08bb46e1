// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

// Package config loads the application configuration with layered
// precedence: built-in defaults, then the legacy reco_config.json tuning
// file, then an optional YAML config file, then environment variables.
// Every layer above the defaults is optional and non-fatal: a missing or
// broken layer is logged and skipped so the engine always starts with a
// usable configuration.
package config

import (
	"github.com/autosalon/partsreco/internal/recommend"
)

// ConfigPathEnvVar names the environment variable that points at the YAML
// config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// LegacyConfigFile is the tuning file shared with the storefront admin
// tooling. Flat JSON with weight keys, no nesting.
const LegacyConfigFile = "reco_config.json"

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig   `koanf:"database"`
	Logging   LoggingConfig    `koanf:"logging"`
	Recommend recommend.Config `koanf:"recommend"`
}

// DatabaseConfig configures the storefront SQLite database.
type DatabaseConfig struct {
	// Path is the filesystem path of the SQLite database file.
	Path string `koanf:"path"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line in log records.
	Caller bool `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, the bottom layer of the
// load sequence.
func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Path: "app.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recommend: *recommend.DefaultConfig(),
	}
}
