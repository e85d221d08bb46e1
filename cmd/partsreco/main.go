// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

// Command partsreco serves related-product queries against a storefront
// SQLite database.
//
//	partsreco -db shop.db -product 42 -k 5
//	partsreco -db shop.db -export snapshot.json
//	partsreco -db shop.db
//
// With -product it prints the ranked recommendations as JSON; with
// -export it writes the fitted snapshot to a file; otherwise it prints
// the engine status.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"

	"github.com/autosalon/partsreco/internal/config"
	"github.com/autosalon/partsreco/internal/logging"
	"github.com/autosalon/partsreco/internal/recommend"
	"github.com/autosalon/partsreco/internal/storage"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("partsreco failed")
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		dbPath     = flag.String("db", "", "path to the storefront SQLite database")
		productID  = flag.Int("product", 0, "product id to query recommendations for")
		topK       = flag.Int("k", 0, "number of recommendations to return")
		refresh    = flag.Bool("refresh", false, "rebuild the snapshot before answering")
		exportPath = flag.String("export", "", "write the fitted snapshot to this file")
	)
	flag.Parse()

	if *configPath != "" {
		os.Setenv(config.ConfigPathEnvVar, *configPath)
	}
	cfg := config.Load()
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("config", cfg.Summary()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	engine, err := recommend.NewEngine(ctx, store, &cfg.Recommend, logging.Logger())
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	if *refresh {
		if err := engine.Refresh(ctx); err != nil {
			return err
		}
	}

	if *exportPath != "" {
		return exportSnapshot(engine, *exportPath)
	}
	if *productID > 0 {
		return printJSON(engine.Recommendations(*productID, *topK))
	}
	return printJSON(engine.Status())
}

func exportSnapshot(engine *recommend.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := engine.ExportSnapshot(f); err != nil {
		return err
	}
	logging.Info().Str("file", path).Msg("snapshot exported")
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
