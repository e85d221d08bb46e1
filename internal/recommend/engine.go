// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Engine serves per-product related-item rankings from an immutable
// in-memory snapshot. It is safe for concurrent use: queries read the
// current snapshot through an atomic pointer, and Refresh publishes a
// fully built replacement in a single swap, so readers observe either the
// old or the new snapshot, never a mix.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	strategy SimilarityStrategy
	data     DataProvider

	snap    atomic.Pointer[snapshot]
	buildMu sync.Mutex

	queryCount   atomic.Int64
	emptyResults atomic.Int64
	buildCount   atomic.Int64
	errorCount   atomic.Int64
	lastBuildMS  atomic.Int64
}

// NewEngine creates the engine and performs the initial synchronous build.
// The engine is not usable for queries until construction returns. A nil
// cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ctx context.Context, dp DataProvider, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	strat, err := strategyFor(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		strategy: strat,
		data:     dp,
	}

	if err := e.Refresh(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Refresh discards and rebuilds the snapshot from the backing store.
// On failure the previously published snapshot keeps serving queries
// unchanged. Safe to call repeatedly and concurrently; rebuilds are
// serialized.
func (e *Engine) Refresh(ctx context.Context) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	start := time.Now()
	snap, err := buildSnapshot(ctx, e.data, e.strategy, e.config, e.logger)
	if err != nil {
		e.errorCount.Add(1)
		e.logger.Error().Err(err).Msg("snapshot build failed")
		return fmt.Errorf("build snapshot: %w", err)
	}

	e.snap.Store(snap)
	dur := time.Since(start).Milliseconds()
	e.lastBuildMS.Store(dur)
	e.buildCount.Add(1)

	e.logger.Info().
		Str("build_id", snap.buildID).
		Str("strategy", snap.strategy).
		Int("products", len(snap.ids)).
		Int64("duration_ms", dur).
		Msg("snapshot published")
	return nil
}

// Recommendations returns up to topK products related to productID,
// ordered by blended score descending. Unknown product ids and an empty
// catalog yield an empty list, not an error. topK <= 0 falls back to the
// configured default.
func (e *Engine) Recommendations(productID, topK int) []Recommendation {
	e.queryCount.Add(1)
	if topK <= 0 {
		topK = e.config.DefaultTopK
	}

	recs := e.snap.Load().recommendations(productID, topK)
	if len(recs) == 0 {
		e.emptyResults.Add(1)
	}
	return recs
}

// Status returns the state of the currently published snapshot.
func (e *Engine) Status() Status {
	snap := e.snap.Load()
	st := Status{
		BuildID:         snap.buildID,
		Strategy:        snap.strategy,
		ProductCount:    len(snap.ids),
		BuiltAt:         snap.builtAt,
		BuildDurationMS: e.lastBuildMS.Load(),
		VocabularySizes: make(map[string]int, len(snap.spaces)),
	}
	for _, sp := range snap.spaces {
		st.VocabularySizes[sp.name] = sp.vec.vocabularySize()
	}
	return st
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		QueryCount:          e.queryCount.Load(),
		EmptyResults:        e.emptyResults.Load(),
		BuildCount:          e.buildCount.Load(),
		LastBuildDurationMS: e.lastBuildMS.Load(),
		ErrorCount:          e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
