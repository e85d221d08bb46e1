// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// vectorSpace couples a fitted vocabulary with its document matrix and
// blend weight.
type vectorSpace struct {
	name   string
	weight float64
	vec    *vectorizer
	mat    *matrix
}

// snapshot is the complete, internally consistent model produced by one
// build: ids[i], products[i] and row i of every space matrix always refer
// to the same product. A snapshot is immutable once published; a refresh
// replaces it wholesale.
type snapshot struct {
	buildID  string
	builtAt  time.Time
	strategy string

	ids      []int
	index    map[int]int // product id -> row
	products []Product
	spaces   []vectorSpace

	maxPopularity    int
	popularityWeight float64
}

// buildSnapshot reads the full catalog and fits a new snapshot. A catalog
// read failure is fatal to the build; order-history lookups degrade
// gracefully per product.
func buildSnapshot(ctx context.Context, dp DataProvider, strat SimilarityStrategy, cfg *Config, logger zerolog.Logger) (*snapshot, error) {
	products, err := dp.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	snap := &snapshot{
		buildID:          uuid.NewString(),
		builtAt:          time.Now(),
		strategy:         strat.Name(),
		index:            make(map[int]int, len(products)),
		popularityWeight: cfg.Weights.Popularity,
	}
	if len(products) == 0 {
		return snap, nil
	}

	counts, err := dp.GetOrderCounts(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("order history unavailable, popularity defaults to zero")
		counts = nil
	}

	var docs corpus
	snap.ids = make([]int, len(products))
	snap.products = make([]Product, len(products))
	enrichmentFailures := 0
	for i := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := products[i]
		p.Popularity = counts[p.ID]
		if p.Popularity > snap.maxPopularity {
			snap.maxPopularity = p.Popularity
		}
		snap.ids[i] = p.ID
		snap.index[p.ID] = i
		snap.products[i] = p

		parts := []string{p.Name, p.Description, p.Category, p.Compatibility, p.Manufacturer}
		if sig, err := dp.GetProductSignals(ctx, p.ID); err == nil {
			if sig.Users != "" {
				parts = append(parts, sig.Users)
			}
			if sig.Statuses != "" {
				parts = append(parts, sig.Statuses)
			}
		} else {
			enrichmentFailures++
		}

		docs.text = append(docs.text, strings.Join(parts, " "))
		docs.category = append(docs.category, strings.ToLower(p.Category+" "+p.Compatibility))
		docs.manufacturer = append(docs.manufacturer, manufacturerDocument(p))
	}

	if enrichmentFailures > 0 {
		logger.Debug().
			Int("products", enrichmentFailures).
			Msg("signal enrichment skipped")
	}

	snap.spaces = strat.buildSpaces(docs, cfg)
	return snap, nil
}

// recommendations scores every other product against the query row and
// returns the topK survivors, ordered by blended score descending. Unknown
// product ids yield an empty list: the product may have been deleted after
// the snapshot was built.
func (s *snapshot) recommendations(productID, topK int) []Recommendation {
	results := []Recommendation{}
	idx, ok := s.index[productID]
	if !ok {
		return results
	}

	n := len(s.ids)
	scores := make([]float64, n)
	for _, sp := range s.spaces {
		if sp.mat == nil || sp.weight == 0 {
			continue
		}
		sims := sp.mat.similarities(idx)
		// Sentinel: the query product never recommends itself.
		sims[idx] = -1
		for i := range scores {
			scores[i] += sp.weight * sims[i]
		}
	}

	if s.popularityWeight > 0 && s.maxPopularity > 0 {
		maxPop := float64(s.maxPopularity)
		for i := range scores {
			scores[i] += s.popularityWeight * float64(s.products[i].Popularity) / maxPop
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps original row order on ties.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	for _, i := range order {
		if len(results) >= topK {
			break
		}
		if i == idx || scores[i] <= 0 {
			continue
		}
		p := s.products[i]
		results = append(results, Recommendation{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Image: p.Image,
			Score: scores[i],
		})
	}
	return results
}
