// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"context"
	"time"
)

// Product is a catalog record as seen by the engine. It is read-only: the
// engine caches a copy of the catalog at build time and never writes back.
type Product struct {
	// ID is the unique product identifier.
	ID int `json:"id"`

	// Name is the product display name.
	Name string `json:"name"`

	// Description is the free-text product description.
	Description string `json:"description"`

	// Category is the category label (e.g., "Brakes").
	Category string `json:"category"`

	// Compatibility is free text describing compatible vehicles.
	Compatibility string `json:"compatibility"`

	// Manufacturer is the manufacturer name as stored.
	Manufacturer string `json:"manufacturer"`

	// Price is the price as stored (decimal-as-text).
	Price string `json:"price"`

	// Image is the product image reference.
	Image string `json:"image"`

	// Popularity is the number of historical orders referencing this
	// product. It is recomputed in full on every build.
	Popularity int `json:"popularity"`
}

// ProductSignals carries the denormalized order-history text associated with
// one product: the distinct purchaser logins and the distinct order statuses.
type ProductSignals struct {
	Users    string `json:"users"`
	Statuses string `json:"statuses"`
}

// Recommendation is one ranked related-product entry.
type Recommendation struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price string  `json:"price"`
	Image string  `json:"image"`
	Score float64 `json:"score"`
}

// DataProvider defines the interface for fetching catalog and order-history
// data. This is typically implemented by the storage layer; keeping it an
// interface here avoids a dependency cycle and lets tests supply fakes.
type DataProvider interface {
	// GetProducts returns the full product catalog.
	// A failure here is fatal to the build that requested it.
	GetProducts(ctx context.Context) ([]Product, error)

	// GetOrderCounts returns the number of orders grouped by product id.
	// Best-effort: on failure all popularities default to zero.
	GetOrderCounts(ctx context.Context) (map[int]int, error)

	// GetProductSignals returns the order-history text signals for one
	// product. Best-effort: on failure enrichment is skipped for that
	// product and the build proceeds.
	GetProductSignals(ctx context.Context, productID int) (ProductSignals, error)
}

// Status reports the state of the currently published snapshot.
type Status struct {
	// BuildID uniquely identifies the snapshot build.
	BuildID string `json:"build_id"`

	// Strategy is the similarity strategy that built the snapshot.
	Strategy string `json:"strategy"`

	// ProductCount is the number of products in the snapshot.
	ProductCount int `json:"product_count"`

	// VocabularySizes maps each vector space name to its fitted
	// vocabulary size.
	VocabularySizes map[string]int `json:"vocabulary_sizes"`

	// BuiltAt is when the snapshot build completed.
	BuiltAt time.Time `json:"built_at"`

	// BuildDurationMS is how long the last successful build took.
	BuildDurationMS int64 `json:"build_duration_ms"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// QueryCount is the total number of recommendation queries served.
	QueryCount int64 `json:"query_count"`

	// EmptyResults is the number of queries that returned no items.
	EmptyResults int64 `json:"empty_results"`

	// BuildCount is the number of successful snapshot builds.
	BuildCount int64 `json:"build_count"`

	// LastBuildDurationMS is the duration of the last successful build.
	LastBuildDurationMS int64 `json:"last_build_duration_ms"`

	// ErrorCount is the number of failed builds.
	ErrorCount int64 `json:"error_count"`
}
