// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

// Package storage reads the storefront's SQLite database: the goods
// catalog, the orders table for popularity counts, and the denormalized
// order-history table for per-product text signals. Store satisfies the
// recommend package's DataProvider interface.
package storage
