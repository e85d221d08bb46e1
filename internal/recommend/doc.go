// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

// Package recommend implements the content-based related-products engine.
//
// The engine fits TF-IDF vector spaces over the product catalog and scores
// candidates with a weighted blend of per-space cosine similarity plus a
// normalized popularity term. Two strategy variants exist: a multi-space
// blend over product text, category and manufacturer, and a single
// full-text space.
//
// All fitted state lives in an immutable snapshot behind an atomic
// pointer. Queries never block on rebuilds, rebuilds are serialized, and a
// failed rebuild leaves the previous snapshot serving. Data access goes
// through the DataProvider interface so storage backends stay decoupled
// from scoring.
package recommend
