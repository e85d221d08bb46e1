// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// spaceExport is the serialized form of one fitted vector space.
type spaceExport struct {
	Name       string            `json:"name"`
	Weight     float64           `json:"weight"`
	Vocabulary map[string]int    `json:"vocabulary"`
	IDF        []float64         `json:"idf"`
	Rows       []map[int]float64 `json:"rows"`
}

// snapshotExport is the serialized form of a fitted snapshot. It carries
// everything needed to score offline: vocabularies, IDF vectors and the
// normalized document rows of every space.
type snapshotExport struct {
	BuildID  string        `json:"build_id"`
	Strategy string        `json:"strategy"`
	BuiltAt  string        `json:"built_at"`
	IDs      []int         `json:"ids"`
	Products []Product     `json:"products"`
	Spaces   []spaceExport `json:"spaces"`
}

// ExportSnapshot writes the currently published snapshot to w as JSON.
// Intended for offline inspection and for warming scoring jobs that do
// not have database access.
func (e *Engine) ExportSnapshot(w io.Writer) error {
	snap := e.snap.Load()

	out := snapshotExport{
		BuildID:  snap.buildID,
		Strategy: snap.strategy,
		BuiltAt:  snap.builtAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		IDs:      snap.ids,
		Products: snap.products,
		Spaces:   make([]spaceExport, 0, len(snap.spaces)),
	}

	for _, sp := range snap.spaces {
		se := spaceExport{
			Name:       sp.name,
			Weight:     sp.weight,
			Vocabulary: sp.vec.vocabulary,
			IDF:        sp.vec.idf,
			Rows:       make([]map[int]float64, len(sp.mat.rows)),
		}
		for i, row := range sp.mat.rows {
			se.Rows[i] = row
		}
		out.Spaces = append(out.Spaces, se)
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
