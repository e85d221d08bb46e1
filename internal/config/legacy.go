// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package config

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/knadh/koanf/v2"
)

// legacyTuning mirrors the flat reco_config.json written by the storefront
// admin panel. Every field is optional; pointer fields distinguish "absent"
// from an explicit zero. Older panel versions wrote alpha/beta and
// cat_weight, newer ones write the w_* names.
type legacyTuning struct {
	WText         *float64 `json:"w_text"`
	Alpha         *float64 `json:"alpha"`
	WPopularity   *float64 `json:"w_popularity"`
	Beta          *float64 `json:"beta"`
	WCategory     *float64 `json:"w_category"`
	WManufacturer *float64 `json:"w_manufacturer"`
	CatScale      *float64 `json:"cat_scale"`
	CatWeight     *float64 `json:"cat_weight"`
}

// applyLegacyConfig merges the legacy tuning file into k. A missing file
// is not an error; a present but unreadable file is.
func applyLegacyConfig(k *koanf.Koanf, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read legacy tuning: %w", err)
	}

	var t legacyTuning
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("parse legacy tuning: %w", err)
	}

	// Modern key wins over its legacy alias when both are present.
	set := func(key string, modern, alias *float64) error {
		v := modern
		if v == nil {
			v = alias
		}
		if v == nil {
			return nil
		}
		if err := k.Set(key, *v); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	}

	if err := set("recommend.weights.text", t.WText, t.Alpha); err != nil {
		return err
	}
	if err := set("recommend.weights.popularity", t.WPopularity, t.Beta); err != nil {
		return err
	}
	if err := set("recommend.weights.category", t.WCategory, nil); err != nil {
		return err
	}
	if err := set("recommend.weights.manufacturer", t.WManufacturer, nil); err != nil {
		return err
	}
	return set("recommend.cat_scale", t.CatScale, t.CatWeight)
}
