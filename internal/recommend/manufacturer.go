// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package recommend

import (
	"fmt"
	"regexp"
	"strings"
)

// manufacturerPlaceholderPrefix marks the synthetic per-product token used
// when the manufacturer name normalizes to nothing.
const manufacturerPlaceholderPrefix = "__no_manufacturer_"

var (
	legalSuffixPattern = regexp.MustCompile(`\b(llc|ltd|inc|corp|corporation|gmbh|srl|oy|sa|limited)\b`)
	nonNamePattern     = regexp.MustCompile(`[^a-z0-9а-яё\s]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// normalizeManufacturer canonicalizes a manufacturer name for fuzzy
// matching: lowercase, legal-entity suffixes removed as whole words,
// everything outside letters/digits/whitespace stripped, whitespace
// collapsed. Returns an empty string for names with no usable content.
func normalizeManufacturer(name string) string {
	s := strings.ToLower(name)
	s = legalSuffixPattern.ReplaceAllString(s, "")
	s = nonNamePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// manufacturerDocument returns the manufacturer-space document for a
// product. Blank names get a distinct per-product placeholder so two
// products with a missing manufacturer are never treated as matching.
func manufacturerDocument(p Product) string {
	if s := normalizeManufacturer(p.Manufacturer); s != "" {
		return s
	}
	return fmt.Sprintf("%s%d", manufacturerPlaceholderPrefix, p.ID)
}
