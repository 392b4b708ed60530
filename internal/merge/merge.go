// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge combines the HuggingFace and ArXiv paper sets into one
// deduplicated list ranked by popularity.
package merge

import (
	"sort"
	"strings"

	"github.com/pdiddy/daily-digest/pkg/types"
)

// Stats reports what MergeAndRank dropped.
type Stats struct {
	// DupsRemoved counts secondary papers whose key was already taken.
	DupsRemoved int

	// Unkeyed counts papers with neither a title nor a PDF link.
	Unkeyed int
}

// MergeAndRank deduplicates primary and secondary by normalized title
// (falling back to the PDF link) and sorts the result by popularity,
// descending. On a key collision the primary paper wins. Papers of equal
// popularity keep their first-seen order.
func MergeAndRank(primary, secondary []types.Paper) []types.Paper {
	merged, _ := MergeAndRankStats(primary, secondary)
	return merged
}

// MergeAndRankStats is MergeAndRank with dedup statistics.
func MergeAndRankStats(primary, secondary []types.Paper) ([]types.Paper, Stats) {
	var (
		seen   = make(map[string]bool)
		merged = make([]types.Paper, 0, len(primary)+len(secondary))
		stats  Stats
	)
	add := func(p types.Paper) {
		key := dedupKey(p)
		if key == "" {
			stats.Unkeyed++
			return
		}
		if seen[key] {
			stats.DupsRemoved++
			return
		}
		seen[key] = true
		merged = append(merged, p)
	}
	for _, p := range primary {
		add(p)
	}
	for _, p := range secondary {
		add(p)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Popularity() > merged[j].Popularity()
	})
	return merged, stats
}

// dedupKey returns "title:<normalized>" or, when the title normalizes to
// nothing, "pdf:<link>". It returns "" when neither is available.
func dedupKey(p types.Paper) string {
	if n := NormalizeTitle(p.Title); n != "" {
		return "title:" + n
	}
	if p.PDFLink != "" {
		return "pdf:" + p.PDFLink
	}
	return ""
}

// stripped holds the punctuation removed from titles before comparison.
const stripped = `.,;:!?()[]{}'"`

// NormalizeTitle lowercases title, collapses whitespace runs to one space,
// trims it, and removes the characters in stripped.
func NormalizeTitle(title string) string {
	collapsed := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripped, r) {
			return -1
		}
		return r
	}, collapsed)
}
