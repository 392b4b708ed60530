// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter selects the records matching a field and institution
// selection. Every function returns a new slice and preserves input order.
package filter

import (
	"github.com/pdiddy/daily-digest/pkg/types"
)

// Match reports whether a record with the given field value and
// comma-separated institution value passes sel. The field must be one of the
// selected fields and at least one institution must be selected, unless the
// respective wildcard is selected. Empty values never match a non-wildcard
// selection.
func Match(field, institution string, sel types.Selection) bool {
	return matchField(field, sel) && matchInstitution(institution, sel)
}

func matchField(field string, sel types.Selection) bool {
	if sel.AllFields() {
		return true
	}
	return field != "" && sel.HasField(field)
}

func matchInstitution(institution string, sel types.Selection) bool {
	if sel.AllInstitutions() {
		return true
	}
	for _, inst := range types.SplitList(institution) {
		if sel.HasInstitution(inst) {
			return true
		}
	}
	return false
}

// Articles returns the articles matching sel.
func Articles(articles []types.Article, sel types.Selection) []types.Article {
	out := make([]types.Article, 0, len(articles))
	for _, a := range articles {
		if Match(a.Field, a.Institution, sel) {
			out = append(out, a)
		}
	}
	return out
}

// Papers returns the papers matching sel.
func Papers(papers []types.Paper, sel types.Selection) []types.Paper {
	out := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if Match(p.Field, p.Institution, sel) {
			out = append(out, p)
		}
	}
	return out
}

// Counts holds the per-family totals before and after filtering.
type Counts struct {
	Articles, FilteredArticles int
	HF, FilteredHF             int
	Arxiv, FilteredArxiv       int
}

// Papers returns the combined paper total before dedup.
func (c Counts) Papers() int { return c.HF + c.Arxiv }

// FilteredPapers returns the combined filtered paper total before dedup.
func (c Counts) FilteredPapers() int { return c.FilteredHF + c.FilteredArxiv }

// Total returns all records before filtering.
func (c Counts) Total() int { return c.Articles + c.Papers() }

// FilteredTotal returns all records after filtering.
func (c Counts) FilteredTotal() int { return c.FilteredArticles + c.FilteredPapers() }

// Count computes Counts for a snapshot under sel.
func Count(snap types.Snapshot, sel types.Selection) Counts {
	return Counts{
		Articles:         len(snap.Articles),
		FilteredArticles: len(Articles(snap.Articles, sel)),
		HF:               len(snap.HFPapers),
		FilteredHF:       len(Papers(snap.HFPapers, sel)),
		Arxiv:            len(snap.ArxivPapers),
		FilteredArxiv:    len(Papers(snap.ArxivPapers, sel)),
	}
}
