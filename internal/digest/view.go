// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"fmt"
	"strings"

	"github.com/pdiddy/daily-digest/internal/filter"
	"github.com/pdiddy/daily-digest/internal/merge"
	"github.com/pdiddy/daily-digest/pkg/types"
)

// Empty-state messages shown when a section has nothing to display.
const (
	NoArticles       = "暂无微信公众号文章"
	NoPapers         = "暂无论文"
	NoMatchingPapers = "没有符合要求的论文"
)

// View is what gets presented for one snapshot under one selection.
type View struct {
	Date      string          `json:"date" yaml:"date"`
	Fields    []string        `json:"fields" yaml:"fields"`
	Tags      []string        `json:"institutions" yaml:"institutions"`
	Articles  []types.Article `json:"articles" yaml:"articles"`
	Papers    []types.Paper   `json:"papers" yaml:"papers"`
	Counts    filter.Counts   `json:"-" yaml:"-"`
	Merge     merge.Stats     `json:"-" yaml:"-"`
	Selection types.Selection `json:"-" yaml:"-"`
}

// BuildView filters snap under sel, then merges and ranks the two paper
// sets with Hugging Face taking precedence.
func BuildView(snap types.Snapshot, sel types.Selection) View {
	papers, stats := merge.MergeAndRankStats(
		filter.Papers(snap.HFPapers, sel),
		filter.Papers(snap.ArxivPapers, sel),
	)
	return View{
		Date:      snap.Date,
		Fields:    sel.Fields(),
		Tags:      sel.InstitutionTags(),
		Articles:  filter.Articles(snap.Articles, sel),
		Papers:    papers,
		Counts:    filter.Count(snap, sel),
		Merge:     stats,
		Selection: sel,
	}
}

// PaperEmptyReason returns the message for an empty paper list, or "" when
// there are papers. Filtering that hides every paper is reported apart from
// a day with no papers at all.
func (v View) PaperEmptyReason() string {
	if len(v.Papers) > 0 {
		return ""
	}
	if v.Selection.IsFiltering() && v.Counts.Papers() > 0 {
		return NoMatchingPapers
	}
	return NoPapers
}

// ArticleEmptyReason returns the message for an empty article list, or "".
func (v View) ArticleEmptyReason() string {
	if len(v.Articles) > 0 {
		return ""
	}
	return NoArticles
}

// Summary describes the selection and how many records it kept. Paper
// counts are taken before cross-source dedup.
func (v View) Summary() string {
	c := v.Counts
	sel := v.Selection
	if !sel.IsFiltering() {
		return fmt.Sprintf("显示全部 %d 篇内容（%d 篇论文，%d 篇微信推文）",
			c.Total(), c.FilteredPapers(), c.FilteredArticles)
	}

	var parts []string
	if !sel.AllFields() {
		parts = append(parts, "领域: "+strings.Join(sel.Fields(), ", "))
	}
	if !sel.AllInstitutions() {
		parts = append(parts, "机构: "+strings.Join(sel.InstitutionTags(), ", "))
	}
	return fmt.Sprintf("筛选条件: %s (%d/%d，%d 篇论文，%d 篇微信文章)",
		strings.Join(parts, ", "), c.FilteredTotal(), c.Total(), c.FilteredPapers(), c.FilteredArticles)
}
