// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records maps tokenized CSV rows onto the three record families
// (WeChat articles, HuggingFace papers, ArXiv papers) and repairs the
// AlphaXiv link column.
package records

import (
	"github.com/pdiddy/daily-digest/internal/csvparse"
	"github.com/pdiddy/daily-digest/pkg/types"
)

// ArticleFieldMap translates the article CSV headers to canonical keys.
// Paper CSVs keep their headers verbatim and use no map.
var ArticleFieldMap = map[string]string{
	"公众号":    types.ArticleSource,
	"发布时间":   types.ArticleDate,
	"原标题":    types.ArticleTitle,
	"科技报告标题": types.ArticleReportTitle,
	"一句话总结":  types.ArticleBriefSummary,
	"摘要":     types.ArticleSummary,
	"URL":    types.ArticleURL,
	"领域分类":   types.ArticleField,
	"研究机构":   types.ArticleInstitution,
	"行业大佬":   types.ArticleIndustryLeader,
}

// MapRow zips headers against values. Keys are translated through fieldMap
// when it has an entry and are the trimmed header otherwise. Values are
// cleaned; missing positions map to "" and extra values are dropped.
func MapRow(headers, values []string, fieldMap map[string]string) types.Record {
	rec := make(types.Record, len(headers))
	for i, h := range headers {
		key := csvparse.CleanField(h)
		if mapped, ok := fieldMap[key]; ok {
			key = mapped
		}
		val := ""
		if i < len(values) {
			val = csvparse.CleanField(values[i])
		}
		rec[key] = val
	}
	return rec
}

// ParseStats counts rows whose value count did not match the header count.
type ParseStats struct {
	Rows      int
	Padded    int
	Truncated int
}

// Ragged reports whether any row was padded or truncated.
func (s ParseStats) Ragged() bool { return s.Padded > 0 || s.Truncated > 0 }

// ParseRecords tokenizes text and maps every data row.
func ParseRecords(text string, fieldMap map[string]string) ([]types.Record, ParseStats) {
	table := csvparse.Parse(text)
	var stats ParseStats
	if len(table.Headers) == 0 {
		return nil, stats
	}
	recs := make([]types.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		switch {
		case len(row) < len(table.Headers):
			stats.Padded++
		case len(row) > len(table.Headers):
			stats.Truncated++
		}
		recs = append(recs, MapRow(table.Headers, row, fieldMap))
	}
	stats.Rows = len(recs)
	return recs, stats
}

// ParseArticles parses a WeChat articles CSV.
func ParseArticles(text string) ([]types.Article, ParseStats) {
	recs, stats := ParseRecords(text, ArticleFieldMap)
	out := make([]types.Article, len(recs))
	for i, r := range recs {
		out[i] = NewArticle(r)
	}
	return out, stats
}

// ParsePapers parses a HuggingFace or ArXiv papers CSV and repairs the
// AlphaXiv links.
func ParsePapers(text string, family types.Family) ([]types.Paper, ParseStats) {
	recs, stats := ParseRecords(text, nil)
	out := make([]types.Paper, len(recs))
	for i, r := range recs {
		FixLink(r)
		out[i] = NewPaper(r, family)
	}
	return out, stats
}

// NewArticle lifts a translated record into an Article. Columns outside the
// canonical set land in Extra.
func NewArticle(r types.Record) types.Article {
	a := types.Article{}
	for k, v := range r {
		switch k {
		case types.ArticleSource:
			a.Source = v
		case types.ArticleDate:
			a.Date = v
		case types.ArticleTitle:
			a.Title = v
		case types.ArticleReportTitle:
			a.ReportTitle = v
		case types.ArticleBriefSummary:
			a.BriefSummary = v
		case types.ArticleSummary:
			a.Summary = v
		case types.ArticleURL:
			a.URL = v
		case types.ArticleField:
			a.Field = v
		case types.ArticleInstitution:
			a.Institution = v
		case types.ArticleIndustryLeader:
			a.IndustryLeader = v
		default:
			if a.Extra == nil {
				a.Extra = make(map[string]string)
			}
			a.Extra[k] = v
		}
	}
	return a
}

// NewPaper lifts a paper record into a Paper of the given family.
func NewPaper(r types.Record, family types.Family) types.Paper {
	p := types.Paper{Family: family}
	for k, v := range r {
		switch k {
		case types.PaperTitle:
			p.Title = v
		case types.PaperChineseTitle:
			p.ChineseTitle = v
		case types.PaperPDFLink:
			p.PDFLink = v
		case types.PaperAlphaXivLink:
			p.AlphaXivLink = v
		case types.PaperLink:
			p.PaperLink = v
		case types.PaperField:
			p.Field = v
		case types.PaperInstitution:
			p.Institution = v
		case types.PaperBriefSummary:
			p.BriefSummary = v
		case types.PaperUpvotes, types.PaperLikes:
			// handled below so the first non-empty one wins
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]string)
			}
			p.Extra[k] = v
		}
	}
	p.Votes = r[types.PaperUpvotes]
	if p.Votes == "" {
		p.Votes = r[types.PaperLikes]
	}
	return p
}
