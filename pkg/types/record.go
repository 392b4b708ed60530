// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the daily-digest pipeline:
// the three record families parsed from the per-day CSV files, the filter
// selection, the cached snapshot, and configuration.
package types

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Record is a single parsed CSV row keyed by (possibly translated) header
// name. Its key set is exactly the header set of the source CSV.
type Record map[string]string

// Family identifies which CSV a record came from.
type Family string

const (
	FamilyArticle Family = "article"
	FamilyHF      Family = "hf"
	FamilyArxiv   Family = "arxiv"
)

// String returns the family name.
func (f Family) String() string { return string(f) }

// Canonical article keys after header translation.
const (
	ArticleSource         = "source"
	ArticleDate           = "date"
	ArticleTitle          = "title"
	ArticleReportTitle    = "report_title"
	ArticleBriefSummary   = "brief_summary"
	ArticleSummary        = "summary"
	ArticleURL            = "url"
	ArticleField          = "field"
	ArticleInstitution    = "institution"
	ArticleIndustryLeader = "industry_leader"
)

// Native paper headers. Paper CSVs keep their headers verbatim.
const (
	PaperTitle        = "标题"
	PaperChineseTitle = "中文标题"
	PaperPDFLink      = "PDF链接"
	PaperAlphaXivLink = "AlphaXiv链接"
	PaperLink         = "论文链接"
	PaperField        = "领域分类"
	PaperInstitution  = "研究机构"
	PaperBriefSummary = "简明摘要"
	PaperUpvotes      = "Upvote数"
	PaperLikes        = "点赞数"
)

// Article is a WeChat article row.
type Article struct {
	Source         string `json:"source" yaml:"source"`
	Date           string `json:"date" yaml:"date"`
	Title          string `json:"title" yaml:"title"`
	ReportTitle    string `json:"report_title" yaml:"report_title"`
	BriefSummary   string `json:"brief_summary" yaml:"brief_summary"`
	Summary        string `json:"summary" yaml:"summary"`
	URL            string `json:"url" yaml:"url"`
	Field          string `json:"field" yaml:"field"`
	Institution    string `json:"institution" yaml:"institution"`
	IndustryLeader string `json:"industry_leader" yaml:"industry_leader"`

	// Extra holds columns outside the canonical set.
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Institutions splits the comma-separated institution value.
func (a Article) Institutions() []string { return SplitList(a.Institution) }

// IndustryLeaders splits the comma-separated industry leader value.
func (a Article) IndustryLeaders() []string { return SplitList(a.IndustryLeader) }

// Paper is a HuggingFace or ArXiv paper row.
type Paper struct {
	Family       Family `json:"family" yaml:"family"`
	Title        string `json:"title" yaml:"title"`
	ChineseTitle string `json:"chinese_title" yaml:"chinese_title"`
	PDFLink      string `json:"pdf_link" yaml:"pdf_link"`
	AlphaXivLink string `json:"alphaxiv_link" yaml:"alphaxiv_link"`
	PaperLink    string `json:"paper_link" yaml:"paper_link"`
	Field        string `json:"field" yaml:"field"`
	Institution  string `json:"institution" yaml:"institution"`
	BriefSummary string `json:"brief_summary" yaml:"brief_summary"`

	// Votes is the raw popularity value, read from "Upvote数" (HF) or
	// "点赞数" (ArXiv), whichever is non-empty first.
	Votes string `json:"votes" yaml:"votes"`

	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Institutions splits the comma-separated institution value.
func (p Paper) Institutions() []string { return SplitList(p.Institution) }

// Popularity parses Votes the way a lenient integer parse would: the leading
// optionally signed digit run counts, anything else is 0.
func (p Paper) Popularity() int {
	return leadingInt(p.Votes)
}

// Link picks the best landing link for the paper.
func (p Paper) Link() string {
	for _, l := range []string{p.PaperLink, p.AlphaXivLink, p.PDFLink} {
		if l != "" {
			return l
		}
	}
	return ""
}

// SplitList splits a comma-separated value and trims each token. Empty
// tokens are dropped.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}
