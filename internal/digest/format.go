// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/daily-digest/pkg/types"
)

// FormatTable writes the view as two fixed-width tables: ranked papers,
// then articles, followed by the summary line.
func FormatTable(v View, w io.Writer) {
	fmt.Fprintf(w, "Papers (%s)\n", v.Date)
	if reason := v.PaperEmptyReason(); reason != "" {
		fmt.Fprintln(w, reason)
	} else {
		fmt.Fprintf(w, "%-4s  %-60s  %-6s  %-5s  %-20s  %s\n",
			"Rank", "Title", "Source", "Votes", "Field", "Institutions")
		fmt.Fprintln(w, strings.Repeat("-", 120))
		for i, p := range v.Papers {
			fmt.Fprintf(w, "%-4d  %-60s  %-6s  %-5d  %-20s  %s\n",
				i+1, truncate(DisplayTitle(p.Title), 60), p.Family, p.Popularity(),
				truncate(p.Field, 20), strings.Join(DisplayInstitutions(p.Institutions()), ", "))
		}
	}
	if v.Merge.DupsRemoved > 0 {
		fmt.Fprintf(w, "(%d duplicates removed)\n", v.Merge.DupsRemoved)
	}

	fmt.Fprintf(w, "\nArticles (%s)\n", v.Date)
	if reason := v.ArticleEmptyReason(); reason != "" {
		fmt.Fprintln(w, reason)
	} else {
		fmt.Fprintf(w, "%-4s  %-60s  %-20s  %s\n", "#", "Title", "Source", "Field")
		fmt.Fprintln(w, strings.Repeat("-", 100))
		for i, a := range v.Articles {
			fmt.Fprintf(w, "%-4d  %-60s  %-20s  %s\n",
				i+1, truncate(ArticleTitle(a), 60), truncate(a.Source, 20), a.Field)
		}
	}

	fmt.Fprintf(w, "\n%s\n", v.Summary())
}

// FormatJSON writes the view as indented JSON to w.
func FormatJSON(v View, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// ShareText formats a record for pasting elsewhere. The summary line is
// omitted when summary is blank.
func ShareText(title, link, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "标题：%s\n链接：%s\n", title, link)
	if strings.TrimSpace(summary) != "" {
		fmt.Fprintf(&b, "摘要：%s\n", summary)
	}
	return b.String()
}

// SharePaper returns the share text for a paper.
func SharePaper(p types.Paper) string {
	title := p.ChineseTitle
	if title == "" {
		title = p.Title
	}
	return ShareText(DisplayTitle(title), p.Link(), CleanMarkdown(p.BriefSummary))
}

// ShareArticle returns the share text for an article.
func ShareArticle(a types.Article) string {
	summary := a.BriefSummary
	if summary == "" {
		summary = a.Summary
	}
	return ShareText(ArticleTitle(a), a.URL, CleanMarkdown(summary))
}

// ArticleTitle prefers the report title, then the title.
func ArticleTitle(a types.Article) string {
	switch {
	case a.ReportTitle != "":
		return DisplayTitle(a.ReportTitle)
	case a.Title != "":
		return DisplayTitle(a.Title)
	}
	return "无标题"
}

var (
	headingRE = regexp.MustCompile(`#{1,6}\s+`)
	linkRE    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	cjkLatin  = regexp.MustCompile(`([\x{4e00}-\x{9fa5}])([a-zA-Z0-9])`)
	latinCJK  = regexp.MustCompile(`([a-zA-Z0-9])([\x{4e00}-\x{9fa5}])`)
)

// CleanMarkdown strips heading markers and reduces [text](url) links to
// their text.
func CleanMarkdown(s string) string {
	s = headingRE.ReplaceAllString(s, "")
	return linkRE.ReplaceAllString(s, "$1")
}

// SpaceCJK inserts a space wherever a CJK character meets a Latin letter
// or digit.
func SpaceCJK(s string) string {
	s = cjkLatin.ReplaceAllString(s, "$1 $2")
	return latinCJK.ReplaceAllString(s, "$1 $2")
}

// DisplayTitle flattens line breaks in a title and spaces CJK/Latin runs.
func DisplayTitle(s string) string {
	return SpaceCJK(strings.Join(strings.Fields(s), " "))
}

// DisplayInstitutions drops the catch-all "Other" tag.
func DisplayInstitutions(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "Other" {
			out = append(out, t)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
