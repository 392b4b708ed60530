// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates maps calendar days to the per-day CSV file names and
// enumerates the days a digest is offered for.
package dates

import (
	"fmt"
	"time"
)

// Layout is the date token format used in file names and flags.
const Layout = "2006-01-02"

// DefaultDays is how many past days are offered when unconfigured.
const DefaultDays = 7

// Filenames holds the three fetch keys for one day.
type Filenames struct {
	Articles    string `json:"articles" yaml:"articles"`
	HFPapers    string `json:"hf_papers" yaml:"hf_papers"`
	ArxivPapers string `json:"arxiv_papers" yaml:"arxiv_papers"`
}

// ResolveFilenames interpolates date into the three file name templates.
func ResolveFilenames(date string) Filenames {
	return Filenames{
		Articles:    fmt.Sprintf("wechat_articles_%s.csv", date),
		HFPapers:    fmt.Sprintf("huggingface_papers_%s.csv", date),
		ArxivPapers: fmt.Sprintf("arxiv_papers_%s.csv", date),
	}
}

// Format renders t as a date token in t's location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the date token for now.
func Today(now time.Time) string {
	return Format(now)
}

// DatesBack returns n date tokens ending at now's calendar day, newest first.
func DatesBack(n int, now time.Time) []string {
	if n <= 0 {
		return nil
	}
	y, m, d := now.Date()
	out := make([]string, n)
	for i := range out {
		out[i] = Format(time.Date(y, m, d-i, 0, 0, 0, 0, now.Location()))
	}
	return out
}

// Parse validates a date token.
func Parse(token string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, token, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", token)
	}
	return t, nil
}

// Label renders the human label for a date relative to now: 今天 for today,
// 昨天 for yesterday, and M月D日 otherwise. Unparsable tokens are returned
// unchanged.
func Label(token string, now time.Time) string {
	switch token {
	case Today(now):
		return "今天"
	case DatesBack(2, now)[1]:
		return "昨天"
	}
	t, err := Parse(token)
	if err != nil {
		return token
	}
	return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
}
