// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a digest view as YAML or JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/daily-digest/internal/digest"
)

// Format names an output encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case YAML, JSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want yaml or json)", s)
}

// Document is the exported form of one day's digest.
type Document struct {
	Date         string   `json:"date" yaml:"date"`
	Summary      string   `json:"summary" yaml:"summary"`
	Fields       []string `json:"fields" yaml:"fields"`
	Institutions []string `json:"institutions" yaml:"institutions"`
	Papers       []Entry  `json:"papers" yaml:"papers"`
	Articles     []Entry  `json:"articles" yaml:"articles"`
}

// Entry is one exported paper or article.
type Entry struct {
	Rank         int      `json:"rank" yaml:"rank"`
	Source       string   `json:"source" yaml:"source"`
	Title        string   `json:"title" yaml:"title"`
	ChineseTitle string   `json:"chinese_title,omitempty" yaml:"chinese_title,omitempty"`
	Link         string   `json:"link" yaml:"link"`
	Field        string   `json:"field" yaml:"field"`
	Institutions []string `json:"institutions" yaml:"institutions"`
	Popularity   int      `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// NewDocument flattens v into a Document. Papers keep their ranked order.
func NewDocument(v digest.View) Document {
	doc := Document{
		Date:         v.Date,
		Summary:      v.Summary(),
		Fields:       v.Fields,
		Institutions: v.Tags,
		Papers:       make([]Entry, len(v.Papers)),
		Articles:     make([]Entry, len(v.Articles)),
	}
	for i, p := range v.Papers {
		doc.Papers[i] = Entry{
			Rank:         i + 1,
			Source:       p.Family.String(),
			Title:        digest.DisplayTitle(p.Title),
			ChineseTitle: digest.DisplayTitle(p.ChineseTitle),
			Link:         p.Link(),
			Field:        p.Field,
			Institutions: digest.DisplayInstitutions(p.Institutions()),
			Popularity:   p.Popularity(),
			Summary:      digest.CleanMarkdown(p.BriefSummary),
		}
	}
	for i, a := range v.Articles {
		summary := a.BriefSummary
		if summary == "" {
			summary = a.Summary
		}
		doc.Articles[i] = Entry{
			Rank:         i + 1,
			Source:       a.Source,
			Title:        digest.ArticleTitle(a),
			Link:         a.URL,
			Field:        a.Field,
			Institutions: digest.DisplayInstitutions(a.Institutions()),
			Summary:      digest.CleanMarkdown(summary),
		}
	}
	return doc
}

// Encode writes doc to w in format f.
func Encode(w io.Writer, doc Document, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case YAML:
		data, err = yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	case JSON:
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
	_, err = w.Write(data)
	return err
}

// FileName returns the export file name for date in format f.
func FileName(date string, f Format) string {
	return fmt.Sprintf("digest_%s.%s", date, f)
}

// WriteFile exports v into dir and returns the written path.
func WriteFile(v digest.View, dir string, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(v.Date, f))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Encode(out, NewDocument(v), f); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// ExportYAML writes v to dir as YAML.
func ExportYAML(v digest.View, dir string) (string, error) {
	return WriteFile(v, dir, YAML)
}

// ExportJSON writes v to dir as JSON.
func ExportJSON(v digest.View, dir string) (string, error) {
	return WriteFile(v, dir, JSON)
}
