// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"sort"
	"time"
)

// All is the wildcard tag that matches every field or institution.
const All = "all"

// Selection is the immutable filter context passed to every filter call:
// the chosen field tags, institution tags, and date. It is never stored in
// the cache.
type Selection struct {
	Date         string
	fields       map[string]bool
	institutions map[string]bool
}

// NewSelection builds a Selection. An empty tag list means the wildcard.
func NewSelection(date string, fields, institutions []string) Selection {
	return Selection{
		Date:         date,
		fields:       toSet(fields),
		institutions: toSet(institutions),
	}
}

// DefaultSelection selects everything for the given date.
func DefaultSelection(date string) Selection {
	return NewSelection(date, nil, nil)
}

// WithDate returns a copy of s for another date. Tags carry over unchanged.
func (s Selection) WithDate(date string) Selection {
	s.Date = date
	return s
}

// HasField reports whether tag is selected.
func (s Selection) HasField(tag string) bool { return s.fields[tag] }

// HasInstitution reports whether tag is selected.
func (s Selection) HasInstitution(tag string) bool { return s.institutions[tag] }

// AllFields reports whether the field wildcard is selected.
func (s Selection) AllFields() bool { return s.fields[All] }

// AllInstitutions reports whether the institution wildcard is selected.
func (s Selection) AllInstitutions() bool { return s.institutions[All] }

// IsFiltering reports whether either dimension narrows the result.
func (s Selection) IsFiltering() bool {
	return !s.AllFields() || !s.AllInstitutions()
}

// Fields returns the selected field tags, sorted.
func (s Selection) Fields() []string { return sortedKeys(s.fields) }

// InstitutionTags returns the selected institution tags, sorted.
func (s Selection) InstitutionTags() []string { return sortedKeys(s.institutions) }

func toSet(tags []string) map[string]bool {
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t != "" {
			m[t] = true
		}
	}
	if len(m) == 0 {
		m[All] = true
	}
	return m
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot bundles the three record sets of one date with the time they
// were written to the cache.
type Snapshot struct {
	Date        string    `json:"date" yaml:"date"`
	Articles    []Article `json:"articles" yaml:"articles"`
	HFPapers    []Paper   `json:"hf_papers" yaml:"hf_papers"`
	ArxivPapers []Paper   `json:"arxiv_papers" yaml:"arxiv_papers"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}
