// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package csvparse tokenizes the loosely quoted CSV produced by the digest
// crawlers. It tolerates embedded commas, embedded newlines inside quoted
// fields, doubled quotes, ragged rows and unterminated quotes; it never
// rejects input.
package csvparse

import "strings"

const bom = "\ufeff"

// Tokenize splits one logical row into fields. A double quote toggles the
// quoted state, except that "" inside a quoted field yields one literal
// quote. Commas split fields only outside quotes. Any other character,
// newlines included, is kept as-is.
func Tokenize(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}

// CleanField trims surrounding whitespace and strips at most one pair of
// enclosing double quotes.
func CleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// Table is a parsed CSV document. Rows hold raw tokens; callers clean and
// align them against Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Parse splits text into a header row and data rows. Line endings are
// normalized first; quoted fields may span lines. An empty document yields
// an empty Table.
func Parse(text string) Table {
	text = strings.TrimPrefix(text, bom)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var (
		t      Table
		sc     Scanner
		header = true
	)
	emit := func(fields []string) {
		if header {
			t.Headers = make([]string, len(fields))
			for i, f := range fields {
				t.Headers[i] = CleanField(f)
			}
			header = false
			return
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			return
		}
		t.Rows = append(t.Rows, fields)
	}

	for _, line := range strings.Split(text, "\n") {
		if fields, ok := sc.Feed(line); ok {
			emit(fields)
		}
	}
	if fields, ok := sc.Flush(); ok {
		emit(fields)
	}
	return t
}
