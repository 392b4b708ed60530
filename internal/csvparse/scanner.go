package csvparse

import "strings"

// Scanner assembles logical rows from physical lines. While a quoted field
// is open, each further line (blank ones included) continues the row with
// its newline preserved.
type Scanner struct {
	buf      strings.Builder
	started  bool
	inQuotes bool
}

// Feed adds one physical line, without its terminator. It returns the
// tokenized row once the row is complete. Blank lines outside a quoted
// field are skipped.
func (s *Scanner) Feed(line string) ([]string, bool) {
	if !s.inQuotes && strings.TrimSpace(line) == "" {
		return nil, false
	}
	if s.started {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)
	s.started = true

	for i := 0; i < len(line); i++ {
		if line[i] == '"' {
			s.inQuotes = !s.inQuotes
		}
	}
	if s.inQuotes {
		return nil, false
	}
	return s.take(), true
}

// InQuotes reports whether the pending row has an unterminated quote.
func (s *Scanner) InQuotes() bool { return s.inQuotes }

// Flush returns any pending row, even one left open by a lone quote.
func (s *Scanner) Flush() ([]string, bool) {
	if !s.started {
		return nil, false
	}
	return s.take(), true
}

func (s *Scanner) take() []string {
	fields := Tokenize(s.buf.String())
	s.buf.Reset()
	s.started = false
	s.inQuotes = false
	return fields
}
