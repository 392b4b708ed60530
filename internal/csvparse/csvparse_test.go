// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package csvparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"escaped quote", `"a","b""c",d`, []string{"a", `b"c`, "d"}},
		{"empty", "", []string{""}},
		{"trailing comma", "a,", []string{"a", ""}},
		{"embedded newline", "\"x\ny\",z", []string{"x\ny", "z"}},
		{"lone trailing quote", `a,"b,c`, []string{"a", "b,c"}},
		{"doubled quote outside field", `a""b`, []string{"ab"}},
		{"unicode", `标题,"中文, 标题"`, []string{"标题", "中文, 标题"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.line))
		})
	}
}

func TestCleanField(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  x  ", "x"},
		{`"x"`, "x"},
		{` " x " `, "x"},
		{`""x""`, `"x"`},
		{`"x`, `"x`},
		{`"`, `"`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanField(tt.in), "CleanField(%q)", tt.in)
	}
}

func TestScannerMultiLine(t *testing.T) {
	var sc Scanner

	_, ok := sc.Feed(`1,"first line`)
	assert.False(t, ok)
	assert.True(t, sc.InQuotes())

	_, ok = sc.Feed("")
	assert.False(t, ok, "blank line inside quotes continues the row")

	fields, ok := sc.Feed(`last line",3`)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "first line\n\nlast line", "3"}, fields)
	assert.False(t, sc.InQuotes())
}

func TestScannerSkipsBlankLines(t *testing.T) {
	var sc Scanner
	_, ok := sc.Feed("   ")
	assert.False(t, ok)
	_, ok = sc.Flush()
	assert.False(t, ok)
}

func TestScannerFlushesOpenQuote(t *testing.T) {
	var sc Scanner
	_, ok := sc.Feed(`a,"unterminated`)
	require.False(t, ok)
	fields, ok := sc.Flush()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "unterminated"}, fields)
}

func TestParse(t *testing.T) {
	text := "\ufeff标题,研究机构,简明摘要\r\n" +
		"Paper A,\"Meta, THU\",\"line one\r\nline two\"\r\n" +
		"\r\n" +
		"Paper B,OpenAI,\"said \"\"hi\"\"\"\r\n"

	table := Parse(text)
	assert.Equal(t, []string{"标题", "研究机构", "简明摘要"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Paper A", "Meta, THU", "line one\nline two"}, table.Rows[0])
	assert.Equal(t, []string{"Paper B", "OpenAI", `said "hi"`}, table.Rows[1])
}

func TestParseMultiLineHeader(t *testing.T) {
	text := "\"a\nb\",c\n1,2\n"
	table := Parse(text)
	assert.Equal(t, []string{"a\nb", "c"}, table.Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
}

func TestParseEmpty(t *testing.T) {
	table := Parse("")
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)

	table = Parse("h1,h2\n")
	assert.Equal(t, []string{"h1", "h2"}, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestParseRaggedRows(t *testing.T) {
	table := Parse("h1,h2,h3\nv1,v2\nw1,w2,w3,w4\n")
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0], 2)
	assert.Len(t, table.Rows[1], 4)
}
