// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/daily-digest/pkg/types"
)

func hf(title, votes string) types.Paper {
	return types.Paper{Family: types.FamilyHF, Title: title, Votes: votes}
}

func ax(title, votes string) types.Paper {
	return types.Paper{Family: types.FamilyArxiv, Title: title, Votes: votes}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Foo, Bar!  ", "foo bar"},
		{"foo bar", "foo bar"},
		{"Attention\tIs\n All  You Need", "attention is all you need"},
		{`(Q)uick [b]rown {f}ox: 'a' "b"; c? d.`, "quick brown fox a b c d"},
		{"Sora-2: A Study", "sora-2 a study"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.in))
		})
	}
	assert.Equal(t, NormalizeTitle("  Foo, Bar!  "), NormalizeTitle("foo bar"))
}

func TestMergePrimaryWins(t *testing.T) {
	merged := MergeAndRank(
		[]types.Paper{hf("A Study", "5")},
		[]types.Paper{ax("a study", "9")},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, types.FamilyHF, merged[0].Family)
	assert.Equal(t, 5, merged[0].Popularity())
}

func TestMergeRanksByPopularity(t *testing.T) {
	merged := MergeAndRank(
		[]types.Paper{hf("Low", "1"), hf("High", "30")},
		[]types.Paper{ax("Mid", "12")},
	)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"High", "Mid", "Low"}, titles(merged))
}

func TestMergeStableForEqualPopularity(t *testing.T) {
	merged := MergeAndRank(
		[]types.Paper{hf("P1", "3"), hf("P2", ""), hf("P3", "3")},
		[]types.Paper{ax("S1", "x"), ax("S2", "3")},
	)
	assert.Equal(t, []string{"P1", "P3", "S2", "P2", "S1"}, titles(merged))
}

func TestMergePDFFallback(t *testing.T) {
	primary := []types.Paper{
		{Family: types.FamilyHF, PDFLink: "https://x/1.pdf", Votes: "1"},
		{Family: types.FamilyHF, Title: "?!", PDFLink: "https://x/2.pdf", Votes: "2"},
		{Family: types.FamilyHF},
	}
	secondary := []types.Paper{
		{Family: types.FamilyArxiv, PDFLink: "https://x/1.pdf", Votes: "100"},
		{Family: types.FamilyArxiv, PDFLink: "https://x/3.pdf", Votes: "0"},
	}

	merged, stats := MergeAndRankStats(primary, secondary)
	require.Len(t, merged, 3)
	assert.Equal(t, 1, stats.DupsRemoved)
	assert.Equal(t, 1, stats.Unkeyed)
	assert.Equal(t, "https://x/2.pdf", merged[0].PDFLink)
	assert.Equal(t, types.FamilyHF, merged[1].Family)
	assert.Equal(t, "https://x/1.pdf", merged[1].PDFLink)
}

func TestMergePunctuationTitlesFallBackToPDF(t *testing.T) {
	primary := []types.Paper{
		{Family: types.FamilyHF, Title: "?!", PDFLink: "https://x/a.pdf", Votes: "3"},
		{Family: types.FamilyHF, Title: "...", PDFLink: "https://x/b.pdf", Votes: "2"},
	}
	secondary := []types.Paper{
		{Family: types.FamilyArxiv, Title: "()", PDFLink: "https://x/c.pdf", Votes: "1"},
		{Family: types.FamilyArxiv, Title: "!", PDFLink: "https://x/a.pdf", Votes: "9"},
	}

	merged, stats := MergeAndRankStats(primary, secondary)
	require.Len(t, merged, 3)
	assert.Equal(t, 1, stats.DupsRemoved)
	assert.Equal(t, "https://x/a.pdf", merged[0].PDFLink)
	assert.Equal(t, types.FamilyHF, merged[0].Family)
	assert.Equal(t, "https://x/b.pdf", merged[1].PDFLink)
	assert.Equal(t, "https://x/c.pdf", merged[2].PDFLink)
}

func TestMergeDedupsWithinOneSource(t *testing.T) {
	merged, stats := MergeAndRankStats([]types.Paper{hf("Same", "1"), hf("same.", "2")}, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, 1, merged[0].Popularity())
	assert.Equal(t, 1, stats.DupsRemoved)
}

func TestMergeEmpty(t *testing.T) {
	merged := MergeAndRank(nil, nil)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}

func titles(papers []types.Paper) []string {
	out := make([]string, len(papers))
	for i, p := range papers {
		out[i] = p.Title
	}
	return out
}
