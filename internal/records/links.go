package records

import (
	"strings"

	"github.com/pdiddy/daily-digest/pkg/types"
)

const (
	brokenMarker = "arxiv"
	fixedMarker  = "alphaxiv"
)

// FixLink rewrites every "arxiv" in the AlphaXiv link column to "alphaxiv".
// The result never contains "arxiv" again, so applying it twice is the same
// as applying it once. Records without the column are untouched.
func FixLink(r types.Record) {
	link, ok := r[types.PaperAlphaXivLink]
	if !ok {
		return
	}
	r[types.PaperAlphaXivLink] = fixAlphaXiv(link)
}

// FixPaperLinks applies the same rewrite to typed papers in place. It runs on
// every load path, cache restores included.
func FixPaperLinks(papers []types.Paper) {
	for i := range papers {
		papers[i].AlphaXivLink = fixAlphaXiv(papers[i].AlphaXivLink)
	}
}

func fixAlphaXiv(link string) string {
	if !strings.Contains(link, brokenMarker) {
		return link
	}
	return strings.ReplaceAll(link, brokenMarker, fixedMarker)
}
