// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/daily-digest/internal/cache"
	"github.com/pdiddy/daily-digest/internal/fetch"
	"github.com/pdiddy/daily-digest/pkg/types"
)

// --- test helpers ---

const testDate = "2026-10-19"

const hfCSV = "\ufeff标题,中文标题,PDF链接,AlphaXiv链接,领域分类,研究机构,简明摘要,Upvote数\r\n" +
	"Scaling Laws for Agents,智能体扩展定律,https://arxiv.org/pdf/1,https://arxiv.org/abs/1,LLM,\"DeepMind, Other\",摘要一,10\r\n" +
	"Tiny Diffusion,小扩散,https://arxiv.org/pdf/2,https://arxiv.org/abs/2,Diffusion Model,Meta,\"多行\n摘要\",3\r\n"

const arxivCSV = "标题,中文标题,PDF链接,AlphaXiv链接,领域分类,研究机构,简明摘要,点赞数\n" +
	"scaling laws for agents!,扩展,https://arxiv.org/pdf/1v2,https://arxiv.org/abs/1v2,LLM,DeepMind,重复,50\n" +
	"Robot Hands,机器人手,https://arxiv.org/pdf/3,,Robotics,THU,摘要三,7\n"

const articlesCSV = "公众号,发布时间,原标题,科技报告标题,一句话总结,摘要,URL,领域分类,研究机构,行业大佬\n" +
	"机器之心,2026-10-19,原文,报告标题,一句话,\"## 标题\n[链接](https://x)\",https://mp.weixin.qq.com/s/1,LLM,\"Meta, THU\",\n"

type mapSource struct {
	mu    sync.Mutex
	files map[string]string
	calls int
}

func (s *mapSource) String() string { return "map" }

func (s *mapSource) Fetch(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	text, ok := s.files[name]
	if !ok {
		return "", fmt.Errorf("fetching %s: %w", name, fetch.ErrNotFound)
	}
	return text, nil
}

func dayFiles(date string) map[string]string {
	return map[string]string{
		"wechat_articles_" + date + ".csv":    articlesCSV,
		"huggingface_papers_" + date + ".csv": hfCSV,
		"arxiv_papers_" + date + ".csv":       arxivCSV,
	}
}

func newTestLoader(src fetch.Source) (*Loader, *cache.Store, *bytes.Buffer) {
	store := cache.New(cache.NewMemoryKV(), 0)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return now }
	var diag bytes.Buffer
	return NewLoader(src, store, &diag), store, &diag
}

// --- tests ---

func TestLoadEndToEnd(t *testing.T) {
	src := &mapSource{files: dayFiles(testDate)}
	l, _, _ := newTestLoader(src)

	snap, report, err := l.Load(context.Background(), testDate)
	require.NoError(t, err)
	assert.False(t, report.FromCache)
	assert.NotEmpty(t, report.Ticket)
	require.Len(t, snap.HFPapers, 2)
	require.Len(t, snap.ArxivPapers, 2)
	require.Len(t, snap.Articles, 1)

	v := BuildView(snap, types.DefaultSelection(testDate))
	require.Len(t, v.Papers, 3)
	assert.Equal(t, 1, v.Merge.DupsRemoved)

	// The overlapping paper keeps its HF record even though the ArXiv copy
	// has more votes.
	first := v.Papers[0]
	assert.Equal(t, "Scaling Laws for Agents", first.Title)
	assert.Equal(t, types.FamilyHF, first.Family)
	assert.Equal(t, 10, first.Popularity())
	assert.Equal(t, "https://alphaxiv.org/abs/1", first.AlphaXivLink)

	assert.Equal(t, "Robot Hands", v.Papers[1].Title)
	assert.Equal(t, "Tiny Diffusion", v.Papers[2].Title)
	assert.Equal(t, "多行\n摘要", v.Papers[2].BriefSummary)

	committed, ok := l.Snapshot()
	require.True(t, ok)
	assert.Equal(t, testDate, committed.Date)
}

func TestLoadUsesCache(t *testing.T) {
	src := &mapSource{files: dayFiles(testDate)}
	l, _, _ := newTestLoader(src)

	_, _, err := l.Load(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)

	snap, report, err := l.Load(context.Background(), testDate)
	require.NoError(t, err)
	assert.True(t, report.FromCache)
	assert.Equal(t, 3, src.calls)
	assert.Len(t, snap.HFPapers, 2)
}

func TestLoadRefetchesOtherDate(t *testing.T) {
	files := dayFiles(testDate)
	for k, v := range dayFiles("2026-10-18") {
		files[k] = v
	}
	src := &mapSource{files: files}
	l, _, diag := newTestLoader(src)

	_, _, err := l.Load(context.Background(), testDate)
	require.NoError(t, err)

	snap, report, err := l.Load(context.Background(), "2026-10-18")
	require.NoError(t, err)
	assert.False(t, report.FromCache)
	assert.Equal(t, "2026-10-18", snap.Date)
	assert.Equal(t, 6, src.calls)
	assert.Contains(t, diag.String(), "cached snapshot is for 2026-10-19")
}

func TestReloadBypassesCache(t *testing.T) {
	src := &mapSource{files: dayFiles(testDate)}
	l, _, _ := newTestLoader(src)

	_, _, err := l.Load(context.Background(), testDate)
	require.NoError(t, err)
	_, report, err := l.Reload(context.Background(), testDate)
	require.NoError(t, err)
	assert.False(t, report.FromCache)
	assert.Equal(t, 6, src.calls)
}

func TestLoadMissingSourcesDegradeToEmpty(t *testing.T) {
	src := &mapSource{files: map[string]string{
		"huggingface_papers_" + testDate + ".csv": hfCSV,
	}}
	l, store, diag := newTestLoader(src)

	snap, report, err := l.Load(context.Background(), testDate)
	require.NoError(t, err)
	assert.NotNil(t, snap.Articles)
	assert.Empty(t, snap.Articles)
	assert.Empty(t, snap.ArxivPapers)
	assert.Len(t, snap.HFPapers, 2)

	var notFound int
	for _, sr := range report.Sources {
		if sr.NotFound {
			notFound++
		}
	}
	assert.Equal(t, 2, notFound)
	assert.Contains(t, diag.String(), "arxiv_papers_2026-10-19.csv: not found")

	cached, ok := store.Get()
	require.True(t, ok)
	assert.Len(t, cached.HFPapers, 2)
}

func TestLoadReportsRaggedRows(t *testing.T) {
	src := &mapSource{files: map[string]string{
		"huggingface_papers_" + testDate + ".csv": "标题,Upvote数,领域分类\nShort Row\nLong,1,LLM,extra\n",
	}}
	l, _, diag := newTestLoader(src)

	snap, report, err := l.Load(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, snap.HFPapers, 2)
	assert.True(t, report.Sources[1].Stats.Ragged())
	assert.Contains(t, diag.String(), "1 short rows padded, 1 long rows truncated")
}

func TestLoadCanceled(t *testing.T) {
	src := &mapSource{files: dayFiles(testDate)}
	l, _, _ := newTestLoader(src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := l.Load(ctx, testDate)
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := l.Snapshot()
	assert.False(t, ok)
}

// gatedSource blocks fetches for one date until release is closed.
type gatedSource struct {
	*mapSource
	date    string
	started chan struct{}
	release chan struct{}
}

func (s *gatedSource) Fetch(ctx context.Context, name string) (string, error) {
	if strings.Contains(name, s.date) {
		s.started <- struct{}{}
		select {
		case <-s.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.mapSource.Fetch(ctx, name)
}

func TestLoadDiscardsSupersededResults(t *testing.T) {
	const stale = "2026-10-18"
	files := dayFiles(testDate)
	for k, v := range dayFiles(stale) {
		files[k] = v
	}
	src := &gatedSource{
		mapSource: &mapSource{files: files},
		date:      stale,
		started:   make(chan struct{}, 3),
		release:   make(chan struct{}),
	}
	l, store, diag := newTestLoader(src)

	errc := make(chan error, 1)
	go func() {
		_, _, err := l.Load(context.Background(), stale)
		errc <- err
	}()
	<-src.started

	snap, _, err := l.Load(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, testDate, snap.Date)

	close(src.release)
	assert.ErrorIs(t, <-errc, ErrSuperseded)
	assert.Contains(t, diag.String(), "discarded results for 2026-10-18")

	committed, ok := l.Snapshot()
	require.True(t, ok)
	assert.Equal(t, testDate, committed.Date)

	cached, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, testDate, cached.Date)
}
