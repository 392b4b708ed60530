// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest runs the daily digest pipeline: fetch the three per-day
// CSV files concurrently, parse and normalize them, commit the snapshot to
// the cache, then filter, merge and rank for presentation.
package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/pdiddy/daily-digest/internal/cache"
	"github.com/pdiddy/daily-digest/internal/dates"
	"github.com/pdiddy/daily-digest/internal/fetch"
	"github.com/pdiddy/daily-digest/internal/records"
	"github.com/pdiddy/daily-digest/pkg/types"
)

// ErrSuperseded is returned by Load when another date was selected while
// the fetches were in flight. The late results are discarded.
var ErrSuperseded = errors.New("load superseded by a newer date selection")

// SourceReport describes how one of the three files loaded.
type SourceReport struct {
	Family   types.Family
	File     string
	Rows     int
	NotFound bool
	Err      error
	Stats    records.ParseStats
}

// LoadReport describes a Load call.
type LoadReport struct {
	Ticket    string
	Date      string
	FromCache bool
	CacheMiss cache.Miss
	Sources   []SourceReport
}

// Loader owns the committed snapshot and the currently selected date.
// Loads for different dates may overlap; only the one matching the selected
// date when it completes is committed.
type Loader struct {
	src   fetch.Source
	cache *cache.Store
	w     io.Writer

	mu       sync.Mutex
	selected string
	snap     types.Snapshot
	loaded   bool
}

// NewLoader returns a Loader. Diagnostics go to w.
func NewLoader(src fetch.Source, store *cache.Store, w io.Writer) *Loader {
	if w == nil {
		w = io.Discard
	}
	return &Loader{src: src, cache: store, w: w}
}

// Selected returns the currently selected date.
func (l *Loader) Selected() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}

// Snapshot returns the committed snapshot and whether one exists.
func (l *Loader) Snapshot() (types.Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap, l.loaded
}

// Load selects date and makes its snapshot current. A valid cached snapshot
// for the same date is used as-is; otherwise the three files are fetched.
func (l *Loader) Load(ctx context.Context, date string) (types.Snapshot, LoadReport, error) {
	l.Select(date)

	if cleared, err := l.cache.ClearIfExpired(); err != nil {
		fmt.Fprintf(l.w, "warning: %v\n", err)
	} else if cleared {
		fmt.Fprintln(l.w, "cache expired, cleared")
	}

	snap, miss := l.cache.Lookup()
	if miss == cache.Hit && snap.Date == date {
		report := LoadReport{Date: date, FromCache: true}
		if err := l.commit(date, snap); err != nil {
			return types.Snapshot{}, report, err
		}
		fmt.Fprintf(l.w, "using cached data for %s (written %s)\n", date, snap.UpdatedAt.Format("15:04:05"))
		return snap, report, nil
	}
	if miss == cache.Hit {
		miss = "cached snapshot is for " + cache.Miss(snap.Date)
	}
	if miss != cache.MissEmpty {
		fmt.Fprintf(l.w, "cache miss: %s\n", miss)
	}

	snap, report, err := l.fetch(ctx, date)
	report.CacheMiss = miss
	return snap, report, err
}

// Reload clears the cache and fetches date afresh.
func (l *Loader) Reload(ctx context.Context, date string) (types.Snapshot, LoadReport, error) {
	l.Select(date)
	if err := l.cache.Clear(); err != nil {
		fmt.Fprintf(l.w, "warning: %v\n", err)
	}
	return l.fetch(ctx, date)
}

// Select makes date the current selection. Loads for any other date that
// finish afterwards are discarded.
func (l *Loader) Select(date string) {
	l.mu.Lock()
	l.selected = date
	l.mu.Unlock()
}

// fetch loads the three files concurrently and commits once all of them
// have finished.
func (l *Loader) fetch(ctx context.Context, date string) (types.Snapshot, LoadReport, error) {
	names := dates.ResolveFilenames(date)
	report := LoadReport{
		Ticket: uuid.NewString(),
		Date:   date,
		Sources: []SourceReport{
			{Family: types.FamilyArticle, File: names.Articles},
			{Family: types.FamilyHF, File: names.HFPapers},
			{Family: types.FamilyArxiv, File: names.ArxivPapers},
		},
	}
	snap := types.Snapshot{Date: date}

	var wg sync.WaitGroup
	for i := range report.Sources {
		wg.Add(1)
		go func(sr *SourceReport) {
			defer wg.Done()
			text, err := l.src.Fetch(ctx, sr.File)
			if err != nil {
				sr.Err = err
				sr.NotFound = errors.Is(err, fetch.ErrNotFound)
				return
			}
			switch sr.Family {
			case types.FamilyArticle:
				snap.Articles, sr.Stats = records.ParseArticles(text)
			case types.FamilyHF:
				snap.HFPapers, sr.Stats = records.ParsePapers(text, types.FamilyHF)
			case types.FamilyArxiv:
				snap.ArxivPapers, sr.Stats = records.ParsePapers(text, types.FamilyArxiv)
			}
			sr.Rows = sr.Stats.Rows
		}(&report.Sources[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return types.Snapshot{}, report, err
	}
	for _, sr := range report.Sources {
		l.reportSource(report.Ticket, sr)
	}

	snap.Articles = nonNil(snap.Articles)
	snap.HFPapers = nonNil(snap.HFPapers)
	snap.ArxivPapers = nonNil(snap.ArxivPapers)

	snap, err := l.store(date, snap)
	if err != nil {
		fmt.Fprintf(l.w, "[%s] discarded results for %s: %v\n", shortTicket(report.Ticket), date, err)
		return types.Snapshot{}, report, err
	}
	return snap, report, nil
}

// store writes snap to the cache and commits it, unless another date was
// selected meanwhile. A failed cache write is reported and the snapshot is
// still committed.
func (l *Loader) store(date string, snap types.Snapshot) (types.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected != date {
		return types.Snapshot{}, ErrSuperseded
	}
	written, err := l.cache.Put(snap)
	if err != nil {
		fmt.Fprintf(l.w, "warning: %v\n", err)
	} else {
		snap = written
	}
	l.snap = snap
	l.loaded = true
	return snap, nil
}

// commit makes snap current unless another date was selected meanwhile.
func (l *Loader) commit(date string, snap types.Snapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected != date {
		return ErrSuperseded
	}
	l.snap = snap
	l.loaded = true
	return nil
}

func (l *Loader) reportSource(ticket string, sr SourceReport) {
	t := shortTicket(ticket)
	switch {
	case sr.NotFound:
		fmt.Fprintf(l.w, "[%s] %s: not found, showing no %s records\n", t, sr.File, sr.Family)
	case sr.Err != nil:
		fmt.Fprintf(l.w, "[%s] warning: %s failed: %v\n", t, sr.File, sr.Err)
	default:
		fmt.Fprintf(l.w, "[%s] %s: %d rows\n", t, sr.File, sr.Rows)
		if sr.Stats.Ragged() {
			fmt.Fprintf(l.w, "[%s]   warning: %d short rows padded, %d long rows truncated\n",
				t, sr.Stats.Padded, sr.Stats.Truncated)
		}
	}
}

func shortTicket(ticket string) string {
	if len(ticket) > 8 {
		return ticket[:8]
	}
	return ticket
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
