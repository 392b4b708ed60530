// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps the last fetched snapshot for a short time so repeated
// runs skip the network. The snapshot lives in a key-value store as five
// entries: the three serialized record sets, the fetched date, and the write
// time in Unix milliseconds. Selection state is never cached.
package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pdiddy/daily-digest/internal/records"
	"github.com/pdiddy/daily-digest/pkg/types"
)

// DefaultTTL is how long a snapshot stays valid after it was written.
const DefaultTTL = 30 * time.Minute

// Entry keys.
const (
	KeyArticles    = "wechatArticles"
	KeyHFPapers    = "papers"
	KeyArxivPapers = "arxivPapers"
	KeyLastUpdated = "lastUpdated"
	KeyDate        = "date"
)

var allKeys = []string{KeyArticles, KeyHFPapers, KeyArxivPapers, KeyLastUpdated, KeyDate}

// KV is the storage behind a Store. SetAll and DeleteAll apply all entries
// or none.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	SetAll(entries map[string]string) error
	DeleteAll(keys []string) error
}

// Miss explains why Lookup found no usable snapshot. The empty Miss is a hit.
type Miss string

const (
	Hit         Miss = ""
	MissEmpty   Miss = "no snapshot"
	MissExpired Miss = "snapshot expired"
	MissCorrupt Miss = "snapshot corrupt"
)

// Store reads and writes snapshots with a TTL.
type Store struct {
	kv  KV
	ttl time.Duration

	// Now is the clock. Tests replace it.
	Now func() time.Time
}

// New returns a Store over kv. A ttl of zero means DefaultTTL.
func New(kv KV, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{kv: kv, ttl: ttl, Now: time.Now}
}

// TTL returns the configured time to live.
func (s *Store) TTL() time.Duration { return s.ttl }

// Put overwrites any prior snapshot and stamps it with the current time. The
// stamped snapshot is returned.
func (s *Store) Put(snap types.Snapshot) (types.Snapshot, error) {
	snap.UpdatedAt = time.UnixMilli(s.Now().UnixMilli())

	entries := make(map[string]string, len(allKeys))
	for key, v := range map[string]any{
		KeyArticles:    nonNil(snap.Articles),
		KeyHFPapers:    nonNil(snap.HFPapers),
		KeyArxivPapers: nonNil(snap.ArxivPapers),
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return snap, fmt.Errorf("encoding %s: %w", key, err)
		}
		entries[key] = string(data)
	}
	entries[KeyDate] = snap.Date
	entries[KeyLastUpdated] = strconv.FormatInt(snap.UpdatedAt.UnixMilli(), 10)

	if err := s.kv.SetAll(entries); err != nil {
		return snap, fmt.Errorf("writing snapshot: %w", err)
	}
	return snap, nil
}

// Get returns the cached snapshot, or false when there is none, it has
// expired, or it cannot be decoded.
func (s *Store) Get() (types.Snapshot, bool) {
	snap, miss := s.Lookup()
	return snap, miss == Hit
}

// Lookup is Get with the reason for a miss. Restored papers have their
// AlphaXiv links repaired, like freshly parsed ones.
func (s *Store) Lookup() (types.Snapshot, Miss) {
	stamp, ok, err := s.kv.Get(KeyLastUpdated)
	if err != nil {
		return types.Snapshot{}, MissCorrupt
	}
	if !ok {
		return types.Snapshot{}, MissEmpty
	}
	ms, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return types.Snapshot{}, MissCorrupt
	}
	if s.expired(ms) {
		return types.Snapshot{}, MissExpired
	}

	snap := types.Snapshot{UpdatedAt: time.UnixMilli(ms)}
	if snap.Date, ok, err = s.kv.Get(KeyDate); err != nil || !ok {
		return types.Snapshot{}, MissCorrupt
	}
	if !s.decode(KeyArticles, &snap.Articles) ||
		!s.decode(KeyHFPapers, &snap.HFPapers) ||
		!s.decode(KeyArxivPapers, &snap.ArxivPapers) {
		return types.Snapshot{}, MissCorrupt
	}

	records.FixPaperLinks(snap.HFPapers)
	records.FixPaperLinks(snap.ArxivPapers)
	return snap, Hit
}

// ClearIfExpired removes every entry once the snapshot has expired or its
// stamp is unreadable. It reports whether anything was cleared.
func (s *Store) ClearIfExpired() (bool, error) {
	stamp, ok, err := s.kv.Get(KeyLastUpdated)
	if err != nil {
		return false, fmt.Errorf("reading snapshot stamp: %w", err)
	}
	if ok {
		if ms, err := strconv.ParseInt(stamp, 10, 64); err == nil && !s.expired(ms) {
			return false, nil
		}
	}
	if err := s.Clear(); err != nil {
		return false, err
	}
	return ok, nil
}

// Clear removes every entry unconditionally.
func (s *Store) Clear() error {
	if err := s.kv.DeleteAll(allKeys); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	return nil
}

func (s *Store) expired(stampMillis int64) bool {
	return s.Now().UnixMilli()-stampMillis > s.ttl.Milliseconds()
}

// decode reports false for a missing entry, a JSON null, or bad JSON.
func (s *Store) decode(key string, dst any) bool {
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok || raw == "null" {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
