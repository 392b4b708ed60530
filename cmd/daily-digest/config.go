// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/daily-digest/internal/cache"
	"github.com/pdiddy/daily-digest/internal/dates"
	"github.com/pdiddy/daily-digest/internal/digest"
	"github.com/pdiddy/daily-digest/internal/fetch"
	"github.com/pdiddy/daily-digest/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 5

	// memoryCache as cache.path keeps the cache in process memory.
	memoryCache = "memory"
)

// setDefaults registers the default value of every config key on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("source", ".")
	v.SetDefault("cache.path", filepath.Join("~", ".cache", "daily-digest", "cache.db"))
	v.SetDefault("cache.ttl", cache.DefaultTTL)
	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.user_agent", "daily-digest/"+version)
	v.SetDefault("http.max_retries", defaultMaxRetries)
	v.SetDefault("days", dates.DefaultDays)
	v.SetDefault("selection.fields", []string{types.All})
	v.SetDefault("selection.institutions", []string{types.All})
	v.SetDefault("fields", types.PredefinedFields)
	v.SetDefault("institutions", types.PredefinedInstitutions)
}

// loadConfig decodes v into a DigestConfig.
func loadConfig(v *viper.Viper) (types.DigestConfig, error) {
	var cfg types.DigestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Days <= 0 {
		cfg.Days = dates.DefaultDays
	}
	return cfg, nil
}

// session bundles what every subcommand needs to load a day.
type session struct {
	cfg    types.DigestConfig
	loader *digest.Loader
	store  *cache.Store
	close  func() error
}

// openSession builds the fetch source, opens the cache and wires the
// loader. Callers must call close.
func openSession(cfg types.DigestConfig, w io.Writer) (*session, error) {
	src, err := fetch.New(cfg.Source, cfg.HTTP, w)
	if err != nil {
		return nil, err
	}

	var (
		kv      cache.KV
		closeKV = func() error { return nil }
	)
	switch path := cfg.Cache.Path; path {
	case "", memoryCache:
		kv = cache.NewMemoryKV()
	default:
		path, err = expandHome(path)
		if err != nil {
			return nil, err
		}
		db, err := cache.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		kv, closeKV = db, db.Close
	}

	store := cache.New(kv, cfg.Cache.TTL)
	return &session{
		cfg:    cfg,
		loader: digest.NewLoader(src, store, w),
		store:  store,
		close:  closeKV,
	}, nil
}

// selection resolves the filter selection: flags win over config.
func (s *session) selection(date string, fields, institutions []string) types.Selection {
	if len(fields) == 0 {
		fields = s.cfg.Selection.Fields
	}
	if len(institutions) == 0 {
		institutions = s.cfg.Selection.Institutions
	}
	return types.NewSelection(date, fields, institutions)
}

// resolveDate returns token validated, or today's token when empty.
func resolveDate(token string, now time.Time) (string, error) {
	if token == "" {
		return dates.Today(now), nil
	}
	t, err := dates.Parse(token)
	if err != nil {
		return "", err
	}
	return dates.Format(t), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
