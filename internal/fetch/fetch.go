// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves the per-day CSV files from a web host or a local
// directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/daily-digest/internal/httputil"
	"github.com/pdiddy/daily-digest/pkg/types"
)

// ErrNotFound reports that the requested file does not exist. Callers treat
// it as an empty record set rather than a failure.
var ErrNotFound = errors.New("file not found")

// maxBody bounds a single CSV download.
const maxBody = 64 << 20

// Source returns the text of a named CSV file.
type Source interface {
	Fetch(ctx context.Context, name string) (string, error)
	String() string
}

// New picks a Source for location: http(s) URLs are fetched over HTTP,
// anything else is a local directory.
func New(location string, cfg types.HTTPConfig, w io.Writer) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, cfg, w)
	}
	if location == "" {
		location = "."
	}
	return DirSource{Dir: location}, nil
}

// HTTPSource fetches files relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
	cfg    types.HTTPConfig
	w      io.Writer
}

// NewHTTPSource parses base and builds an HTTP client with cfg.Timeout.
func NewHTTPSource(base string, cfg types.HTTPConfig, w io.Writer) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing source URL %q: %w", base, err)
	}
	if w == nil {
		w = io.Discard
	}
	return &HTTPSource{
		base:   u,
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		w:      w,
	}, nil
}

func (s *HTTPSource) String() string { return s.base.String() }

// Fetch downloads base/name. 404 and 410 map to ErrNotFound; other non-2xx
// statuses are errors.
func (s *HTTPSource) Fetch(ctx context.Context, name string) (string, error) {
	u := *s.base
	u.Path = path.Join(u.Path, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := httputil.DoWithRetry(ctx, s.client, req, s.cfg.MaxRetries, s.w)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("fetching %s: HTTP %d", name, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// DirSource reads files from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) String() string { return s.Dir }

// Fetch reads Dir/name. A missing file maps to ErrNotFound.
func (s DirSource) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
