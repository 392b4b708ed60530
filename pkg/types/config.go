package types

import "time"

// HTTPConfig holds HTTP settings for fetching the per-day CSV files.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "daily-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig holds settings for the local snapshot cache.
type CacheConfig struct {
	// Path is the SQLite file backing the cache. Empty keeps the cache in memory.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// TTL is how long a snapshot stays valid after it was written (default 30m).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// SelectionConfig holds the default filter selection.
type SelectionConfig struct {
	Fields       []string `json:"fields" yaml:"fields" mapstructure:"fields"`
	Institutions []string `json:"institutions" yaml:"institutions" mapstructure:"institutions"`
}

// DigestConfig groups all settings of the digest pipeline.
type DigestConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// Source is the base location of the CSV files: an http(s) URL or a
	// local directory.
	Source string `json:"source" yaml:"source" mapstructure:"source"`

	// Days is how many past dates are offered (default 7).
	Days int `json:"days" yaml:"days" mapstructure:"days"`

	Cache     CacheConfig     `json:"cache" yaml:"cache" mapstructure:"cache"`
	Selection SelectionConfig `json:"selection" yaml:"selection" mapstructure:"selection"`

	// Fields and Institutions are the predefined filter options.
	Fields       []string `json:"fields" yaml:"fields" mapstructure:"fields"`
	Institutions []string `json:"institutions" yaml:"institutions" mapstructure:"institutions"`
}

// PredefinedFields lists the field tags offered when the config names none.
var PredefinedFields = []string{
	"LLM", "Diffusion Model", "Multimodal LLM", "Embodied AI",
	"Agent", "AGI", "AI4Science", "Other",
}

// PredefinedInstitutions lists the institution tags offered when the config
// names none.
var PredefinedInstitutions = []string{
	"DeepMind", "Meta", "Microsoft", "OpenAI", "Shanghai AI Lab", "ByteDance",
	"THU", "PKU", "Tencent", "Alibaba", "Amazon", "Other",
}
