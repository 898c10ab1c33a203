package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the HTTP client timeout. Zero leaves the client's default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "imagesearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the feed client.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the feed endpoint without query parameters.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// RateLimit caps outbound requests per second. Zero disables pacing.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// MaxBodyBytes bounds the response body read (default 8 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`
}

// SearchConfig holds settings for the search controller.
type SearchConfig struct {
	// DefaultTerm is searched once when the controller is initialized.
	DefaultTerm string `json:"default_term" yaml:"default_term"`
}

// ClientConfig groups all configuration for the client.
type ClientConfig struct {
	Feed   FeedConfig   `json:"feed" yaml:"feed"`
	Search SearchConfig `json:"search" yaml:"search"`
}
