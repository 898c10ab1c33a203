// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/imagesearch/internal/feed"
	"github.com/pdiddy/imagesearch/internal/search"
	"github.com/pdiddy/imagesearch/pkg/types"
)

// loadConfig assembles the client configuration from viper, which already
// merges flags, IMAGESEARCH_* environment variables and the config file.
func loadConfig(v *viper.Viper) types.ClientConfig {
	return types.ClientConfig{
		Feed: types.FeedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("feed.timeout"),
				UserAgent: v.GetString("feed.user_agent"),
			},
			BaseURL:      strings.TrimSpace(v.GetString("feed.base_url")),
			RateLimit:    v.GetFloat64("feed.rate_limit"),
			MaxBodyBytes: v.GetInt64("feed.max_body_bytes"),
		},
		Search: types.SearchConfig{
			DefaultTerm: strings.TrimSpace(v.GetString("search.default_term")),
		},
	}
}

// newController wires a feed client into a search controller.
func newController(cfg types.ClientConfig) *search.Controller {
	client := feed.NewClient(&http.Client{Timeout: cfg.Feed.Timeout}, cfg.Feed,
		feed.WithLogger(newLogger("(feed) ")))
	return search.NewController(client, cfg.Search,
		search.WithLogger(newLogger("(search) ")))
}
