// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches the public photo feed for a tag and decodes it into
// types.ImageFeedResponse. Each Fetch is one HTTP request: no retry, no
// backoff, no caching.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/pdiddy/imagesearch/internal/httputil"
	"github.com/pdiddy/imagesearch/pkg/types"
)

// feedAPIBase is the public photo feed endpoint. Declared as a var so tests
// can substitute an httptest server.
var feedAPIBase = "https://api.flickr.com/services/feeds/photos_public.gne"

// DefaultBaseURL returns the built-in feed endpoint.
func DefaultBaseURL() string { return feedAPIBase }

// Client fetches the feed over HTTP.
type Client struct {
	HTTP *http.Client
	cfg  types.FeedConfig

	limiter *rate.Limiter
	log     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithLimiter paces outbound requests. A waiting Fetch still honours its
// context, so a superseded search stops waiting immediately.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient returns a Client for cfg. An empty BaseURL selects the public
// endpoint; a positive RateLimit installs a limiter with a burst of one.
func NewClient(httpClient *http.Client, cfg types.FeedConfig, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	c := &Client{
		HTTP: httpClient,
		cfg:  cfg,
		log:  log.New(io.Discard, "", 0),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FeedURL builds the request URL for tag. The tag is URL-encoded and
// otherwise passed through; the empty tag is a valid query.
func (c *Client) FeedURL(tag string) string {
	base := c.cfg.BaseURL
	if base == "" {
		base = feedAPIBase
	}
	params := url.Values{
		"format":         {"json"},
		"nojsoncallback": {"1"},
		"tags":           {tag},
	}
	return base + "?" + params.Encode()
}

// Fetch retrieves and decodes the feed for tag. Every failure is a
// *FetchError wrapping the original cause.
func (c *Client) Fetch(ctx context.Context, tag string) (*types.ImageFeedResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Kind: KindTransport, Tag: tag, Err: fmt.Errorf("waiting for rate limiter: %w", err)}
		}
	}

	reqURL := c.FeedURL(tag)
	c.log.Printf("GET %s", reqURL)

	resp, err := httputil.Get(ctx, c.HTTP, reqURL, c.cfg.UserAgent)
	if err != nil {
		return nil, transportError(tag, err)
	}
	defer httputil.DrainClose(resp.Body)

	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, &FetchError{
			Kind:       KindProtocol,
			Tag:        tag,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("feed returned HTTP %d", resp.StatusCode),
		}
	}

	body, err := httputil.ReadLimited(resp.Body, c.cfg.MaxBodyBytes)
	if err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			return nil, &FetchError{Kind: KindProtocol, Tag: tag, Err: err}
		}
		return nil, transportError(tag, fmt.Errorf("reading response: %w", err))
	}

	feed, err := Decode(body)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			fe.Tag = tag
			return nil, fe
		}
		return nil, &FetchError{Kind: KindDecode, Tag: tag, Err: err}
	}
	c.log.Printf("decoded %d items for %q", len(feed.Items), tag)
	return feed, nil
}

func transportError(tag string, err error) *FetchError {
	return &FetchError{Kind: KindTransport, Tag: tag, Timeout: httputil.IsTimeout(err), Err: err}
}

// envelope mirrors types.ImageFeedResponse but keeps Items as a pointer so a
// missing items key can be told apart from an empty list.
type envelope struct {
	Title       string             `json:"title"`
	Link        string             `json:"link"`
	Description string             `json:"description"`
	Modified    string             `json:"modified"`
	Generator   string             `json:"generator"`
	Items       *[]types.ImageItem `json:"items"`
}

// Decode parses a feed body. Syntax errors, non-object bodies and envelopes
// without items are protocol errors; field type mismatches are decode errors. The returned error is
// always a *FetchError with an empty Tag.
func Decode(body []byte) (*types.ImageFeedResponse, error) {
	var env envelope
	if err := json.Unmarshal(sanitizeJSON(body), &env); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, &FetchError{Kind: KindDecode, Err: fmt.Errorf("parsing feed: %w", err)}
		}
		return nil, &FetchError{Kind: KindProtocol, Err: fmt.Errorf("parsing feed: %w", err)}
	}
	if env.Items == nil {
		return nil, &FetchError{Kind: KindProtocol, Err: errors.New("feed envelope has no items")}
	}
	return &types.ImageFeedResponse{
		Title:       env.Title,
		Link:        env.Link,
		Description: env.Description,
		Modified:    env.Modified,
		Generator:   env.Generator,
		Items:       *env.Items,
	}, nil
}
