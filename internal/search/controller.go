// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search turns a sequence of search requests into an ordered stream
// of result states. Only the most recent request may publish a terminal
// state: issuing a search cancels the one before it, and a late response
// from a superseded request is discarded.
package search

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/pdiddy/imagesearch/pkg/types"
)

// DefaultTerm is searched by Initialize when the config names no default.
const DefaultTerm = "Porcupine"

// Fetcher retrieves the feed for one tag. feed.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, tag string) (*types.ImageFeedResponse, error)
}

// Controller owns the current SearchState and publishes every change to its
// listeners. It is safe for concurrent use.
type Controller struct {
	fetcher     Fetcher
	defaultTerm string
	log         *log.Logger
	newID       func() string

	// base is cancelled by Close; every request context derives from it.
	base     context.Context
	stopBase context.CancelFunc

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool

	initOnce sync.Once
	stream   *stream
	wg       sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithRequestIDs replaces the request ID generator (uuid by default).
func WithRequestIDs(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// NewController returns a Controller that fetches through f. Nothing is
// fetched until Initialize or Search is called.
func NewController(f Fetcher, cfg types.SearchConfig, opts ...Option) *Controller {
	term := cfg.DefaultTerm
	if term == "" {
		term = DefaultTerm
	}
	base, stop := context.WithCancel(context.Background())
	c := &Controller{
		fetcher:     f,
		defaultTerm: term,
		log:         log.New(io.Discard, "(search) ", log.LstdFlags),
		newID:       uuid.NewString,
		base:        base,
		stopBase:    stop,
		stream:      newStream(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultTerm returns the term Initialize searches for.
func (c *Controller) DefaultTerm() string { return c.defaultTerm }

// Initialize searches for the default term. Only the first call has any
// effect; it goes through the same path as Search.
func (c *Controller) Initialize() {
	c.initOnce.Do(func() {
		c.Search(c.defaultTerm)
	})
}

// request identifies one search.
type request struct {
	seq  uint64
	term string
	id   string
}

func (r request) state(res types.Result[[]types.ImageItem]) types.SearchState {
	return types.SearchState{Result: res, Term: r.term, Seq: r.seq, RequestID: r.id}
}

// Search starts a search for term and returns without waiting for it. The
// previous request, if still running, is cancelled and can no longer
// publish. Loading is published before Search returns. Repeating the same
// term starts a fresh request like any other.
func (c *Controller) Search(term string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Printf("search %q ignored: controller closed", term)
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	req := request{seq: c.seq, term: term, id: c.newID()}
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel

	c.log.Printf("search #%d %q (request %s)", req.seq, req.term, req.id)
	c.stream.publish(req.state(types.Loading[[]types.ImageItem]()))
	c.wg.Add(1)
	c.mu.Unlock()

	go c.run(ctx, req)
}

// run performs the fetch for req and publishes its outcome if req is still
// the latest request. The sequence check and the publish happen under the
// same lock, so a newer Search cannot slip in between them.
func (c *Controller) run(ctx context.Context, req request) {
	defer c.wg.Done()

	resp, err := c.fetcher.Fetch(ctx, req.term)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || req.seq != c.seq {
		c.log.Printf("discarding result of superseded search #%d %q (err=%v)", req.seq, req.term, err)
		return
	}
	c.cancel()
	c.cancel = nil

	if err != nil {
		c.log.Printf("search #%d %q failed: %v", req.seq, req.term, err)
		c.stream.publish(req.state(types.Failure[[]types.ImageItem](err)))
		return
	}

	var items []types.ImageItem
	if resp != nil {
		items = resp.Items
	}
	c.log.Printf("search #%d %q returned %d items", req.seq, req.term, len(items))
	c.stream.publish(req.state(types.Success(items)))
}

// CurrentState returns the most recently published state. Before the first
// search it is the zero SearchState (StatusIdle).
func (c *Controller) CurrentState() types.SearchState {
	return c.stream.current()
}

// Subscribe calls fn with the current state (if any search has been issued)
// and then with every later state, in order, from a dedicated goroutine.
// fn may call back into the Controller. The returned function stops
// delivery; states still queued for fn are dropped.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	sub := c.stream.subscribe(fn)
	return func() { c.stream.unsubscribe(sub) }
}

// Watch returns a channel carrying the same sequence Subscribe delivers. The
// channel is closed after ctx is done or the Controller is closed.
func (c *Controller) Watch(ctx context.Context) <-chan types.SearchState {
	out := make(chan types.SearchState)
	sub := c.stream.subscribe(func(st types.SearchState) {
		select {
		case out <- st:
		case <-ctx.Done():
		}
	})
	go func() {
		select {
		case <-ctx.Done():
			c.stream.unsubscribe(sub)
		case <-sub.done:
		}
		<-sub.done
		close(out)
	}()
	return out
}

// Select hands item to the detail view. The controller keeps no record of
// the selection.
func (c *Controller) Select(item types.ImageItem) types.ImageItem {
	c.log.Printf("selected %q", item.Link)
	return item
}

// Close cancels any in-flight request, waits for fetch goroutines to return
// and ends all subscriptions after their queued states are delivered.
// Search calls after Close are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancel = nil
	c.mu.Unlock()

	c.stopBase()
	c.wg.Wait()
	c.stream.close()
}
