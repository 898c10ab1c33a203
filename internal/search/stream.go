// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"sync"

	"github.com/pdiddy/imagesearch/pkg/types"
)

// Listener receives published states, one at a time, in publication order.
type Listener func(types.SearchState)

// stream fans published states out to listeners. It keeps the last value so
// a new listener starts from the current state. Each listener has its own
// queue and goroutine: publish only appends, so a slow listener delays
// nobody else and no state is ever dropped or merged.
type stream struct {
	mu        sync.Mutex
	latest    types.SearchState
	published bool
	subs      map[*subscription]struct{}
	closed    bool
}

func newStream() *stream {
	return &stream{subs: make(map[*subscription]struct{})}
}

// publish records st as the latest value and queues it for every listener.
func (s *stream) publish(st types.SearchState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.latest = st
	s.published = true
	for sub := range s.subs {
		sub.push(st)
	}
}

func (s *stream) current() types.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// subscribe registers fn and queues the latest value for it, if anything has
// been published yet. The returned subscription is already running.
func (s *stream) subscribe(fn Listener) *subscription {
	sub := &subscription{
		fn:     fn,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(sub.done)
		return sub
	}
	s.subs[sub] = struct{}{}
	if s.published {
		sub.push(s.latest)
	}
	s.mu.Unlock()

	go sub.run()
	return sub
}

func (s *stream) unsubscribe(sub *subscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
	sub.stop(false)
}

// close stops accepting states. Listeners still receive what was already
// queued for them, then exit.
func (s *stream) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for sub := range subs {
		sub.stop(true)
	}
}

type subscription struct {
	fn Listener

	mu      sync.Mutex
	pending []types.SearchState
	stopped bool
	drain   bool

	signal chan struct{}
	done   chan struct{}
}

func (sub *subscription) push(st types.SearchState) {
	sub.mu.Lock()
	if sub.stopped {
		sub.mu.Unlock()
		return
	}
	sub.pending = append(sub.pending, st)
	sub.mu.Unlock()
	sub.wake()
}

func (sub *subscription) wake() {
	select {
	case sub.signal <- struct{}{}:
	default:
	}
}

// stop ends delivery. With drain set, states already queued are delivered
// first; otherwise they are discarded.
func (sub *subscription) stop(drain bool) {
	sub.mu.Lock()
	if sub.stopped {
		sub.mu.Unlock()
		return
	}
	sub.stopped = true
	sub.drain = drain
	if !drain {
		sub.pending = nil
	}
	sub.mu.Unlock()
	sub.wake()
}

func (sub *subscription) run() {
	defer close(sub.done)
	for range sub.signal {
		for {
			sub.mu.Lock()
			if sub.stopped && !sub.drain {
				sub.mu.Unlock()
				return
			}
			if len(sub.pending) == 0 {
				stopped := sub.stopped
				sub.mu.Unlock()
				if stopped {
					return
				}
				break
			}
			st := sub.pending[0]
			sub.pending = sub.pending[1:]
			sub.mu.Unlock()

			sub.fn(st)
		}
	}
}
