// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import "fmt"

// Kind classifies why a fetch failed. The controller does not branch on it;
// it is kept for display and logging.
type Kind int

const (
	// KindTransport covers connection failures, timeouts, DNS errors and
	// cancelled requests.
	KindTransport Kind = iota + 1
	// KindProtocol covers non-2xx statuses and bodies that are not a feed
	// envelope at all.
	KindProtocol
	// KindDecode covers envelopes whose fields have unexpected types.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FetchError is returned by Client.Fetch for every failure.
type FetchError struct {
	Kind Kind
	Tag  string

	// StatusCode is set for protocol errors caused by an HTTP status.
	StatusCode int

	// Timeout is set for transport errors caused by a deadline.
	Timeout bool

	Err error
}

func (e *FetchError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s error (timeout) fetching feed for %q: %v", e.Kind, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s error fetching feed for %q: %v", e.Kind, e.Tag, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
