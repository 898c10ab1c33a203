// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Status identifies which variant of a Result is current.
type Status int

const (
	// StatusIdle is the zero value, seen only before the first search.
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is a tri-state outcome: Loading with no payload, Success with Data,
// or Error with Err. Only the field matching Status is meaningful.
type Result[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Loading returns a Result in the loading state.
func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

// Success returns a Result carrying v.
func Success[T any](v T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: v}
}

// Failure returns a Result carrying err.
func Failure[T any](err error) Result[T] {
	return Result[T]{Status: StatusError, Err: err}
}

// IsTerminal reports whether r is a Success or an Error.
func (r Result[T]) IsTerminal() bool {
	return r.Status == StatusSuccess || r.Status == StatusError
}

// SearchState is the value published by the search controller: the current
// Result plus the request it belongs to.
type SearchState struct {
	Result[[]ImageItem]

	// Term is the search term of the request that produced this state.
	Term string

	// Seq increases by one for every search issued on a controller.
	Seq uint64

	// RequestID correlates log lines for one request.
	RequestID string
}

func (s SearchState) String() string {
	switch s.Status {
	case StatusSuccess:
		return fmt.Sprintf("#%d %q success (%d items)", s.Seq, s.Term, len(s.Data))
	case StatusError:
		return fmt.Sprintf("#%d %q error: %v", s.Seq, s.Term, s.Err)
	default:
		return fmt.Sprintf("#%d %q %s", s.Seq, s.Term, s.Status)
	}
}
