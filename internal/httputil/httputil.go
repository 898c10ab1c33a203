// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the single-attempt HTTP helpers used by the
// feed client. Nothing here retries: a failed request is reported to the
// caller as-is.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// DefaultMaxBodyBytes bounds response bodies when the caller passes no limit.
const DefaultMaxBodyBytes int64 = 8 << 20

// ErrBodyTooLarge is returned by ReadLimited when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// Get issues exactly one GET request for rawURL. The User-Agent header is set
// when userAgent is non-empty. The caller owns the returned body.
func Get(ctx context.Context, client *http.Client, rawURL, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json")

	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// ReadLimited reads r to EOF, failing with ErrBodyTooLarge once more than
// limit bytes have been seen. A limit of zero or less means DefaultMaxBodyBytes.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, limit)
	}
	return data, nil
}

// DrainClose discards what is left of body and closes it so the underlying
// connection can be reused.
func DrainClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	io.Copy(io.Discard, io.LimitReader(body, DefaultMaxBodyBytes))
	body.Close()
}

// IsTimeout reports whether err was caused by a deadline: a context deadline
// or a net.Error that reports Timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
