// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"
)

// DefaultRetryBaseDelay controls the base duration for exponential backoff
// when no delay is configured. Tests override per-call to avoid real sleeps.
var DefaultRetryBaseDelay = 1 * time.Second

const defaultMaxAttempts = 3

// Retryable reports whether an HTTP status is worth retrying. Rate limiting
// and server-side failures are transient; other 4xx are not.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// DoWithRetry executes an HTTP request and retries transport errors, HTTP
// 429, and 5xx responses with exponential backoff. The delay starts at
// baseDelay and doubles each attempt: base, 2*base, 4*base, ...
//
// When maxAttempts is 0 the default (3) is used; when baseDelay is 0 the
// package default applies. Before each retry the response body is drained
// and closed. If the context is cancelled during a backoff wait the
// function returns ctx.Err(). After the final attempt the last response or
// transport error is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxAttempts int, baseDelay time.Duration) (*http.Response, error) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultRetryBaseDelay
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err == nil && !Retryable(resp.StatusCode) {
			return resp, nil
		}

		// Attempts exhausted: surface whatever happened last.
		if attempt >= maxAttempts-1 {
			if err != nil {
				return nil, err
			}
			return resp, nil
		}

		// Drain and close the body before retrying.
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * baseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
