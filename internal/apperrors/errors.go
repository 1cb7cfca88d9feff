// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

// Package apperrors defines the error taxonomy shared by the catalog walker,
// the artifact retrieval pipeline, and the HTTP layer.
//
// Every boundary call returns one of these sentinels (usually wrapped with
// fmt.Errorf("...: %w", err)). Callers inspect them with errors.Is:
//
//	if errors.Is(err, apperrors.ErrRateLimited) {
//	    // retryable
//	}
//
// Classification:
//   - ErrRateLimited: retryable, bounded by the retry executor
//   - ErrNotFound: terminal, nothing to return (for example no caption track)
//   - ErrCatalogUnavailable: terminal, listing or hydration failed
//   - ErrQuotaExceeded: terminal until the daily quota resets
//   - ErrUnavailable: terminal, a feature is disabled (speech engine)
//   - ErrExhausted: terminal, retry attempts ran out
//   - ErrMalformedUpstreamData: absorbed locally with safe defaults
package apperrors

import "errors"

var (
	// ErrRateLimited indicates the upstream asked the caller to back off.
	ErrRateLimited = errors.New("rate limited by upstream")

	// ErrNotFound indicates the requested artifact does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCatalogUnavailable indicates the upload listing or hydration failed.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrQuotaExceeded indicates the daily API quota is spent.
	ErrQuotaExceeded = errors.New("api quota exceeded")

	// ErrUnavailable indicates a feature is disabled for the process lifetime.
	ErrUnavailable = errors.New("feature unavailable")

	// ErrExhausted indicates every retry attempt was rate limited.
	ErrExhausted = errors.New("retry attempts exhausted")

	// ErrMalformedUpstreamData marks a field that could not be decoded.
	// It never escapes the hydration boundary.
	ErrMalformedUpstreamData = errors.New("malformed upstream data")

	// ErrInvalidChannelURL indicates the URL does not name a channel.
	ErrInvalidChannelURL = errors.New("invalid channel url")
)

// IsRetryable reports whether err should be retried by the retry executor.
// An exhausted error still wraps the last rate-limit error but is final.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) && !errors.Is(err, ErrExhausted)
}

// IsTerminal reports whether err is one of the known terminal conditions.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCatalogUnavailable) ||
		errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrExhausted) ||
		errors.Is(err, ErrInvalidChannelURL)
}
