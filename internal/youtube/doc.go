// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package youtube is the YouTube Data API v3 adapter behind the catalog walker.

Client implements catalog.Service on top of google.golang.org/api/youtube/v3.
Every call passes through three layers, outermost first:

  - a token-bucket rate limiter (golang.org/x/time/rate) that smooths quota use
  - a circuit breaker (sony/gobreaker) that stops calling a failing upstream
  - a per-call timeout

Upstream errors are classified once, here, into the apperrors taxonomy:

  - HTTP 429, or 403 with reason rateLimitExceeded / userRateLimitExceeded,
    becomes apperrors.ErrRateLimited
  - 403 with reason quotaExceeded / dailyLimitExceeded becomes
    apperrors.ErrQuotaExceeded
  - 404 and empty item lists become apperrors.ErrNotFound
  - an open circuit becomes apperrors.ErrCatalogUnavailable

Record conversion absorbs malformed fields: an unparseable ISO-8601 duration
becomes 0 seconds and an unparseable publish time becomes the hydration time.
Neither fails the batch.

Channel URLs are resolved from the forms youtube.com/channel/<id>,
youtube.com/user/<name>, youtube.com/@<handle>, or a bare UC... id.
*/
package youtube
