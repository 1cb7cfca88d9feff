// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package middleware provides HTTP middleware shared by every tubelens route.

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge per route

Both use the http.HandlerFunc shape and are adapted to chi by the api
package:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Route labels come from the chi route pattern, so /api/v1/captions/{videoID}
is one series no matter how many videos are requested.
*/
package middleware
