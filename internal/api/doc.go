// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package api provides the HTTP JSON API of tubelens.

Routes:

	GET /api/v1/health                        process and dependency status
	GET /api/v1/health/live                   liveness probe
	GET /api/v1/health/ready                  readiness probe
	GET /api/v1/analyze?url=&sortBy=&page=    channel analysis
	GET /api/v1/captions/{videoID}            human or ASR caption as SRT
	GET /api/v1/captions/{videoID}/ai         locally transcribed caption
	GET /api/v1/videos/{videoID}/download     video stream or 302 to the watch page
	GET /metrics                              Prometheus

Every JSON response uses the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}
	}

Failures set success to false and carry {"code", "message", "request_id"}
in error. Service errors are mapped to status codes by WriteServiceError.
The download route never answers with an error body: when the stream
cannot be opened it redirects to the canonical video page.
*/
package api
