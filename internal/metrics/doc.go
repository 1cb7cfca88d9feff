// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package initialization, so importing the package is enough to expose them on
the /metrics endpoint served by promhttp.

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by httprate (counter)

YouTube Data API Metrics:
  - youtube_api_requests_total: Calls by operation and classified result
  - youtube_api_call_duration_seconds: Call latency by operation

Catalog Metrics:
  - catalog_walk_duration_seconds: Full walk duration including hydration
  - catalog_videos_hydrated: Sample size per walk
  - catalog_walk_errors_total: Failed walks by error type

Retry Metrics:
  - retry_attempts_total, retry_waits_total: Labels: policy
  - retry_outcomes_total: Labels: policy, outcome (success, failed, exhausted)

Artifact Metrics:
  - caption_resolutions_total: Labels: selector (ko, en, a.en, none)
  - transcription_duration_seconds, transcriptions_total
  - speech_engine_state: 0=uninitialized, 1=ready, 2=unavailable
  - video_downloads_total: Labels: result (stream, redirect)

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_entries, cache_evictions_total
    Labels: cache_type (memory, disk)
  - cache_gc_runs_total: Labels: result (rewritten, noop, error)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_consecutive_failures
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

# Example PromQL

	# Share of caption requests served by the English fallback
	sum(rate(caption_resolutions_total{selector="en"}[1h])) / sum(rate(caption_resolutions_total[1h]))

	# Snapshot cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

	# Exhausted retries per policy
	sum by (policy) (rate(retry_outcomes_total{outcome="exhausted"}[15m]))
*/
package metrics
