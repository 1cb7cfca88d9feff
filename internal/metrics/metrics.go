// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/tubelens/internal/apperrors"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - YouTube Data API calls and catalog walks
// - Retry policies and caption resolution
// - Speech transcription and video downloads
// - Snapshot cache efficiency and circuit breakers

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// YouTube Data API Metrics
	YouTubeAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youtube_api_requests_total",
			Help: "Total number of YouTube Data API calls",
		},
		[]string{"operation", "result"}, // result: "success", "rate_limited", "quota_exceeded", "not_found", "error"
	)

	YouTubeAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "youtube_api_call_duration_seconds",
			Help:    "Duration of YouTube Data API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Catalog Walk Metrics
	CatalogWalkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_walk_duration_seconds",
			Help:    "Duration of full catalog walks including hydration",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CatalogVideosHydrated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_videos_hydrated",
			Help:    "Number of videos hydrated per catalog walk",
			Buckets: []float64{0, 1, 10, 50, 100, 150, 200},
		},
	)

	CatalogWalkErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_walk_errors_total",
			Help: "Total number of failed catalog walks",
		},
		[]string{"error_type"},
	)

	// Retry Metrics
	RetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of attempts made under a retry policy",
		},
		[]string{"policy"},
	)

	RetryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_outcomes_total",
			Help: "Total number of retry executions by final outcome",
		},
		[]string{"policy", "outcome"}, // outcome: "success", "failed", "exhausted"
	)

	RetryWaits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_waits_total",
			Help: "Total number of backoff waits taken after rate limiting",
		},
		[]string{"policy"},
	)

	// Caption Metrics
	CaptionResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caption_resolutions_total",
			Help: "Caption fallback resolutions by selected track",
		},
		[]string{"selector"}, // "ko", "en", "a.en", "none"
	)

	// Transcription Metrics
	TranscriptionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transcription_duration_seconds",
			Help:    "Duration of speech transcriptions including audio download",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1200},
		},
	)

	TranscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcriptions_total",
			Help: "Total number of speech transcriptions",
		},
		[]string{"result"},
	)

	SpeechEngineState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "speech_engine_state",
			Help: "Speech engine state (0=uninitialized, 1=ready, 2=unavailable)",
		},
	)

	// Download Metrics
	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_downloads_total",
			Help: "Total number of video download requests",
		},
		[]string{"result"}, // "stream", "redirect"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "memory", "disk"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry or capacity)",
		},
		[]string{"cache_type"},
	)

	CacheGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_gc_runs_total",
			Help: "Total number of on-disk cache value log GC runs",
		},
		[]string{"result"}, // "rewritten", "noop", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordYouTubeCall records a Data API call and its classified result
func RecordYouTubeCall(operation string, duration time.Duration, err error) {
	YouTubeAPIDuration.WithLabelValues(operation).Observe(duration.Seconds())
	YouTubeAPIRequests.WithLabelValues(operation, ErrorType(err)).Inc()
}

// RecordCatalogWalk records a completed or failed catalog walk
func RecordCatalogWalk(duration time.Duration, hydrated int, err error) {
	CatalogWalkDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogWalkErrors.WithLabelValues(ErrorType(err)).Inc()
		return
	}
	CatalogVideosHydrated.Observe(float64(hydrated))
}

// RecordRetryAttempt counts one attempt under the named policy
func RecordRetryAttempt(policy string) {
	RetryAttempts.WithLabelValues(policy).Inc()
}

// RecordRetryWait counts one backoff wait under the named policy
func RecordRetryWait(policy string) {
	RetryWaits.WithLabelValues(policy).Inc()
}

// RecordRetryOutcome records the final outcome of a retry execution
func RecordRetryOutcome(policy, outcome string) {
	RetryOutcomes.WithLabelValues(policy, outcome).Inc()
}

// RecordCaptionResolution records which fallback selector was chosen.
// An empty selector means no track matched.
func RecordCaptionResolution(selector string) {
	if selector == "" {
		selector = "none"
	}
	CaptionResolutions.WithLabelValues(selector).Inc()
}

// RecordTranscription records a speech transcription
func RecordTranscription(duration time.Duration, err error) {
	TranscriptionDuration.Observe(duration.Seconds())
	TranscriptionsTotal.WithLabelValues(ErrorType(err)).Inc()
}

// RecordDownload records whether a download was streamed or redirected
func RecordDownload(streamed bool) {
	if streamed {
		DownloadsTotal.WithLabelValues("stream").Inc()
	} else {
		DownloadsTotal.WithLabelValues("redirect").Inc()
	}
}

// ErrorType maps an error onto a low-cardinality label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrExhausted):
		return "exhausted"
	case errors.Is(err, apperrors.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, apperrors.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, apperrors.ErrCatalogUnavailable):
		return "catalog_unavailable"
	case errors.Is(err, apperrors.ErrInvalidChannelURL):
		return "invalid_channel_url"
	default:
		return "error"
	}
}
