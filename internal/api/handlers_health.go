// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/tomtom215/tubelens/internal/metrics"
	"github.com/tomtom215/tubelens/internal/transcribe"
)

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status       string  `json:"status"`
	Version      string  `json:"version"`
	GoVersion    string  `json:"go_version"`
	Uptime       float64 `json:"uptime_seconds"`
	SpeechEngine string  `json:"speech_engine"`
	CacheEnabled bool    `json:"cache_enabled"`
}

// Health reports process status. It is degraded while AI captions are
// unavailable; every other feature still works.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	speech := h.svc.SpeechState()
	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)

	status := "healthy"
	if speech == transcribe.StateUnavailable {
		status = "degraded"
	}

	NewResponseWriter(w, r).Success(HealthStatus{
		Status:       status,
		Version:      h.opts.Version,
		GoVersion:    runtime.Version(),
		Uptime:       uptime,
		SpeechEngine: speech.String(),
		CacheEnabled: h.opts.CacheEnabled,
	})
}

// HealthLive answers 200 while the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 503 until the process can serve every enabled
// feature: with a preloaded speech engine, that is once loading finished.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	speech := h.svc.SpeechState()
	ready := !h.opts.SpeechRequired || speech != transcribe.StateUninitialized

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	NewResponseWriter(w, r).SuccessWithStatus(statusCode, map[string]interface{}{
		"ready_to_serve": ready,
		"speech_engine":  speech.String(),
		"uptime":         time.Since(h.startTime).Seconds(),
	}, nil)
}
