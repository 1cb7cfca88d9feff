// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/tubelens/internal/config"
	"github.com/tomtom215/tubelens/internal/models"
)

func TestRouter_UnknownRoute(t *testing.T) {
	rec, env := serve(t, newTestRouter(&fakeService{}, HandlerOptions{}), "/api/v1/nope")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("status = %d error = %+v", rec.Code, env.Error)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(&fakeService{}, HandlerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(&fakeService{}, HandlerOptions{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_active_requests") {
		t.Error("metrics output missing api_active_requests")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	h := NewRouter(NewHandler(&fakeService{}, HandlerOptions{}), NewChiMiddleware(cfg)).Setup()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	svc := &fakeService{analysis: sampleAnalysis()}
	h := NewRouter(NewHandler(svc, HandlerOptions{}), NewChiMiddleware(cfg)).Setup()

	target := "/api/v1/analyze?url=https://youtube.com/@x"
	for i := 0; i < 2; i++ {
		if rec, _ := serve(t, h, target); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}

	rec, env := serve(t, h, target)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}

	// Probes stay reachable.
	if rec, _ := serve(t, h, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health under rate limit: status = %d", rec.Code)
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	cfg := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		RateLimitReqs:     10,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"https://a.example"},
	})

	if cfg.RateLimitRequests != 10 || cfg.RateLimitWindow != 30*time.Second || !cfg.RateLimitDisabled {
		t.Errorf("rate limit config = %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://a.example" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}

	if def := ChiMiddlewareConfigFromSecurity(nil); def.RateLimitRequests != 60 {
		t.Errorf("nil security config: %+v", def)
	}
}

func TestDownloadVideo_FallbackURLFromService(t *testing.T) {
	svc := &fakeService{download: &models.VideoDownload{FallbackURL: "https://youtu.be/other"}}
	rec, _ := serve(t, newTestRouter(svc, HandlerOptions{}), "/api/v1/videos/"+testVideoID+"/download")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "https://youtu.be/other" {
		t.Errorf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
}
