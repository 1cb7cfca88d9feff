// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// AnalyzeRequest is the query of GET /api/v1/analyze.
type AnalyzeRequest struct {
	URL    string `validate:"required,max=2048"`
	SortBy string `validate:"omitempty,max=32"`
	Page   int    `validate:"gte=1"`
}

// VideoRequest names one video in the path.
type VideoRequest struct {
	VideoID string `validate:"required,youtube_id"`
}

// parseAnalyzeRequest reads the analyze query. A missing, malformed or
// non-positive page means page 1; pages past the end are clamped later.
func parseAnalyzeRequest(r *http.Request) AnalyzeRequest {
	q := r.URL.Query()

	sortBy := q.Get("sortBy")
	if sortBy == "" {
		sortBy = q.Get("sort_by")
	}

	return AnalyzeRequest{
		URL:    strings.TrimSpace(q.Get("url")),
		SortBy: strings.TrimSpace(sortBy),
		Page:   max(getIntParam(r, "page", 1), 1),
	}
}

func parseVideoRequest(r *http.Request) VideoRequest {
	return VideoRequest{VideoID: chi.URLParam(r, "videoID")}
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}
