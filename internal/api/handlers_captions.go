// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package api

import (
	"net/http"
)

// Caption handles GET /api/v1/captions/{videoID}.
func (h *Handler) Caption(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := parseVideoRequest(r)
	if !validateRequest(rw, &req) {
		return
	}

	result, err := h.svc.FetchCaption(r.Context(), req.VideoID)
	if err != nil {
		WriteServiceError(w, r, "caption", err)
		return
	}
	rw.Success(result)
}

// AICaption handles GET /api/v1/captions/{videoID}/ai.
func (h *Handler) AICaption(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := parseVideoRequest(r)
	if !validateRequest(rw, &req) {
		return
	}

	result, err := h.svc.FetchAICaption(r.Context(), req.VideoID)
	if err != nil {
		WriteServiceError(w, r, "ai_caption", err)
		return
	}
	rw.Success(result)
}
