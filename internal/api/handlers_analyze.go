// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package api

import (
	"net/http"

	"github.com/tomtom215/tubelens/internal/validation"
)

// validateRequest writes a 400 and returns false when v is invalid.
func validateRequest(rw *ResponseWriter, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
	return false
}

// Analyze handles GET /api/v1/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := parseAnalyzeRequest(r)
	if !validateRequest(rw, &req) {
		return
	}

	analysis, err := h.svc.AnalyzeChannel(r.Context(), req.URL, req.SortBy, req.Page)
	if err != nil {
		WriteServiceError(w, r, "analyze", err)
		return
	}

	page := analysis.Page
	rw.SuccessWithPagination(analysis, &PaginationMeta{
		Page:       page.PageNumber,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		Total:      page.TotalItems,
		HasMore:    page.PageNumber < page.TotalPages,
	})
}
