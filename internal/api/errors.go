// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/logging"
)

// errorResponse is the status, code and message for one error class.
type errorResponse struct {
	status  int
	code    string
	message string
}

// classifyError maps a service error to its HTTP response. Quota is checked
// before rate limiting because a quota error raised from a throttled channel
// lookup wraps both.
func classifyError(err error) errorResponse {
	switch {
	case errors.Is(err, apperrors.ErrInvalidChannelURL):
		return errorResponse{http.StatusBadRequest, ErrCodeInvalidChannelURL, "Not a recognizable YouTube channel URL"}
	case errors.Is(err, apperrors.ErrQuotaExceeded):
		return errorResponse{http.StatusTooManyRequests, ErrCodeQuotaExceeded, "YouTube API quota exceeded, try again later"}
	case errors.Is(err, apperrors.ErrRateLimited), errors.Is(err, apperrors.ErrExhausted):
		return errorResponse{http.StatusTooManyRequests, ErrCodeTooManyRequests, "YouTube is rate limiting requests, try again later"}
	case errors.Is(err, apperrors.ErrCatalogUnavailable):
		return errorResponse{http.StatusBadGateway, ErrCodeExternalServiceFail, "Channel uploads could not be loaded"}
	case errors.Is(err, apperrors.ErrNotFound):
		return errorResponse{http.StatusNotFound, ErrCodeNotFound, "Requested resource was not found"}
	case errors.Is(err, apperrors.ErrUnavailable):
		return errorResponse{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "This feature is not available on this server"}
	default:
		return errorResponse{http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"}
	}
}

// WriteServiceError logs err and writes the mapped error response. The raw
// error never reaches the client.
func WriteServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	resp := classifyError(err)

	event := logging.Ctx(r.Context()).Warn()
	if resp.status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Err(err).
		Str("op", op).
		Int("status", resp.status).
		Str("code", resp.code).
		Msg("Request failed")

	WriteError(w, r, resp.status, resp.code, resp.message)
}
