// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/logging"
)

// Reasons reported in googleapi.Error.Errors for throttling.
var (
	quotaReasons = map[string]bool{
		"quotaExceeded":      true,
		"dailyLimitExceeded": true,
	}
	rateLimitReasons = map[string]bool{
		"rateLimitExceeded":     true,
		"userRateLimitExceeded": true,
	}
)

// classifyError maps a Data API error into the apperrors taxonomy.
// The original message is kept, with the API key redacted.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w: %w", op, apperrors.ErrRateLimited, logging.SafeErr(err))
		case gerr.Code == http.StatusForbidden && hasReason(gerr, quotaReasons):
			return fmt.Errorf("%s: %w: %w", op, apperrors.ErrQuotaExceeded, logging.SafeErr(err))
		case gerr.Code == http.StatusForbidden && hasReason(gerr, rateLimitReasons):
			return fmt.Errorf("%s: %w: %w", op, apperrors.ErrRateLimited, logging.SafeErr(err))
		case gerr.Code == http.StatusNotFound:
			return fmt.Errorf("%s: %w: %w", op, apperrors.ErrNotFound, logging.SafeErr(err))
		}
	}
	return fmt.Errorf("%s: %w", op, logging.SafeErr(err))
}

func hasReason(gerr *googleapi.Error, reasons map[string]bool) bool {
	for _, item := range gerr.Errors {
		if reasons[item.Reason] {
			return true
		}
	}
	return false
}
