// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once with the custom tags below and
// shared by every handler:
//
//	youtube_id   an 11 character video id of letters, digits, "-" and "_"
//
// Failures convert to the API error envelope through ToAPIError:
//
//	type VideoRequest struct {
//	    VideoID string `validate:"required,youtube_id"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    rw.ValidationError(apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
