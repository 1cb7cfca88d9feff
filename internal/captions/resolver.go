// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

// Package captions picks the caption track to serve for a video.
package captions

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/metrics"
	"github.com/tomtom215/tubelens/internal/models"
)

// autoPrefix marks a selector that targets an auto-generated track.
const autoPrefix = "a."

// FallbackOrder is the fixed selector priority: manual Korean, manual
// English, then English speech recognition.
var FallbackOrder = []string{"ko", "en", "a.en"}

// TrackLookup answers whether a video has the track named by a selector.
// It returns nil, nil when the track is absent.
type TrackLookup interface {
	Track(ctx context.Context, selector string) (*models.CaptionTrack, error)
}

// Resolve returns the first track present in FallbackOrder.
// Lookup errors are returned as-is so rate limiting reaches the retry executor.
func Resolve(ctx context.Context, lookup TrackLookup) (*models.CaptionTrack, error) {
	for _, selector := range FallbackOrder {
		track, err := lookup.Track(ctx, selector)
		if err != nil {
			return nil, fmt.Errorf("caption lookup %q: %w", selector, err)
		}
		if track != nil {
			logging.Ctx(ctx).Debug().
				Str("selector", selector).
				Str("language", track.LanguageCode).
				Msg("Caption track selected")
			metrics.RecordCaptionResolution(selector)
			return track, nil
		}
	}

	metrics.RecordCaptionResolution("")
	return nil, fmt.Errorf("no caption track in %v: %w", FallbackOrder, apperrors.ErrNotFound)
}

// Match reports whether track satisfies selector. A plain language code
// selects the manual track in that language; an "a." prefix selects the
// auto-generated one.
func Match(track models.CaptionTrack, selector string) bool {
	if lang, ok := strings.CutPrefix(selector, autoPrefix); ok {
		return track.IsAutoGenerated() && strings.EqualFold(track.LanguageCode, lang)
	}
	return !track.IsAutoGenerated() && strings.EqualFold(track.LanguageCode, selector)
}

// Find returns the first track in tracks that satisfies selector, or nil.
func Find(tracks []models.CaptionTrack, selector string) *models.CaptionTrack {
	for i := range tracks {
		if Match(tracks[i], selector) {
			t := tracks[i]
			return &t
		}
	}
	return nil
}
