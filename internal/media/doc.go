// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

// Package media adapts github.com/kkdai/youtube/v2 to the caption and download
// pipeline: video metadata with caption tracks, caption text, the audio-only
// stream used for transcription, and the highest-resolution muxed stream.
//
// Upstream HTTP 429 responses are classified as apperrors.ErrRateLimited so
// the retry executor can back off; 404 becomes apperrors.ErrNotFound.
package media
