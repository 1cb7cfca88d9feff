// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package models

import "io"

// Caption track kinds.
const (
	CaptionKindManual = ""
	CaptionKindASR    = "asr"
)

// CaptionTrack identifies a caption track of a video.
type CaptionTrack struct {
	LanguageCode string `json:"language_code"`
	Kind         string `json:"kind,omitempty"`
	Name         string `json:"name,omitempty"`
	BaseURL      string `json:"-"`
}

// IsAutoGenerated reports whether the track was produced by speech recognition.
func (t CaptionTrack) IsAutoGenerated() bool {
	return t.Kind == CaptionKindASR
}

// TranscriptSegment is one timed line of speech, in seconds.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// CaptionResult is returned by the caption endpoints.
type CaptionResult struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Language     string `json:"language,omitempty"`
	SubtitleText string `json:"srt_content"`
}

// VideoDownload is either an open stream or, on failure, a redirect target.
type VideoDownload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
	FallbackURL string
}

// IsRedirect reports whether the caller should be sent to FallbackURL.
func (d *VideoDownload) IsRedirect() bool {
	return d.Body == nil && d.FallbackURL != ""
}
