// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package models

import "time"

// VideoRecord is one hydrated upload of a channel.
type VideoRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	URL             string    `json:"url"`
	PublishedAt     time.Time `json:"published_at"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// VideoView is a VideoRecord decorated with display-only fields.
type VideoView struct {
	VideoRecord
	DurationText        string  `json:"duration_text"`
	EstimatedRevenueUSD float64 `json:"estimated_revenue_usd"`
}

// CanonicalVideoURL returns the short public URL of a video.
func CanonicalVideoURL(videoID string) string {
	return "https://youtu.be/" + videoID
}
