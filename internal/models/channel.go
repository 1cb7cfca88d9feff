// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package models

import "time"

// ChannelStats holds channel-level figures from a single channel-info call.
// VideoCount is the catalog-reported total and may exceed the hydrated sample.
type ChannelStats struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	SubscriberCount int64     `json:"subscriber_count"`
	TotalViewCount  int64     `json:"total_view_count"`
	CreatedDate     time.Time `json:"created_date"`
	VideoCount      int64     `json:"video_count"`
	ProfileImageURL string    `json:"profile_image_url"`
}

// ChannelSnapshot is the cached unit of an analysis: channel info plus the
// bounded catalog sample in upstream order.
type ChannelSnapshot struct {
	Channel   ChannelStats  `json:"channel"`
	Videos    []VideoRecord `json:"videos"`
	FetchedAt time.Time     `json:"fetched_at"`
}
