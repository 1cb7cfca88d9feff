// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package models

import "time"

// Sort fields accepted for display ordering.
const (
	SortByViews     = "views"
	SortByLikes     = "likes"
	SortByComments  = "comments"
	SortByPublished = "published"
)

// AnalysisSummary holds metrics derived from the full hydrated sample.
type AnalysisSummary struct {
	SampleSize             int           `json:"sample_size"`
	UploadsPerWeek         float64       `json:"uploads_per_week"`
	AverageDurationSeconds float64       `json:"average_duration_seconds"`
	AverageDurationText    string        `json:"average_duration_text"`
	LikesPer1000Views      float64       `json:"likes_per_1000_views"`
	CommentsPer1000Views   float64       `json:"comments_per_1000_views"`
	EstimatedRevenueUSD    float64       `json:"estimated_revenue_usd"`
	Top5ByViews            []VideoRecord `json:"top_5_by_views"`
}

// PageView is one display page of the sample.
type PageView struct {
	Items      []VideoView `json:"items"`
	PageNumber int         `json:"page_number"`
	TotalPages int         `json:"total_pages"`
	PageSize   int         `json:"page_size"`
	TotalItems int         `json:"total_items"`
}

// ChannelAnalysis is the result of analyzing one channel URL.
// Summary is nil when the channel has no hydrated uploads.
type ChannelAnalysis struct {
	Channel   ChannelStats     `json:"channel"`
	Page      PageView         `json:"page"`
	Summary   *AnalysisSummary `json:"summary,omitempty"`
	SortBy    string           `json:"sort_by"`
	FetchedAt time.Time        `json:"fetched_at"`
	Cached    bool             `json:"cached"`
}
