// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/tomtom215/tubelens/internal/models"
	"github.com/tomtom215/tubelens/internal/subtitle"
)

// TopCount is the number of videos in AnalysisSummary.Top5ByViews.
const TopCount = 5

const day = 24 * time.Hour

// Summarize computes the analysis summary of the full sample. It returns nil
// for an empty sample. EstimatedRevenueUSD is left at zero; see Revenue.
func Summarize(records []models.VideoRecord) *models.AnalysisSummary {
	if len(records) == 0 {
		return nil
	}

	var duration, views, likes, comments int64
	oldest, newest := records[0].PublishedAt, records[0].PublishedAt
	for i := range records {
		r := &records[i]
		duration += r.DurationSeconds
		views += r.ViewCount
		likes += r.LikeCount
		comments += r.CommentCount
		if r.PublishedAt.Before(oldest) {
			oldest = r.PublishedAt
		}
		if r.PublishedAt.After(newest) {
			newest = r.PublishedAt
		}
	}

	n := len(records)
	avg := float64(duration) / float64(n)

	return &models.AnalysisSummary{
		SampleSize:             n,
		UploadsPerWeek:         round1(float64(n) / float64(weeksBetween(oldest, newest, n))),
		AverageDurationSeconds: avg,
		AverageDurationText:    subtitle.DurationPhrase(int(avg)),
		LikesPer1000Views:      per1000(likes, views),
		CommentsPer1000Views:   per1000(comments, views),
		Top5ByViews:            topByViews(records, TopCount),
	}
}

// weeksBetween returns the whole number of weeks spanned by the sample, with a
// floor of one. A single record always counts as one week.
func weeksBetween(oldest, newest time.Time, n int) int64 {
	if n < 2 {
		return 1
	}
	days := int64(newest.Sub(oldest) / day)
	return max(days/7, 1)
}

func per1000(count, views int64) float64 {
	if views == 0 {
		return 0
	}
	return round1(float64(count) / float64(views) * 1000)
}

// topByViews returns the k most viewed records. Ties keep catalog order.
func topByViews(records []models.VideoRecord, k int) []models.VideoRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, byViews)
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
