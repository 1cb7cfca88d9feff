// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package analytics

import (
	"github.com/tomtom215/tubelens/internal/models"
	"github.com/tomtom215/tubelens/internal/subtitle"
)

// DefaultCPMUSD is the revenue per thousand views used when none is configured.
const DefaultCPMUSD = 1.5

// EstimateRevenue returns views/1000*cpm in USD, rounded to cents.
func EstimateRevenue(views int64, cpm float64) float64 {
	if views <= 0 || cpm <= 0 {
		return 0
	}
	return round2(float64(views) / 1000 * cpm)
}

// DecorateRevenue fills EstimatedRevenueUSD on every page item and on the
// summary, which may be nil. The summary figure covers the whole sample.
func DecorateRevenue(page *models.PageView, summary *models.AnalysisSummary, sample []models.VideoRecord, cpm float64) {
	for i := range page.Items {
		page.Items[i].EstimatedRevenueUSD = EstimateRevenue(page.Items[i].ViewCount, cpm)
	}
	if summary == nil {
		return
	}
	var views int64
	for i := range sample {
		views += sample[i].ViewCount
	}
	summary.EstimatedRevenueUSD = EstimateRevenue(views, cpm)
}

func durationText(seconds int64) string {
	return subtitle.DurationPhrase(int(seconds))
}
