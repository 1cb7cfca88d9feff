// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tomtom215/tubelens/internal/models"
)

// DefaultPageSize is the number of videos per display page.
const DefaultPageSize = 16

// NormalizeSortField maps user input onto a known sort field. Unknown values
// become SortByPublished.
func NormalizeSortField(field string) string {
	switch f := strings.ToLower(strings.TrimSpace(field)); f {
	case models.SortByViews, models.SortByLikes, models.SortByComments:
		return f
	default:
		return models.SortByPublished
	}
}

// SortForDisplay returns a copy of records sorted descending by field. The
// sort is stable, so equal keys keep catalog order.
func SortForDisplay(records []models.VideoRecord, field string) []models.VideoRecord {
	sorted := slices.Clone(records)

	var compare func(a, b models.VideoRecord) int
	switch NormalizeSortField(field) {
	case models.SortByViews:
		compare = byViews
	case models.SortByLikes:
		compare = func(a, b models.VideoRecord) int { return cmp.Compare(b.LikeCount, a.LikeCount) }
	case models.SortByComments:
		compare = func(a, b models.VideoRecord) int { return cmp.Compare(b.CommentCount, a.CommentCount) }
	default:
		compare = func(a, b models.VideoRecord) int { return b.PublishedAt.Compare(a.PublishedAt) }
	}
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func byViews(a, b models.VideoRecord) int {
	return cmp.Compare(b.ViewCount, a.ViewCount)
}

// Paginate slices one display page out of records. pageSize defaults to
// DefaultPageSize and page is clamped into [1, TotalPages]. Items carry their
// duration phrase; revenue is filled in by DecorateRevenue.
func Paginate(records []models.VideoRecord, page, pageSize int) models.PageView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	n := len(records)
	totalPages := max((n+pageSize-1)/pageSize, 1)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*pageSize, n)
	end := min(start+pageSize, n)

	items := make([]models.VideoView, 0, end-start)
	for _, r := range records[start:end] {
		items = append(items, models.VideoView{
			VideoRecord:  r,
			DurationText: durationText(r.DurationSeconds),
		})
	}

	return models.PageView{
		Items:      items,
		PageNumber: page,
		TotalPages: totalPages,
		PageSize:   pageSize,
		TotalItems: n,
	}
}
