// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package youtube

import (
	"context"
	"time"

	yt "google.golang.org/api/youtube/v3"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/models"
)

// toVideoRecord converts a videos.list item. Malformed fields fall back to
// documented defaults and are logged at debug level.
func (c *Client) toVideoRecord(ctx context.Context, v *yt.Video) models.VideoRecord {
	rec := models.VideoRecord{
		ID:  v.Id,
		URL: models.CanonicalVideoURL(v.Id),
	}

	if s := v.Snippet; s != nil {
		rec.Title = s.Title
		rec.PublishedAt = c.parseTime(ctx, v.Id, "published_at", s.PublishedAt)
		if s.Thumbnails != nil && s.Thumbnails.Medium != nil {
			rec.ThumbnailURL = s.Thumbnails.Medium.Url
		}
	} else {
		rec.PublishedAt = c.now().UTC()
	}

	if st := v.Statistics; st != nil {
		rec.ViewCount = toInt64(st.ViewCount)
		rec.LikeCount = toInt64(st.LikeCount)
		rec.CommentCount = toInt64(st.CommentCount)
	}

	if cd := v.ContentDetails; cd != nil {
		if secs, ok := ParseISODuration(cd.Duration); ok {
			rec.DurationSeconds = secs
		} else {
			logging.Ctx(ctx).Debug().
				Err(apperrors.ErrMalformedUpstreamData).
				Str("video_id", v.Id).
				Str("duration", cd.Duration).
				Msg("Unparseable video duration, using 0")
		}
	}
	return rec
}

// toChannelStats converts a channels.list item.
func (c *Client) toChannelStats(ctx context.Context, ch *yt.Channel) models.ChannelStats {
	stats := models.ChannelStats{ID: ch.Id}

	if s := ch.Snippet; s != nil {
		stats.Title = s.Title
		stats.Description = s.Description
		created := c.parseTime(ctx, ch.Id, "created_date", s.PublishedAt)
		stats.CreatedDate = time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
		if s.Thumbnails != nil && s.Thumbnails.High != nil {
			stats.ProfileImageURL = s.Thumbnails.High.Url
		}
	}

	if st := ch.Statistics; st != nil {
		stats.SubscriberCount = toInt64(st.SubscriberCount)
		stats.TotalViewCount = toInt64(st.ViewCount)
		stats.VideoCount = toInt64(st.VideoCount)
	}
	return stats
}

func (c *Client) parseTime(ctx context.Context, id, field, value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(apperrors.ErrMalformedUpstreamData).
			Str("id", id).
			Str("field", field).
			Str("value", value).
			Msg("Unparseable timestamp, using hydration time")
		return c.now().UTC()
	}
	return t.UTC()
}

// toInt64 saturates counters that overflow int64.
func toInt64(n uint64) int64 {
	const maxInt64 = 1<<63 - 1
	if n > maxInt64 {
		return maxInt64
	}
	return int64(n)
}
