// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/config"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/metrics"
	"github.com/tomtom215/tubelens/internal/models"
)

// MaxPageSize is the largest page the Data API returns for playlist items
// and the largest id batch accepted by videos.list.
const MaxPageSize = 50

var (
	channelParts  = []string{"snippet", "statistics", "contentDetails"}
	playlistParts = []string{"contentDetails"}
	videoParts    = []string{"snippet", "statistics", "contentDetails"}
)

// Client is a rate-limited, circuit-broken YouTube Data API client.
type Client struct {
	svc     *yt.Service
	limiter *rate.Limiter
	breaker *breaker
	timeout time.Duration
	now     func() time.Time
}

// NewClient builds a Data API client authenticated with an API key.
// A non-empty cfg.Endpoint replaces the public endpoint (tests, proxies).
func NewClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("youtube: api key is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		svc:     svc,
		limiter: rate.NewLimiter(limit, burst),
		breaker: newBreaker(BreakerName),
		timeout: cfg.Timeout,
		now:     time.Now,
	}, nil
}

// call runs one Data API request under the limiter, breaker and timeout.
func call[T any](ctx context.Context, c *Client, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := c.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("%s: rate limiter: %w", op, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := castResult[T](c.breaker.execute(func() (any, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, classifyError(op, err)
		}
		return v, nil
	}))
	metrics.RecordYouTubeCall(op, time.Since(start), err)
	return result, err
}

// ResolveChannelID turns a channel URL, handle or id into a channel id.
func (c *Client) ResolveChannelID(ctx context.Context, rawURL string) (string, error) {
	ref, err := ParseChannelURL(rawURL)
	if err != nil {
		return "", err
	}
	if ref.Kind == RefChannelID {
		return ref.Value, nil
	}

	resp, err := call(ctx, c, "channels.resolve", func(ctx context.Context) (*yt.ChannelListResponse, error) {
		req := c.svc.Channels.List([]string{"id"}).Context(ctx)
		if ref.Kind == RefUsername {
			req = req.ForUsername(ref.Value)
		} else {
			req = req.ForHandle(ref.Value)
		}
		return req.Do()
	})
	if err != nil {
		return "", err
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == "" {
		return "", fmt.Errorf("channel %q: %w", ref.Value, apperrors.ErrNotFound)
	}
	return resp.Items[0].Id, nil
}

// channel fetches one channel resource.
func (c *Client) channel(ctx context.Context, op, channelID string) (*yt.Channel, error) {
	resp, err := call(ctx, c, op, func(ctx context.Context) (*yt.ChannelListResponse, error) {
		return c.svc.Channels.List(channelParts).Id(channelID).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, apperrors.ErrNotFound)
	}
	return resp.Items[0], nil
}

// ChannelInfo returns channel-level statistics.
func (c *Client) ChannelInfo(ctx context.Context, channelID string) (models.ChannelStats, error) {
	ch, err := c.channel(ctx, "channels.list", channelID)
	if err != nil {
		return models.ChannelStats{}, err
	}
	return c.toChannelStats(ctx, ch), nil
}

// UploadsPlaylist returns the id of the channel's uploads playlist.
func (c *Client) UploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	ch, err := c.channel(ctx, "channels.uploads", channelID)
	if err != nil {
		return "", err
	}
	if ch.ContentDetails == nil || ch.ContentDetails.RelatedPlaylists == nil || ch.ContentDetails.RelatedPlaylists.Uploads == "" {
		return "", fmt.Errorf("channel %s has no uploads playlist: %w", channelID, apperrors.ErrNotFound)
	}
	return ch.ContentDetails.RelatedPlaylists.Uploads, nil
}

// PlaylistItems returns one page of video ids and the next page token.
func (c *Client) PlaylistItems(ctx context.Context, playlistID, pageToken string) ([]string, string, error) {
	resp, err := call(ctx, c, "playlistItems.list", func(ctx context.Context) (*yt.PlaylistItemListResponse, error) {
		req := c.svc.PlaylistItems.List(playlistParts).
			PlaylistId(playlistID).
			MaxResults(MaxPageSize).
			Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		return req.Do()
	})
	if err != nil {
		return nil, "", err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
			continue
		}
		ids = append(ids, item.ContentDetails.VideoId)
	}
	return ids, resp.NextPageToken, nil
}

// VideoDetails hydrates up to MaxPageSize ids. Records are returned in the
// order of ids; ids the upstream no longer knows are skipped.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]models.VideoRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxPageSize {
		return nil, fmt.Errorf("videos.list: %d ids exceeds batch size %d", len(ids), MaxPageSize)
	}

	resp, err := call(ctx, c, "videos.list", func(ctx context.Context) (*yt.VideoListResponse, error) {
		return c.svc.Videos.List(videoParts).Id(ids...).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*yt.Video, len(resp.Items))
	for _, v := range resp.Items {
		if v != nil {
			byID[v.Id] = v
		}
	}

	records := make([]models.VideoRecord, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			logging.Ctx(ctx).Debug().Str("video_id", id).Msg("Video missing from details response")
			continue
		}
		records = append(records, c.toVideoRecord(ctx, v))
	}
	return records, nil
}
