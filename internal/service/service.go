// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/tubelens/internal/analytics"
	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/cache"
	"github.com/tomtom215/tubelens/internal/captions"
	"github.com/tomtom215/tubelens/internal/catalog"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/media"
	"github.com/tomtom215/tubelens/internal/metrics"
	"github.com/tomtom215/tubelens/internal/models"
	"github.com/tomtom215/tubelens/internal/retry"
	"github.com/tomtom215/tubelens/internal/transcribe"
)

const (
	// AITitlePrefix marks captions produced by the local speech engine.
	AITitlePrefix = "[AI] "

	videoContentType = "video/mp4"
	snapshotNS       = "snapshot"
)

// MediaSource is the media backend. media.Source implements it.
type MediaSource interface {
	Video(ctx context.Context, videoID string) (*media.Video, error)
	CaptionText(ctx context.Context, track *models.CaptionTrack) (string, error)
	DownloadAudio(ctx context.Context, video *media.Video, dir string) (string, error)
	OpenHighestResolution(ctx context.Context, video *media.Video) (io.ReadCloser, int64, error)
}

// SnapshotCache stores channel snapshots. cache.Snapshots implements it.
type SnapshotCache interface {
	Get(key string) (*models.ChannelSnapshot, bool)
	Set(key string, snap *models.ChannelSnapshot)
}

// Options tunes the service.
type Options struct {
	// MaxVideos caps the catalog walk. Zero means catalog.DefaultCap.
	MaxVideos int
	// PageSize is the display page size. Zero means analytics.DefaultPageSize.
	PageSize int
	// Concurrency bounds parallel hydration batches.
	Concurrency int
	// CPMUSD is the revenue per thousand views.
	CPMUSD float64
}

// Service wires the catalog, media and speech adapters together.
type Service struct {
	catalog catalog.Service
	walker  *catalog.Walker
	media   MediaSource
	speech  *transcribe.Adapter
	cache   SnapshotCache
	opts    Options

	group singleflight.Group
	now   func() time.Time
}

// New creates a Service. snapshots may be nil to disable caching, and speech
// may be nil when local transcription is not configured.
func New(svc catalog.Service, src MediaSource, speech *transcribe.Adapter, snapshots SnapshotCache, opts Options) *Service {
	if opts.MaxVideos <= 0 {
		opts.MaxVideos = catalog.DefaultCap
	}
	if opts.PageSize <= 0 {
		opts.PageSize = analytics.DefaultPageSize
	}
	if opts.CPMUSD <= 0 {
		opts.CPMUSD = analytics.DefaultCPMUSD
	}
	if speech == nil {
		speech = transcribe.Disabled()
	}

	return &Service{
		catalog: svc,
		walker:  catalog.NewWalker(svc, opts.Concurrency),
		media:   src,
		speech:  speech,
		cache:   snapshots,
		opts:    opts,
		now:     time.Now,
	}
}

// SpeechState reports the speech engine lifecycle for readiness probes.
func (s *Service) SpeechState() transcribe.State {
	return s.speech.State()
}

// AnalyzeChannel resolves channelURL, loads the channel snapshot and returns
// one display page sorted by sortField together with the sample summary.
// An empty channel yields an empty page and a nil summary.
func (s *Service) AnalyzeChannel(ctx context.Context, channelURL, sortField string, page int) (*models.ChannelAnalysis, error) {
	channelURL = strings.TrimSpace(channelURL)
	if channelURL == "" {
		return nil, fmt.Errorf("empty channel url: %w", apperrors.ErrInvalidChannelURL)
	}

	channelID, err := retry.Do(ctx, retry.Catalog, func(ctx context.Context) (string, error) {
		return s.catalog.ResolveChannelID(ctx, channelURL)
	}).Unwrap()
	if err != nil {
		return nil, fmt.Errorf("resolve channel: %w", err)
	}
	ctx = logging.ContextWithChannelID(ctx, channelID)

	snap, cached, err := s.snapshot(ctx, channelID)
	if err != nil {
		return nil, err
	}

	sortBy := analytics.NormalizeSortField(sortField)
	view := analytics.Paginate(analytics.SortForDisplay(snap.Videos, sortBy), page, s.opts.PageSize)
	summary := analytics.Summarize(snap.Videos)
	analytics.DecorateRevenue(&view, summary, snap.Videos, s.opts.CPMUSD)

	logging.Ctx(ctx).Debug().
		Int("sample_size", len(snap.Videos)).
		Int("page", view.PageNumber).
		Str("sort_by", sortBy).
		Bool("cached", cached).
		Msg("Channel analyzed")

	return &models.ChannelAnalysis{
		Channel:   snap.Channel,
		Page:      view,
		Summary:   summary,
		SortBy:    sortBy,
		FetchedAt: snap.FetchedAt,
		Cached:    cached,
	}, nil
}

// snapshot returns the cached snapshot of channelID or loads it. Concurrent
// loads of the same channel share one walk.
func (s *Service) snapshot(ctx context.Context, channelID string) (*models.ChannelSnapshot, bool, error) {
	key := cache.GenerateKey(snapshotNS, map[string]any{
		"channel_id": channelID,
		"max_videos": s.opts.MaxVideos,
	})

	if s.cache != nil {
		if snap, ok := s.cache.Get(key); ok {
			return snap, true, nil
		}
	}

	// The shared load must outlive a cancelled first caller.
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(key, func() (any, error) {
		snap, err := s.loadSnapshot(loadCtx, channelID)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(key, snap)
		}
		return snap, nil
	})
	if err != nil {
		return nil, false, err
	}
	if shared {
		logging.Ctx(ctx).Debug().Msg("Joined in-flight channel load")
	}
	return v.(*models.ChannelSnapshot), false, nil
}

func (s *Service) loadSnapshot(ctx context.Context, channelID string) (*models.ChannelSnapshot, error) {
	stats, err := retry.Do(ctx, retry.Catalog, func(ctx context.Context) (models.ChannelStats, error) {
		return s.catalog.ChannelInfo(ctx, channelID)
	}).Unwrap()
	if err != nil {
		if errors.Is(err, apperrors.ErrRateLimited) {
			return nil, fmt.Errorf("channel info: %w: %w", apperrors.ErrQuotaExceeded, err)
		}
		return nil, fmt.Errorf("channel info: %w", err)
	}

	videos, err := s.walker.Walk(ctx, channelID, s.opts.MaxVideos)
	if err != nil {
		return nil, fmt.Errorf("walk uploads: %w", err)
	}

	return &models.ChannelSnapshot{
		Channel:   stats,
		Videos:    videos,
		FetchedAt: s.now().UTC(),
	}, nil
}

// FetchCaption returns the first caption track in the fallback order as
// SubRip text.
func (s *Service) FetchCaption(ctx context.Context, videoID string) (*models.CaptionResult, error) {
	ctx = logging.ContextWithVideoID(ctx, videoID)

	res := retry.Do(ctx, retry.Caption, func(ctx context.Context) (*models.CaptionResult, error) {
		video, err := s.media.Video(ctx, videoID)
		if err != nil {
			return nil, err
		}
		track, err := captions.Resolve(ctx, video)
		if err != nil {
			return nil, err
		}
		text, err := s.media.CaptionText(ctx, track)
		if err != nil {
			return nil, err
		}
		return &models.CaptionResult{
			VideoID:      videoID,
			Title:        video.Title,
			Language:     trackSelector(track),
			SubtitleText: text,
		}, nil
	})
	if !res.Ok() {
		return nil, fmt.Errorf("fetch caption: %w", res.Err)
	}
	return res.Value, nil
}

// FetchAICaption transcribes the video's audio with the local speech engine.
// It fails with ErrUnavailable, without touching the network, when the
// engine is disabled or failed to load.
func (s *Service) FetchAICaption(ctx context.Context, videoID string) (*models.CaptionResult, error) {
	ctx = logging.ContextWithVideoID(ctx, videoID)

	if _, err := s.speech.Engine(ctx); err != nil {
		return nil, fmt.Errorf("ai caption: %w", err)
	}

	res := retry.Do(ctx, retry.Speech, func(ctx context.Context) (*models.CaptionResult, error) {
		video, err := s.media.Video(ctx, videoID)
		if err != nil {
			return nil, err
		}
		text, err := s.speech.Transcribe(ctx, videoID, func(ctx context.Context, dir string) (string, error) {
			return s.media.DownloadAudio(ctx, video, dir)
		})
		if err != nil {
			return nil, err
		}
		return &models.CaptionResult{
			VideoID:      videoID,
			Title:        AITitlePrefix + video.Title,
			Language:     s.speech.Language(),
			SubtitleText: text,
		}, nil
	})
	if !res.Ok() {
		return nil, fmt.Errorf("ai caption: %w", res.Err)
	}
	return res.Value, nil
}

// FetchDownloadableVideo opens the highest-resolution progressive stream.
// On failure it still returns a VideoDownload carrying only FallbackURL,
// along with the error for logging.
func (s *Service) FetchDownloadableVideo(ctx context.Context, videoID string) (*models.VideoDownload, error) {
	ctx = logging.ContextWithVideoID(ctx, videoID)

	res := retry.Do(ctx, retry.Download, func(ctx context.Context) (*models.VideoDownload, error) {
		video, err := s.media.Video(ctx, videoID)
		if err != nil {
			return nil, err
		}
		body, size, err := s.media.OpenHighestResolution(ctx, video)
		if err != nil {
			return nil, err
		}
		return &models.VideoDownload{
			Filename:    media.SanitizeFilename(video.Title),
			ContentType: videoContentType,
			Size:        size,
			Body:        body,
		}, nil
	})
	if !res.Ok() {
		metrics.RecordDownload(false)
		logging.Ctx(ctx).Warn().
			Err(res.Err).
			Int("attempts", res.Attempts).
			Msg("Download failed, redirecting to video page")
		return &models.VideoDownload{FallbackURL: models.CanonicalVideoURL(videoID)}, fmt.Errorf("download video: %w", res.Err)
	}

	metrics.RecordDownload(true)
	return res.Value, nil
}

// trackSelector renders track as the selector that picked it.
func trackSelector(track *models.CaptionTrack) string {
	if track.IsAutoGenerated() {
		return "a." + track.LanguageCode
	}
	return track.LanguageCode
}
