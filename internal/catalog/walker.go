// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

// Package catalog walks a channel's upload listing and hydrates every video.
//
// A walk is bounded: it collects at most a fixed number of ids (200 by
// default) from the uploads playlist, cutting the last page short if needed,
// then hydrates them in batches of 50. Batches may run concurrently, but the
// returned records keep the upstream listing order. Any batch failure fails
// the whole walk; partial samples are never returned.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/metrics"
	"github.com/tomtom215/tubelens/internal/models"
)

const (
	// DefaultCap bounds the number of videos collected per walk.
	DefaultCap = 200

	// BatchSize is the number of ids hydrated per details call.
	BatchSize = 50

	defaultConcurrency = 4
)

// Service is the upstream catalog consumed by the walker and the analysis
// service. youtube.Client implements it.
type Service interface {
	UploadsPlaylist(ctx context.Context, channelID string) (string, error)
	PlaylistItems(ctx context.Context, playlistID, pageToken string) (ids []string, next string, err error)
	VideoDetails(ctx context.Context, ids []string) ([]models.VideoRecord, error)
	ChannelInfo(ctx context.Context, channelID string) (models.ChannelStats, error)
	ResolveChannelID(ctx context.Context, url string) (string, error)
}

// Walker collects and hydrates a channel's uploads.
type Walker struct {
	svc         Service
	concurrency int
}

// NewWalker creates a walker. concurrency bounds parallel hydration batches;
// values below 1 use the default of 4.
func NewWalker(svc Service, concurrency int) *Walker {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Walker{svc: svc, concurrency: concurrency}
}

// Walk returns up to limit hydrated uploads of channelID in listing order.
// A limit of 0 or less means DefaultCap. An empty channel yields an empty
// slice and no error.
//
// Rate limiting and quota exhaustion are returned with their own class so
// callers can report them; every other failure is ErrCatalogUnavailable.
func (w *Walker) Walk(ctx context.Context, channelID string, limit int) ([]models.VideoRecord, error) {
	start := time.Now()
	records, err := w.walk(ctx, channelID, limit)
	metrics.RecordCatalogWalk(time.Since(start), len(records), err)
	return records, err
}

func (w *Walker) walk(ctx context.Context, channelID string, limit int) ([]models.VideoRecord, error) {
	if limit <= 0 {
		limit = DefaultCap
	}
	log := logging.Ctx(ctx)

	playlistID, err := w.svc.UploadsPlaylist(ctx, channelID)
	if err != nil {
		return nil, classify(ctx, "resolve uploads playlist", err)
	}

	ids, err := w.collectIDs(ctx, playlistID, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		log.Info().Str("channel_id", channelID).Msg("Channel has no uploads")
		return []models.VideoRecord{}, nil
	}

	records, err := w.hydrate(ctx, ids)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("channel_id", channelID).
		Int("ids", len(ids)).
		Int("hydrated", len(records)).
		Msg("Catalog walk complete")
	return records, nil
}

// collectIDs follows page tokens until limit ids are collected or the
// listing ends.
func (w *Walker) collectIDs(ctx context.Context, playlistID string, limit int) ([]string, error) {
	ids := make([]string, 0, limit)
	token := ""
	for {
		page, next, err := w.svc.PlaylistItems(ctx, playlistID, token)
		if err != nil {
			return nil, classify(ctx, "list playlist items", err)
		}

		remaining := limit - len(ids)
		if len(page) > remaining {
			page = page[:remaining]
		}
		ids = append(ids, page...)

		if len(ids) >= limit || next == "" || next == token {
			return ids, nil
		}
		token = next
	}
}

// hydrate fetches details for ids in fixed batches. Each batch writes into
// its own slot so concatenation preserves listing order.
func (w *Walker) hydrate(ctx context.Context, ids []string) ([]models.VideoRecord, error) {
	batches := chunk(ids, BatchSize)
	slots := make([][]models.VideoRecord, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for i, batch := range batches {
		g.Go(func() error {
			records, err := w.svc.VideoDetails(gctx, batch)
			if err != nil {
				return classify(ctx, fmt.Sprintf("hydrate batch %d", i), err)
			}
			slots[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	records := make([]models.VideoRecord, 0, total)
	for _, s := range slots {
		records = append(records, s...)
	}
	return records, nil
}

// chunk splits ids into consecutive slices of at most size elements.
func chunk(ids []string, size int) [][]string {
	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}

// classify keeps throttling errors and caller cancellation as they are and
// folds everything else, including per-call timeouts, into
// ErrCatalogUnavailable.
func classify(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrRateLimited),
		errors.Is(err, apperrors.ErrQuotaExceeded):
		return fmt.Errorf("%s: %w", op, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrCatalogUnavailable, err)
	}
}
