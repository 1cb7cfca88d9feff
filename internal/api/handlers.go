// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package api

import (
	"context"
	"runtime"
	"time"

	"github.com/tomtom215/tubelens/internal/metrics"
	"github.com/tomtom215/tubelens/internal/models"
	"github.com/tomtom215/tubelens/internal/transcribe"
)

// Service is the application core consumed by the handlers.
// service.Service implements it.
type Service interface {
	AnalyzeChannel(ctx context.Context, channelURL, sortField string, page int) (*models.ChannelAnalysis, error)
	FetchCaption(ctx context.Context, videoID string) (*models.CaptionResult, error)
	FetchAICaption(ctx context.Context, videoID string) (*models.CaptionResult, error)
	FetchDownloadableVideo(ctx context.Context, videoID string) (*models.VideoDownload, error)
	SpeechState() transcribe.State
}

// HandlerOptions describes the deployment for health reporting.
type HandlerOptions struct {
	Version      string
	CacheEnabled bool
	// SpeechRequired holds readiness until the speech engine has been
	// built, for deployments that preload the model.
	SpeechRequired bool
}

// Handler serves the API routes.
type Handler struct {
	svc       Service
	opts      HandlerOptions
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(svc Service, opts HandlerOptions) *Handler {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	metrics.AppInfo.WithLabelValues(opts.Version, runtime.Version()).Set(1)
	return &Handler{
		svc:       svc,
		opts:      opts,
		startTime: time.Now(),
	}
}
