// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package services

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/transcribe"
)

// EngineLoader builds the speech engine. *transcribe.Adapter implements it.
type EngineLoader interface {
	Engine(ctx context.Context) (transcribe.Engine, error)
}

// EngineWarmupService loads the speech engine once when the tree starts, so
// the first AI caption request does not pay for model loading. A load
// failure is sticky inside the loader and is not retried here.
type EngineWarmupService struct {
	loader EngineLoader
	name   string
}

// NewEngineWarmupService creates the warmup service.
func NewEngineWarmupService(loader EngineLoader) *EngineWarmupService {
	return &EngineWarmupService{loader: loader, name: "speech-engine-warmup"}
}

// Serve implements suture.Service. It always returns suture.ErrDoNotRestart;
// the outcome is visible through the loader's state.
func (s *EngineWarmupService) Serve(ctx context.Context) error {
	start := time.Now()
	if _, err := s.loader.Engine(ctx); err != nil {
		logging.Warn().Err(err).Msg("Speech engine warmup failed; AI captions disabled")
		return suture.ErrDoNotRestart
	}
	logging.Info().Dur("took", time.Since(start)).Msg("Speech engine warmed up")
	return suture.ErrDoNotRestart
}

func (s *EngineWarmupService) String() string {
	return s.name
}
