// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/tubelens/internal/api"
	"github.com/tomtom215/tubelens/internal/cache"
	"github.com/tomtom215/tubelens/internal/config"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/media"
	"github.com/tomtom215/tubelens/internal/retry"
	"github.com/tomtom215/tubelens/internal/service"
	"github.com/tomtom215/tubelens/internal/supervisor"
	"github.com/tomtom215/tubelens/internal/supervisor/services"
	"github.com/tomtom215/tubelens/internal/transcribe"
	"github.com/tomtom215/tubelens/internal/youtube"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Version:   version,
	})
	logging.Info().Str("version", version).Msg("Starting tubelens")

	retry.Configure(cfg.Retry.Attempts, cfg.Retry.SpeechAttempts, cfg.Retry.Delay)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := youtube.NewClient(ctx, &cfg.YouTube)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create YouTube client")
	}

	var (
		snapshots *cache.Snapshots
		snapCache service.SnapshotCache
	)
	if cfg.Cache.Enabled {
		snapshots, err = cache.New(cache.Options{
			TTL:      cfg.Cache.TTL,
			Capacity: cfg.Cache.Capacity,
			Path:     cfg.Cache.Path,
		})
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open snapshot cache")
		}
		defer func() {
			if err := snapshots.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing snapshot cache")
			}
		}()
		snapCache = snapshots
	} else {
		logging.Info().Msg("Snapshot cache disabled (CACHE_ENABLED=false)")
	}

	speech := transcribe.Disabled()
	if cfg.Transcribe.Enabled {
		speech = transcribe.NewAdapter(transcribe.WhisperFactory(&cfg.Transcribe), cfg.Transcribe.Language, "")
		logging.Info().
			Str("model", cfg.Transcribe.Model).
			Bool("preload", cfg.Transcribe.Preload).
			Msg("Speech recognition enabled")
	} else {
		logging.Info().Msg("Speech recognition disabled (TRANSCRIBE_ENABLED=false)")
	}

	svc := service.New(client, media.NewSource(nil), speech, snapCache, service.Options{
		MaxVideos:   cfg.Catalog.MaxVideos,
		PageSize:    cfg.Catalog.PageSize,
		Concurrency: cfg.Catalog.HydrateConcurrency,
		CPMUSD:      cfg.Analytics.CPMUSD,
	})

	handler := api.NewHandler(svc, api.HandlerOptions{
		Version:        version,
		CacheEnabled:   cfg.Cache.Enabled,
		SpeechRequired: cfg.Transcribe.Enabled && cfg.Transcribe.Preload,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	// WriteTimeout bounds the JSON endpoints; the download handler lifts it
	// per request.
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	if cfg.Transcribe.Enabled && cfg.Transcribe.Preload {
		tree.AddBackgroundService(services.NewEngineWarmupService(speech))
	}
	if snapshots != nil && snapshots.HasDisk() {
		tree.AddBackgroundService(services.NewCacheGCService(snapshots, cfg.Cache.GCInterval))
	}

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Tubelens stopped")
}
