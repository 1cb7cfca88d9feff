// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package config provides centralized configuration management for Tubelens.

Configuration is loaded with Koanf v2 in three layers: built-in defaults, an
optional YAML file, then environment variables. The merged result is
validated once at startup; an invalid configuration stops the process.

# Configuration Sources

  - Defaults: defaultConfig()
  - YAML file: $CONFIG_PATH, ./config.yaml, /etc/tubelens/config.yaml
  - Environment variables: mapped explicitly in envMappings; unknown
    variables are ignored

# Environment Variables

YouTube Data API (YouTubeConfig):
  - YOUTUBE_API_KEY: API key (required)
  - YOUTUBE_API_ENDPOINT: Base URL override (default: library default)
  - YOUTUBE_RPS: Client-side requests per second (default: 10)
  - YOUTUBE_BURST: Limiter burst (default: 5)
  - YOUTUBE_TIMEOUT: Per-call timeout (default: 15s)

Catalog (CatalogConfig):
  - CATALOG_MAX_VIDEOS: Walk cap (default: 200)
  - CATALOG_PAGE_SIZE: Videos per display page (default: 16)
  - CATALOG_HYDRATE_CONCURRENCY: Parallel details batches (default: 4)

Retry (RetryConfig):
  - RETRY_ATTEMPTS: Attempts for catalog, caption and download (default: 3)
  - RETRY_SPEECH_ATTEMPTS: Attempts for transcription (default: 2)
  - RETRY_DELAY: Fixed wait after a rate limit (default: 1s)

Speech engine (TranscribeConfig):
  - TRANSCRIBE_ENABLED: Enable AI captions (default: true)
  - WHISPER_BINARY: Executable (default: whisper)
  - WHISPER_MODEL: Model name (default: base)
  - WHISPER_MODEL_DIR: Model cache (default: /var/data/whisper_cache)
  - WHISPER_LANGUAGE: Spoken language (default: ko)
  - WHISPER_BEAM_SIZE: Beam size (default: 5)
  - WHISPER_PRELOAD: Load at startup (default: false)
  - WHISPER_TIMEOUT: Per-transcription limit (default: 10m)

Snapshot cache (CacheConfig):
  - CACHE_ENABLED: Cache analysis snapshots (default: true)
  - CACHE_TTL: Snapshot lifetime (default: 10m)
  - CACHE_CAPACITY: In-memory entries (default: 256)
  - CACHE_PATH: Badger directory; empty keeps the cache in memory
  - CACHE_GC_INTERVAL: Badger value log GC interval (default: 10m)

Analytics (AnalyticsConfig):
  - CPM_USD: Revenue per thousand views (default: 1.5)

HTTP Server (ServerConfig):
  - PORT or HTTP_PORT: Listen port (default: 10000)
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_TIMEOUT: Request timeout (default: 120s)

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS: Requests per window per client (default: 60)
  - RATE_LIMIT_WINDOW: Window length (default: 1m)
  - DISABLE_RATE_LIMIT: Disable request rate limiting (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	client, err := youtube.NewClient(ctx, &cfg.YouTube)
*/
package config
