// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

// Package main is the entry point for the tubelens server.
//
// Tubelens analyzes the public catalog of a YouTube channel (views, likes,
// upload cadence, estimated revenue) and retrieves captions for single
// videos, falling back to local speech recognition when a video has no
// usable caption track.
//
// # Startup Order
//
//  1. Configuration: defaults, optional config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Retry policy: attempts and base delay for upstream calls
//  4. YouTube Data API client with rate limiting and a circuit breaker
//  5. Snapshot cache: in-memory LRU with an optional Badger disk tier
//  6. Speech adapter: the whisper CLI when TRANSCRIBE_ENABLED=true
//  7. Supervisor tree: HTTP server plus background services
//
// # Configuration
//
// Required:
//   - YOUTUBE_API_KEY: YouTube Data API v3 key
//
// Common options:
//   - PORT (default 10000), HTTP_HOST
//   - CATALOG_MAX_VIDEOS: cap on videos analyzed per channel (default 200)
//   - CPM_USD: revenue per thousand views (default 1.5)
//   - CACHE_ENABLED, CACHE_TTL, CACHE_PATH
//   - TRANSCRIBE_ENABLED, WHISPER_MODEL, WHISPER_PRELOAD
//   - LOG_LEVEL, LOG_FORMAT
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests before the process exits, and the snapshot cache is
// closed last.
//
// # Example Usage
//
//	export YOUTUBE_API_KEY=your-key
//	export TRANSCRIBE_ENABLED=true
//	export WHISPER_MODEL=small
//	./tubelens
//
//	curl 'localhost:10000/api/v1/analyze?url=https://www.youtube.com/@somechannel&sortBy=views'
package main
