// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Upstreams:
//     - YouTube: Data API v3 key, endpoint, client-side rate limit
//     - Transcribe: whisper speech engine
//
//  2. Pipeline:
//     - Catalog: walk cap, display page size, hydration fan-out
//     - Retry: attempt bounds and delay of the retry policies
//     - Cache: analysis snapshot cache (memory and optional disk)
//     - Analytics: revenue estimate
//
//  3. Serving:
//     - Server: HTTP listener
//     - Security: rate limiting and CORS
//
//  4. Observability:
//     - Logging: level, format, caller
type Config struct {
	YouTube    YouTubeConfig    `koanf:"youtube"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Retry      RetryConfig      `koanf:"retry"`
	Transcribe TranscribeConfig `koanf:"transcribe"`
	Cache      CacheConfig      `koanf:"cache"`
	Analytics  AnalyticsConfig  `koanf:"analytics"`
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// YouTubeConfig holds YouTube Data API v3 settings.
//
// Environment Variables:
//   - YOUTUBE_API_KEY: API key (required)
//   - YOUTUBE_API_ENDPOINT: Override the API base URL (testing, proxies)
//   - YOUTUBE_RPS: Client-side request rate (0 disables the limiter)
//   - YOUTUBE_BURST: Token bucket burst
//   - YOUTUBE_TIMEOUT: Per-call timeout
type YouTubeConfig struct {
	APIKey            string        `koanf:"api_key"`
	Endpoint          string        `koanf:"endpoint"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	Timeout           time.Duration `koanf:"timeout"`
}

// CatalogConfig bounds a channel walk and its display.
type CatalogConfig struct {
	MaxVideos          int `koanf:"max_videos"`
	PageSize           int `koanf:"page_size"`
	HydrateConcurrency int `koanf:"hydrate_concurrency"`
}

// RetryConfig configures the retry policies. Attempts applies to the
// catalog, caption and download policies; SpeechAttempts to transcription.
type RetryConfig struct {
	Attempts       int           `koanf:"attempts"`
	SpeechAttempts int           `koanf:"speech_attempts"`
	Delay          time.Duration `koanf:"delay"`
}

// TranscribeConfig holds speech engine settings.
//
// Environment Variables:
//   - TRANSCRIBE_ENABLED: Enable AI captions (default: true)
//   - WHISPER_BINARY: whisper executable name or path
//   - WHISPER_MODEL: model name (tiny, base, small, ...)
//   - WHISPER_MODEL_DIR: persistent model cache
//   - WHISPER_PRELOAD: load the engine at startup instead of first use
type TranscribeConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Binary   string        `koanf:"binary"`
	Model    string        `koanf:"model"`
	ModelDir string        `koanf:"model_dir"`
	Language string        `koanf:"language"`
	BeamSize int           `koanf:"beam_size"`
	Preload  bool          `koanf:"preload"`
	Timeout  time.Duration `koanf:"timeout"`
}

// CacheConfig holds analysis snapshot cache settings. An empty Path keeps
// the cache in memory only.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	Capacity   int           `koanf:"capacity"`
	Path       string        `koanf:"path"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// AnalyticsConfig holds derived-figure settings.
type AnalyticsConfig struct {
	CPMUSD float64 `koanf:"cpm_usd"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds request rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
