// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tubelens/config.yaml",
	"/etc/tubelens/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		YouTube: YouTubeConfig{
			APIKey:            "",
			Endpoint:          "", // library default
			RequestsPerSecond: 10,
			Burst:             5,
			Timeout:           15 * time.Second,
		},
		Catalog: CatalogConfig{
			MaxVideos:          200,
			PageSize:           16,
			HydrateConcurrency: 4,
		},
		Retry: RetryConfig{
			Attempts:       3,
			SpeechAttempts: 2,
			Delay:          time.Second,
		},
		Transcribe: TranscribeConfig{
			Enabled:  true,
			Binary:   "whisper",
			Model:    "base",
			ModelDir: "/var/data/whisper_cache",
			Language: "ko",
			BeamSize: 5,
			Preload:  false,
			Timeout:  10 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			Capacity:   256,
			Path:       "", // memory only
			GCInterval: 10 * time.Minute,
		},
		Analytics: AnalyticsConfig{
			CPMUSD: 1.5,
		},
		Server: ServerConfig{
			Port:    10000,
			Host:    "0.0.0.0",
			Timeout: 120 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// YouTube Data API
	"youtube_api_key":      "youtube.api_key",
	"youtube_api_endpoint": "youtube.endpoint",
	"youtube_rps":          "youtube.requests_per_second",
	"youtube_burst":        "youtube.burst",
	"youtube_timeout":      "youtube.timeout",

	// Catalog walk and display
	"catalog_max_videos":          "catalog.max_videos",
	"catalog_page_size":           "catalog.page_size",
	"catalog_hydrate_concurrency": "catalog.hydrate_concurrency",

	// Retry policies
	"retry_attempts":        "retry.attempts",
	"retry_speech_attempts": "retry.speech_attempts",
	"retry_delay":           "retry.delay",

	// Speech engine
	"transcribe_enabled": "transcribe.enabled",
	"whisper_binary":     "transcribe.binary",
	"whisper_model":      "transcribe.model",
	"whisper_model_dir":  "transcribe.model_dir",
	"whisper_language":   "transcribe.language",
	"whisper_beam_size":  "transcribe.beam_size",
	"whisper_preload":    "transcribe.preload",
	"whisper_timeout":    "transcribe.timeout",

	// Snapshot cache
	"cache_enabled":     "cache.enabled",
	"cache_ttl":         "cache.ttl",
	"cache_capacity":    "cache.capacity",
	"cache_path":        "cache.path",
	"cache_gc_interval": "cache.gc_interval",

	"cpm_usd": "analytics.cpm_usd",

	// Server mappings
	"port":         "server.port",
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, which keeps unrelated
// environment out of the configuration.
//
// Examples:
//   - YOUTUBE_API_KEY -> youtube.api_key
//   - WHISPER_MODEL -> transcribe.model
//   - PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
