// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateYouTube,
		c.validateCatalog,
		c.validateRetry,
		c.validateTranscribe,
		c.validateCache,
		c.validateAnalytics,
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateYouTube validates the Data API settings
func (c *Config) validateYouTube() error {
	if strings.TrimSpace(c.YouTube.APIKey) == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if containsPlaceholder(c.YouTube.APIKey) {
		return fmt.Errorf("YOUTUBE_API_KEY contains a placeholder value")
	}
	if c.YouTube.Endpoint != "" {
		if err := validateEndpointURL(c.YouTube.Endpoint, "YOUTUBE_API_ENDPOINT"); err != nil {
			return err
		}
	}
	if c.YouTube.RequestsPerSecond < 0 {
		return fmt.Errorf("YOUTUBE_RPS must not be negative")
	}
	if c.YouTube.Burst < 0 {
		return fmt.Errorf("YOUTUBE_BURST must not be negative")
	}
	if c.YouTube.Timeout <= 0 {
		return fmt.Errorf("YOUTUBE_TIMEOUT must be positive")
	}
	return nil
}

// validateCatalog validates walk bounds
func (c *Config) validateCatalog() error {
	if c.Catalog.MaxVideos < 1 || c.Catalog.MaxVideos > maxCatalogVideos {
		return fmt.Errorf("CATALOG_MAX_VIDEOS must be between 1 and %d", maxCatalogVideos)
	}
	if c.Catalog.PageSize < 1 || c.Catalog.PageSize > maxDisplayPageSize {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be between 1 and %d", maxDisplayPageSize)
	}
	if c.Catalog.HydrateConcurrency < 1 || c.Catalog.HydrateConcurrency > maxHydrateConcurrency {
		return fmt.Errorf("CATALOG_HYDRATE_CONCURRENCY must be between 1 and %d", maxHydrateConcurrency)
	}
	return nil
}

// validateRetry validates retry policy bounds
func (c *Config) validateRetry() error {
	if c.Retry.Attempts < 1 || c.Retry.Attempts > maxRetryAttempts {
		return fmt.Errorf("RETRY_ATTEMPTS must be between 1 and %d", maxRetryAttempts)
	}
	if c.Retry.SpeechAttempts < 1 || c.Retry.SpeechAttempts > maxRetryAttempts {
		return fmt.Errorf("RETRY_SPEECH_ATTEMPTS must be between 1 and %d", maxRetryAttempts)
	}
	if c.Retry.Delay < 0 || c.Retry.Delay > maxRetryDelay {
		return fmt.Errorf("RETRY_DELAY must be between 0 and %v", maxRetryDelay)
	}
	return nil
}

// validateTranscribe validates speech engine settings (only if enabled)
func (c *Config) validateTranscribe() error {
	if !c.Transcribe.Enabled {
		return nil
	}
	if c.Transcribe.Binary == "" {
		return fmt.Errorf("WHISPER_BINARY is required when TRANSCRIBE_ENABLED=true")
	}
	if c.Transcribe.Model == "" {
		return fmt.Errorf("WHISPER_MODEL is required when TRANSCRIBE_ENABLED=true")
	}
	if c.Transcribe.Language == "" {
		return fmt.Errorf("WHISPER_LANGUAGE is required when TRANSCRIBE_ENABLED=true")
	}
	if c.Transcribe.BeamSize < 1 {
		return fmt.Errorf("WHISPER_BEAM_SIZE must be at least 1")
	}
	if c.Transcribe.Timeout <= 0 {
		return fmt.Errorf("WHISPER_TIMEOUT must be positive")
	}
	return nil
}

// validateCache validates snapshot cache settings (only if enabled)
func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be at least 1")
	}
	if c.Cache.Path != "" && c.Cache.GCInterval < time.Minute {
		return fmt.Errorf("CACHE_GC_INTERVAL must be at least 1m")
	}
	return nil
}

// validateAnalytics validates derived-figure settings
func (c *Config) validateAnalytics() error {
	if c.Analytics.CPMUSD < 0 {
		return fmt.Errorf("CPM_USD must not be negative")
	}
	return nil
}

// validateServer validates HTTP listener settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limiting bounds
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// Pipeline bounds
const (
	maxCatalogVideos      = 1000
	maxDisplayPageSize    = 200
	maxHydrateConcurrency = 32
	maxRetryAttempts      = 10
	maxRetryDelay         = time.Minute
)

// validateSecurity validates rate limiting and CORS settings
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects empty origins; "*" is allowed since the API carries
// no credentials.
func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("CORS_ORIGINS must not contain empty entries")
		}
	}
	return nil
}

// validateRateLimits validates rate limiting (only if enabled)
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR_KEY",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains a common placeholder pattern.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
