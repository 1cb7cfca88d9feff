// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	requestIDKey     contextKey = "request_id"
	videoIDKey       contextKey = "video_id"
	channelIDKey     contextKey = "channel_id"
	loggerKey        contextKey = "logger"
)

// GenerateCorrelationID returns a short random id for grouping related work.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// GenerateRequestID returns a full UUID for an HTTP request.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithCorrelationID returns a new context with the given correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID returns a context with a newly generated correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, correlationIDKey)
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// ContextWithVideoID tags the context with the video being processed.
func ContextWithVideoID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, videoIDKey, id)
}

// VideoIDFromContext returns the video ID or "".
func VideoIDFromContext(ctx context.Context) string {
	return stringValue(ctx, videoIDKey)
}

// ContextWithChannelID tags the context with the channel being analyzed.
func ContextWithChannelID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, channelIDKey, id)
}

// ChannelIDFromContext returns the channel ID or "".
func ChannelIDFromContext(ctx context.Context) string {
	return stringValue(ctx, channelIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if id, ok := ctx.Value(key).(string); ok {
		return id
	}
	return ""
}

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored in ctx, or the global logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger carrying every id stored in ctx.
//
//	logging.Ctx(ctx).Info().Msg("Caption resolved")
//	// {"level":"info","request_id":"...","video_id":"dQw4w9WgXcQ","message":"Caption resolved"}
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := CtxWith(ctx).Logger()
	return &logger
}

// CtxWith returns a logger context builder with the ids from ctx pre-populated.
func CtxWith(ctx context.Context) zerolog.Context {
	logger := LoggerFromContext(ctx)
	logCtx := logger.With()

	fields := []struct {
		name  string
		value string
	}{
		{"correlation_id", CorrelationIDFromContext(ctx)},
		{"request_id", RequestIDFromContext(ctx)},
		{"channel_id", ChannelIDFromContext(ctx)},
		{"video_id", VideoIDFromContext(ctx)},
	}
	for _, f := range fields {
		if f.value != "" {
			logCtx = logCtx.Str(f.name, f.value)
		}
	}
	return logCtx
}

// WithComponent creates a child logger with a component field.
//
//	log := logging.WithComponent("catalog")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
