// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package logging provides the process-wide zerolog logger for Tubelens.

Every package logs through this one logger so that output shares field names,
level filtering and format. The logger is usable before Init is called: it
starts with JSON output at info level on stderr.

# Quick Start

	logging.Init(logging.Config{Level: "debug", Format: "console"})

	logging.Info().Str("channel_id", id).Msg("Catalog walk started")
	logging.Err(err).Str("video_id", vid).Msg("Caption fetch failed")

# Request Scope

HTTP middleware stores a request ID in the context. Services log through Ctx so
the ID is attached automatically:

	logging.Ctx(ctx).Info().Int("videos", n).Msg("Analysis complete")

Domain identifiers can be attached the same way with ContextWithVideoID and
ContextWithChannelID.

# Secrets

The YouTube Data API key travels as a query parameter, so upstream error
messages may contain it. RedactURL and RedactError mask it before logging:

	logging.Warn().Str("error", logging.RedactError(err)).Msg("Upstream call failed")

# slog Bridge

Libraries that expect *slog.Logger (the suture supervisor event hook) receive
one from NewSlogLogger, which writes through zerolog.

# Configuration

Environment Variables (through internal/config):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line (default: false)
*/
package logging
