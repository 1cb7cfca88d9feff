// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package models defines the records that flow between the catalog walker, the
stats aggregator, the caption pipeline and the HTTP layer.

Records are plain structs with JSON tags in snake_case. They carry documented
defaults instead of optional pointers wherever the upstream may omit a field:

  - VideoRecord.DurationSeconds is 0 when the upstream duration is missing or
    cannot be parsed
  - VideoRecord.PublishedAt falls back to the hydration time when the upstream
    timestamp is invalid
  - counters (views, likes, comments) default to 0

Records are immutable once hydrated. The aggregator and the paginator work on
copies and never mutate the slice returned by the walker.
*/
package models
