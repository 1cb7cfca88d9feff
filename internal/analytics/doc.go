// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package analytics derives channel-level figures from a hydrated catalog sample.

Summaries are always computed over the full bounded sample returned by the
catalog walker, never over a display page. Display ordering and pagination are
separate, side-effect free operations that work on copies:

	summary := analytics.Summarize(records)
	sorted := analytics.SortForDisplay(records, models.SortByViews)
	page := analytics.Paginate(sorted, 2, analytics.DefaultPageSize)

Ratios guard against division by zero and never produce NaN or Inf.
*/
package analytics
