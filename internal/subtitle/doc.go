// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

// Package subtitle renders transcript segments as SRT text and formats
// durations for display.
//
// Output is byte-exact: blocks are numbered from 1, separated by a blank line,
// and the document has no trailing newline. Timecodes truncate rather than
// round, so 1.2349 seconds renders as 00:00:01,234.
package subtitle
