// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package service implements the four user-facing operations of tubelens.

	AnalyzeChannel          channel stats, one display page, and a summary
	FetchCaption            human or ASR caption through the fallback order
	FetchAICaption          locally transcribed caption
	FetchDownloadableVideo  highest-resolution stream or a redirect target

Artifact fetches run inside the retry executor with their own policy. Channel
analysis is coalesced per channel and served from the snapshot cache while
the snapshot is fresh.
*/
package service
