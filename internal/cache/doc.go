// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package cache holds short-lived analysis snapshots so paging and re-sorting a
channel does not walk its catalog again.

# Overview

A snapshot is the channel info plus the bounded, hydrated sample in upstream
order (models.ChannelSnapshot). Display sorting and pagination are applied to
it per request, so one cached walk serves every page and sort field.

Two tiers:
  - Memory: an expirable LRU (hashicorp/golang-lru/v2/expirable) bounded by
    entry count and TTL
  - Disk (optional): a Badger store with per-entry TTL, enabled by
    CACHE_PATH, so snapshots survive a restart within their TTL

A memory miss falls through to disk; a disk hit is promoted to memory.

# Usage Example

	snapshots, err := cache.New(cache.Options{TTL: 10 * time.Minute, Capacity: 256})
	if err != nil {
	    return err
	}
	defer snapshots.Close()

	key := cache.GenerateKey("snapshot", map[string]any{"channel_id": id, "max_videos": 200})
	if snap, ok := snapshots.Get(key); ok {
	    return snap, nil
	}

# Maintenance

The disk tier needs periodic value log GC; RunGC is driven by a supervised
service at CACHE_GC_INTERVAL. Expired keys are dropped by Badger itself.

# Metrics

cache_hits_total, cache_misses_total, cache_entries and
cache_evictions_total carry a cache_type label of "memory" or "disk".
cache_gc_runs_total counts GC runs by result.
*/
package cache
