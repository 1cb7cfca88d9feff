// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package services adapts tubelens long-running components to suture.Service.

  - HTTPServerService: net/http server with graceful shutdown
  - EngineWarmupService: builds the speech engine once at startup
  - CacheGCService: periodic value log GC of the disk snapshot cache

Each type implements Serve(ctx) error and String() for suture's event log.
*/
package services
