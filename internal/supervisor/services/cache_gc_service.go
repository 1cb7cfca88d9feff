// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package services

import (
	"context"
	"time"

	"github.com/tomtom215/tubelens/internal/logging"
)

// GarbageCollector runs one GC pass. *cache.Snapshots implements it.
type GarbageCollector interface {
	RunGC() error
}

// CacheGCService runs value log GC on the disk snapshot cache at a fixed
// interval. Failed passes are logged and retried on the next tick.
type CacheGCService struct {
	gc       GarbageCollector
	interval time.Duration
	name     string
}

// NewCacheGCService creates the service. A non-positive interval means
// 10 minutes.
func NewCacheGCService(gc GarbageCollector, interval time.Duration) *CacheGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheGCService{gc: gc, interval: interval, name: "cache-gc"}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log := logging.WithComponent(s.name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.gc.RunGC(); err != nil {
				log.Warn().Err(err).Msg("Cache GC pass failed")
				continue
			}
			log.Debug().Dur("took", time.Since(start)).Msg("Cache GC pass complete")
		}
	}
}

func (s *CacheGCService) String() string {
	return s.name
}
