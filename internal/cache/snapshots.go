// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package cache

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/metrics"
	"github.com/tomtom215/tubelens/internal/models"
)

const (
	typeMemory = "memory"
	typeDisk   = "disk"
)

// Options configures a snapshot cache. An empty Path disables the disk tier.
type Options struct {
	TTL      time.Duration
	Capacity int
	Path     string

	// InMemoryDisk runs the disk tier on an in-memory Badger instance.
	// Used by tests.
	InMemoryDisk bool
}

// Snapshots is a two-tier cache of channel snapshots. It is safe for
// concurrent use. An entry never outlives the TTL of its original Set, even
// after it is promoted from disk back into memory.
type Snapshots struct {
	mem  *expirable.LRU[string, memEntry]
	disk *DiskStore
	ttl  time.Duration
	now  func() time.Time
}

// memEntry carries the deadline of the Set that produced it; the LRU's own
// TTL restarts on every Add.
type memEntry struct {
	snap      *models.ChannelSnapshot
	expiresAt time.Time
}

// New creates the cache, opening the disk tier when configured.
func New(opts Options) (*Snapshots, error) {
	if opts.Capacity < 1 {
		opts.Capacity = 256
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}

	s := &Snapshots{ttl: opts.TTL, now: time.Now}
	s.mem = expirable.NewLRU[string, memEntry](opts.Capacity, s.onEvict, opts.TTL)

	if opts.Path != "" || opts.InMemoryDisk {
		disk, err := OpenDiskStore(opts.Path, opts.InMemoryDisk)
		if err != nil {
			return nil, err
		}
		s.disk = disk
	}

	logging.Info().
		Dur("ttl", opts.TTL).
		Int("capacity", opts.Capacity).
		Bool("disk", s.disk != nil).
		Msg("Snapshot cache ready")
	return s, nil
}

func (s *Snapshots) onEvict(string, memEntry) {
	metrics.CacheEvictions.WithLabelValues(typeMemory).Inc()
}

// Get returns the snapshot stored under key.
func (s *Snapshots) Get(key string) (*models.ChannelSnapshot, bool) {
	now := s.now()
	if e, ok := s.mem.Get(key); ok {
		if now.Before(e.expiresAt) {
			metrics.CacheHits.WithLabelValues(typeMemory).Inc()
			return e.snap, true
		}
		s.mem.Remove(key)
		s.updateSize()
	}
	metrics.CacheMisses.WithLabelValues(typeMemory).Inc()

	if s.disk == nil {
		return nil, false
	}

	var snap models.ChannelSnapshot
	expiresAt, found, err := s.disk.GetWithExpiry(key, &snap)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Disk cache read failed")
	}
	if expiresAt.IsZero() {
		expiresAt = snap.FetchedAt.Add(s.ttl)
	}
	if !found || err != nil || !now.Before(expiresAt) {
		metrics.CacheMisses.WithLabelValues(typeDisk).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(typeDisk).Inc()
	s.mem.Add(key, memEntry{snap: &snap, expiresAt: expiresAt})
	s.updateSize()
	return &snap, true
}

// Set stores snap under key in every tier. Disk write failures are logged;
// the memory tier still serves the snapshot.
func (s *Snapshots) Set(key string, snap *models.ChannelSnapshot) {
	s.mem.Add(key, memEntry{snap: snap, expiresAt: s.now().Add(s.ttl)})
	s.updateSize()

	if s.disk == nil {
		return
	}
	if err := s.disk.Set(key, snap, s.ttl); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Disk cache write failed")
	}
}

// remove drops key from every tier.
func (s *Snapshots) remove(key string) {
	s.mem.Remove(key)
	s.updateSize()
	if s.disk != nil {
		if err := s.disk.Delete(key); err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("Disk cache delete failed")
		}
	}
}

// size returns the number of live entries in the memory tier.
func (s *Snapshots) size() int {
	return s.mem.Len()
}

// HasDisk reports whether the disk tier is enabled.
func (s *Snapshots) HasDisk() bool {
	return s.disk != nil
}

// RunGC runs one value log GC pass on the disk tier. It is a no-op without
// a disk tier.
func (s *Snapshots) RunGC() error {
	if s.disk == nil {
		return nil
	}
	_, err := s.disk.RunGC()
	return err
}

// Close releases the disk tier.
func (s *Snapshots) Close() error {
	s.mem.Purge()
	if s.disk == nil {
		return nil
	}
	return s.disk.Close()
}

func (s *Snapshots) updateSize() {
	metrics.CacheSize.WithLabelValues(typeMemory).Set(float64(s.mem.Len()))
}

// GenerateKey builds a compact, deterministic key from a namespace and any
// JSON-serializable parameters.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
