// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/metrics"
)

// gcDiscardRatio is the value log discard ratio passed to Badger GC.
const gcDiscardRatio = 0.5

// DiskStore is a JSON value store on Badger with per-entry TTL.
type DiskStore struct {
	db *badger.DB
}

// OpenDiskStore opens (or creates) a store at path. With inMemory set the
// store keeps nothing on disk and path is ignored.
func OpenDiskStore(path string, inMemory bool) (*DiskStore, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = badgerLogger{logging.WithComponent("badger")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open disk cache %q: %w", path, err)
	}
	return &DiskStore{db: db}, nil
}

// Get decodes the value under key into dst. It reports false when the key
// is absent or expired.
func (d *DiskStore) Get(key string, dst interface{}) (bool, error) {
	_, found, err := d.GetWithExpiry(key, dst)
	return found, err
}

// GetWithExpiry is Get that also returns when the entry expires. The zero
// time means the entry was stored without a TTL.
func (d *DiskStore) GetWithExpiry(key string, dst interface{}) (time.Time, bool, error) {
	var expiresAt time.Time
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		if exp := item.ExpiresAt(); exp > 0 {
			expiresAt = time.Unix(int64(exp), 0)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get %s: %w", key, err)
	}
	return expiresAt, true, nil
}

// Set encodes value and stores it under key for ttl.
func (d *DiskStore) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return d.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(ttl))
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (d *DiskStore) Delete(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// RunGC runs value log GC until a pass rewrites nothing. It reports whether
// any file was rewritten.
func (d *DiskStore) RunGC() (bool, error) {
	rewritten := false
	for {
		err := d.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			rewritten = true
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			if rewritten {
				metrics.CacheGCRuns.WithLabelValues("rewritten").Inc()
			} else {
				metrics.CacheGCRuns.WithLabelValues("noop").Inc()
			}
			return rewritten, nil
		default:
			metrics.CacheGCRuns.WithLabelValues("error").Inc()
			return rewritten, fmt.Errorf("value log gc: %w", err)
		}
	}
}

// Close closes the underlying database.
func (d *DiskStore) Close() error {
	return d.db.Close()
}

// badgerLogger routes Badger's logger through zerolog. Badger's info output
// is chatty, so it is logged at debug.
type badgerLogger struct {
	zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.Logger.Error().Msgf(trimNewline(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Logger.Warn().Msgf(trimNewline(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Logger.Debug().Msgf(trimNewline(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.Logger.Trace().Msgf(trimNewline(format), args...)
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}
