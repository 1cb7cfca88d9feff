// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package cache

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := OpenDiskStore("", true)
	if err != nil {
		t.Fatalf("OpenDiskStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDiskStore_SetGetDelete(t *testing.T) {
	store := openTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := store.Set("k", payload{Name: "x", Count: 3}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	found, err := store.Get("k", &got)
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v", found, err)
	}
	if got.Name != "x" || got.Count != 3 {
		t.Errorf("Get() decoded %+v", got)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if found, _ := store.Get("k", &got); found {
		t.Error("Get() found a deleted key")
	}
	if err := store.Delete("never-set"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestDiskStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	var v map[string]any
	found, err := store.Get("absent", &v)
	if err != nil || found {
		t.Errorf("Get(absent) = %v, %v; want false, nil", found, err)
	}
}

func TestDiskStore_RunGCInMemory(t *testing.T) {
	store := openTestStore(t)

	rewritten, err := store.RunGC()
	if err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
	if rewritten {
		t.Error("RunGC() rewrote files in memory mode")
	}
}

func TestTrimNewline(t *testing.T) {
	if got := trimNewline("compaction done\n"); got != "compaction done" {
		t.Errorf("trimNewline() = %q", got)
	}
	if got := trimNewline(""); got != "" {
		t.Errorf("trimNewline(\"\") = %q", got)
	}
}
