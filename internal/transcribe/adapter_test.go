// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/models"
)

type fakeEngine struct {
	segments []models.TranscriptSegment
	err      error

	gotPath string
	gotLang string
	sawFile bool
}

func (f *fakeEngine) Transcribe(_ context.Context, path, lang string) ([]models.TranscriptSegment, error) {
	f.gotPath = path
	f.gotLang = lang
	_, err := os.Stat(path)
	f.sawFile = err == nil
	return f.segments, f.err
}

func writeAudio(ctx context.Context, dir string) (string, error) {
	path := filepath.Join(dir, "abc.m4a")
	return path, os.WriteFile(path, []byte("audio"), 0o600)
}

func TestAdapter_Transcribe(t *testing.T) {
	engine := &fakeEngine{segments: []models.TranscriptSegment{
		{Start: 0, End: 1.234, Text: " hi "},
		{Start: 1.5, End: 3, Text: "there"},
	}}
	a := NewAdapter(func(context.Context) (Engine, error) { return engine, nil }, "ko", t.TempDir())

	got, err := a.Transcribe(context.Background(), "abc", writeAudio)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	want := "1\n00:00:00,000 --> 00:00:01,234\nhi\n\n2\n00:00:01,500 --> 00:00:03,000\nthere"
	if got != want {
		t.Errorf("Transcribe() = %q, want %q", got, want)
	}
	if engine.gotLang != "ko" {
		t.Errorf("language = %q, want ko", engine.gotLang)
	}
	if !engine.sawFile {
		t.Error("engine did not see the fetched audio file")
	}
	if _, err := os.Stat(filepath.Dir(engine.gotPath)); !os.IsNotExist(err) {
		t.Errorf("scratch dir still exists after success: %v", err)
	}
	if a.State() != StateReady {
		t.Errorf("State() = %v, want ready", a.State())
	}
}

func TestAdapter_ScratchDirRemovedOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		engine *fakeEngine
		fetch  func(*string) AudioFetcher
	}{
		{
			name:   "engine error",
			engine: &fakeEngine{err: errors.New("decoder crashed")},
			fetch: func(dir *string) AudioFetcher {
				return func(ctx context.Context, d string) (string, error) {
					*dir = d
					return writeAudio(ctx, d)
				}
			},
		},
		{
			name:   "fetch error",
			engine: &fakeEngine{},
			fetch: func(dir *string) AudioFetcher {
				return func(_ context.Context, d string) (string, error) {
					*dir = d
					_ = os.WriteFile(filepath.Join(d, "partial.m4a"), []byte("a"), 0o600)
					return "", apperrors.ErrRateLimited
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(func(context.Context) (Engine, error) { return tt.engine, nil }, "ko", t.TempDir())

			var dir string
			if _, err := a.Transcribe(context.Background(), "abc", tt.fetch(&dir)); err == nil {
				t.Fatal("Transcribe() expected error")
			}
			if dir == "" {
				t.Fatal("fetcher was not called")
			}
			if _, err := os.Stat(dir); !os.IsNotExist(err) {
				t.Errorf("scratch dir %s still exists: %v", dir, err)
			}
		})
	}
}

func TestAdapter_FetchErrorPropagates(t *testing.T) {
	a := NewAdapter(func(context.Context) (Engine, error) { return &fakeEngine{}, nil }, "ko", t.TempDir())

	_, err := a.Transcribe(context.Background(), "abc", func(context.Context, string) (string, error) {
		return "", apperrors.ErrRateLimited
	})
	if !errors.Is(err, apperrors.ErrRateLimited) {
		t.Errorf("Transcribe() error = %v, want ErrRateLimited", err)
	}
}

func TestAdapter_StickyFailure(t *testing.T) {
	var calls atomic.Int32
	a := NewAdapter(func(context.Context) (Engine, error) {
		calls.Add(1)
		return nil, errors.New("model download failed")
	}, "ko", t.TempDir())

	if a.State() != StateUninitialized {
		t.Fatalf("State() = %v before first use, want uninitialized", a.State())
	}

	var fetched bool
	for i := 0; i < 3; i++ {
		_, err := a.Transcribe(context.Background(), "abc", func(context.Context, string) (string, error) {
			fetched = true
			return "", nil
		})
		if !errors.Is(err, apperrors.ErrUnavailable) {
			t.Fatalf("call %d: error = %v, want ErrUnavailable", i, err)
		}
	}

	if calls.Load() != 1 {
		t.Errorf("factory called %d times, want 1", calls.Load())
	}
	if fetched {
		t.Error("audio was fetched although the engine is unavailable")
	}
	if a.State() != StateUnavailable {
		t.Errorf("State() = %v, want unavailable", a.State())
	}
}

func TestAdapter_FactoryCalledOnceConcurrently(t *testing.T) {
	var calls atomic.Int32
	a := NewAdapter(func(context.Context) (Engine, error) {
		calls.Add(1)
		return &fakeEngine{}, nil
	}, "ko", "")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = a.Engine(context.Background())
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("factory called %d times, want 1", calls.Load())
	}
}

func TestAdapter_CancelledFirstCallerDoesNotPoison(t *testing.T) {
	a := NewAdapter(func(ctx context.Context) (Engine, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &fakeEngine{}, nil
	}, "ko", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Engine(ctx); err != nil {
		t.Fatalf("Engine() error = %v", err)
	}
	if a.State() != StateReady {
		t.Errorf("State() = %v, want ready", a.State())
	}
}

func TestDisabled(t *testing.T) {
	a := Disabled()
	if _, err := a.Engine(context.Background()); !errors.Is(err, apperrors.ErrUnavailable) {
		t.Errorf("Engine() error = %v, want ErrUnavailable", err)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateUninitialized: "uninitialized",
		StateReady:         "ready",
		StateUnavailable:   "unavailable",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
