// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/media"
	"github.com/tomtom215/tubelens/internal/models"
	"github.com/tomtom215/tubelens/internal/retry"
	"github.com/tomtom215/tubelens/internal/transcribe"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeCatalog serves a channel with total uploads, newest first.
type fakeCatalog struct {
	total   int
	infoErr error
	gate    chan struct{}

	infoCalls    atomic.Int32
	uploadsCalls atomic.Int32
}

func (f *fakeCatalog) ResolveChannelID(_ context.Context, url string) (string, error) {
	if !strings.Contains(url, "youtube.com") {
		return "", fmt.Errorf("%q: %w", url, apperrors.ErrInvalidChannelURL)
	}
	return "UCfake", nil
}

func (f *fakeCatalog) ChannelInfo(_ context.Context, channelID string) (models.ChannelStats, error) {
	f.infoCalls.Add(1)
	if f.infoErr != nil {
		return models.ChannelStats{}, f.infoErr
	}
	return models.ChannelStats{ID: channelID, Title: "Fake Channel", VideoCount: int64(f.total)}, nil
}

func (f *fakeCatalog) UploadsPlaylist(context.Context, string) (string, error) {
	f.uploadsCalls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return "UUfake", nil
}

func (f *fakeCatalog) PlaylistItems(_ context.Context, _, pageToken string) ([]string, string, error) {
	start := 0
	if pageToken != "" {
		start, _ = strconv.Atoi(pageToken)
	}
	end := min(start+50, f.total)
	ids := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		ids = append(ids, "v"+strconv.Itoa(i))
	}
	next := ""
	if end < f.total {
		next = strconv.Itoa(end)
	}
	return ids, next, nil
}

func (f *fakeCatalog) VideoDetails(_ context.Context, ids []string) ([]models.VideoRecord, error) {
	out := make([]models.VideoRecord, 0, len(ids))
	for _, id := range ids {
		n, _ := strconv.Atoi(strings.TrimPrefix(id, "v"))
		out = append(out, models.VideoRecord{
			ID:              id,
			Title:           "Video " + id,
			URL:             models.CanonicalVideoURL(id),
			PublishedAt:     epoch.AddDate(0, 0, -n),
			ViewCount:       int64(1000 * (n + 1)),
			LikeCount:       int64(10 * (n + 1)),
			CommentCount:    int64(n),
			DurationSeconds: 60,
		})
	}
	return out, nil
}

type fakeMedia struct {
	tracks      []models.CaptionTrack
	videoErrs   []error
	openErr     error
	videoCalls  atomic.Int32
	audioCalls  atomic.Int32
	captionSeen *models.CaptionTrack
}

func (f *fakeMedia) Video(_ context.Context, id string) (*media.Video, error) {
	n := int(f.videoCalls.Add(1))
	if n <= len(f.videoErrs) && f.videoErrs[n-1] != nil {
		return nil, f.videoErrs[n-1]
	}
	return &media.Video{ID: id, Title: "Title: " + id, Tracks: f.tracks}, nil
}

func (f *fakeMedia) CaptionText(_ context.Context, track *models.CaptionTrack) (string, error) {
	f.captionSeen = track
	return "1\n00:00:00,000 --> 00:00:01,000\n" + track.LanguageCode, nil
}

func (f *fakeMedia) DownloadAudio(_ context.Context, video *media.Video, dir string) (string, error) {
	f.audioCalls.Add(1)
	return dir + "/" + video.ID + ".m4a", nil
}

func (f *fakeMedia) OpenHighestResolution(context.Context, *media.Video) (io.ReadCloser, int64, error) {
	if f.openErr != nil {
		return nil, 0, f.openErr
	}
	return io.NopCloser(strings.NewReader("mp4data")), 7, nil
}

type mapCache struct {
	mu sync.Mutex
	m  map[string]*models.ChannelSnapshot
}

func newMapCache() *mapCache {
	return &mapCache{m: make(map[string]*models.ChannelSnapshot)}
}

func (c *mapCache) Get(key string) (*models.ChannelSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.m[key]
	return s, ok
}

func (c *mapCache) Set(key string, snap *models.ChannelSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = snap
}

type stubEngine struct{}

func (stubEngine) Transcribe(context.Context, string, string) ([]models.TranscriptSegment, error) {
	return []models.TranscriptSegment{{Start: 0, End: 1.5, Text: "안녕하세요"}}, nil
}

func noSleep(t *testing.T) {
	t.Helper()
	orig := retry.Sleep
	retry.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	t.Cleanup(func() { retry.Sleep = orig })
}

const channelURL = "https://www.youtube.com/@fake"

func TestAnalyzeChannel_PageAndSummary(t *testing.T) {
	noSleep(t)
	cat := &fakeCatalog{total: 20}
	svc := New(cat, &fakeMedia{}, nil, nil, Options{})

	got, err := svc.AnalyzeChannel(context.Background(), channelURL, "views", 2)
	if err != nil {
		t.Fatalf("AnalyzeChannel() error = %v", err)
	}

	if got.Channel.Title != "Fake Channel" {
		t.Errorf("Channel.Title = %q", got.Channel.Title)
	}
	if got.SortBy != models.SortByViews {
		t.Errorf("SortBy = %q, want views", got.SortBy)
	}
	if got.Page.TotalPages != 2 || len(got.Page.Items) != 4 || got.Page.PageNumber != 2 {
		t.Errorf("page = %d/%d with %d items, want 2/2 with 4", got.Page.PageNumber, got.Page.TotalPages, len(got.Page.Items))
	}
	// Sorted by views descending, page 2 starts at the 17th most viewed.
	if got.Page.Items[0].ID != "v3" {
		t.Errorf("first item on page 2 = %s, want v3", got.Page.Items[0].ID)
	}
	if got.Summary == nil || got.Summary.SampleSize != 20 {
		t.Fatalf("Summary = %+v, want sample of 20", got.Summary)
	}
	if got.Summary.Top5ByViews[0].ID != "v19" {
		t.Errorf("top video = %s, want v19", got.Summary.Top5ByViews[0].ID)
	}
	if got.Page.Items[0].EstimatedRevenueUSD != 6 {
		t.Errorf("item revenue = %v, want 6", got.Page.Items[0].EstimatedRevenueUSD)
	}
	if got.Cached {
		t.Error("first analysis reported Cached")
	}
}

func TestAnalyzeChannel_DefaultsToPublishedOrder(t *testing.T) {
	svc := New(&fakeCatalog{total: 3}, &fakeMedia{}, nil, nil, Options{})

	got, err := svc.AnalyzeChannel(context.Background(), channelURL, "", 1)
	if err != nil {
		t.Fatalf("AnalyzeChannel() error = %v", err)
	}
	if got.SortBy != models.SortByPublished {
		t.Errorf("SortBy = %q, want published", got.SortBy)
	}
	if got.Page.Items[0].ID != "v0" {
		t.Errorf("newest first = %s, want v0", got.Page.Items[0].ID)
	}
}

func TestAnalyzeChannel_ServesFromCache(t *testing.T) {
	cat := &fakeCatalog{total: 5}
	svc := New(cat, &fakeMedia{}, nil, newMapCache(), Options{})
	ctx := context.Background()

	if _, err := svc.AnalyzeChannel(ctx, channelURL, "views", 1); err != nil {
		t.Fatalf("first AnalyzeChannel() error = %v", err)
	}
	got, err := svc.AnalyzeChannel(ctx, channelURL, "likes", 1)
	if err != nil {
		t.Fatalf("second AnalyzeChannel() error = %v", err)
	}

	if !got.Cached {
		t.Error("second analysis not served from cache")
	}
	if got.SortBy != models.SortByLikes {
		t.Errorf("SortBy = %q, want likes", got.SortBy)
	}
	if n := cat.uploadsCalls.Load(); n != 1 {
		t.Errorf("catalog walked %d times, want 1", n)
	}
}

func TestAnalyzeChannel_CoalescesConcurrentLoads(t *testing.T) {
	cat := &fakeCatalog{total: 5, gate: make(chan struct{})}
	svc := New(cat, &fakeMedia{}, nil, nil, Options{})

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AnalyzeChannel(context.Background(), channelURL, "", 1)
			errs <- err
		}()
	}

	for cat.uploadsCalls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(cat.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("AnalyzeChannel() error = %v", err)
		}
	}
	if n := cat.uploadsCalls.Load(); n != 1 {
		t.Errorf("catalog walked %d times, want 1", n)
	}
}

func TestAnalyzeChannel_EmptyChannel(t *testing.T) {
	svc := New(&fakeCatalog{total: 0}, &fakeMedia{}, nil, nil, Options{})

	got, err := svc.AnalyzeChannel(context.Background(), channelURL, "views", 3)
	if err != nil {
		t.Fatalf("AnalyzeChannel() error = %v", err)
	}
	if got.Summary != nil {
		t.Errorf("Summary = %+v, want nil", got.Summary)
	}
	if len(got.Page.Items) != 0 || got.Page.TotalPages != 1 || got.Page.PageNumber != 1 {
		t.Errorf("page = %+v, want one empty page", got.Page)
	}
}

func TestAnalyzeChannel_InvalidURL(t *testing.T) {
	svc := New(&fakeCatalog{}, &fakeMedia{}, nil, nil, Options{})

	for _, url := range []string{"", "   ", "https://example.com/x"} {
		if _, err := svc.AnalyzeChannel(context.Background(), url, "", 1); !errors.Is(err, apperrors.ErrInvalidChannelURL) {
			t.Errorf("AnalyzeChannel(%q) error = %v, want ErrInvalidChannelURL", url, err)
		}
	}
}

func TestAnalyzeChannel_ChannelInfoThrottledIsQuota(t *testing.T) {
	noSleep(t)
	cat := &fakeCatalog{total: 5, infoErr: apperrors.ErrRateLimited}
	svc := New(cat, &fakeMedia{}, nil, nil, Options{})

	_, err := svc.AnalyzeChannel(context.Background(), channelURL, "", 1)
	if !errors.Is(err, apperrors.ErrQuotaExceeded) {
		t.Fatalf("error = %v, want ErrQuotaExceeded", err)
	}
	if n := cat.infoCalls.Load(); n != int32(retry.Catalog.MaxAttempts) {
		t.Errorf("channel info calls = %d, want %d", n, retry.Catalog.MaxAttempts)
	}
	if n := cat.uploadsCalls.Load(); n != 0 {
		t.Errorf("walk started after channel info failure")
	}
}

func TestAnalyzeChannel_ChannelInfoNotFound(t *testing.T) {
	cat := &fakeCatalog{infoErr: fmt.Errorf("channel: %w", apperrors.ErrNotFound)}
	svc := New(cat, &fakeMedia{}, nil, nil, Options{})

	_, err := svc.AnalyzeChannel(context.Background(), channelURL, "", 1)
	if !errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrQuotaExceeded) {
		t.Errorf("error = %v, want plain ErrNotFound", err)
	}
}

func TestFetchCaption_FallsBackToEnglish(t *testing.T) {
	src := &fakeMedia{tracks: []models.CaptionTrack{
		{LanguageCode: "en", Kind: models.CaptionKindASR},
		{LanguageCode: "en"},
	}}
	svc := New(&fakeCatalog{}, src, nil, nil, Options{})

	got, err := svc.FetchCaption(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FetchCaption() error = %v", err)
	}
	if got.Language != "en" || src.captionSeen.IsAutoGenerated() {
		t.Errorf("Language = %q, want manual en", got.Language)
	}
	if got.Title != "Title: abc" || got.VideoID != "abc" {
		t.Errorf("result = %+v", got)
	}
}

func TestFetchCaption_AutoGeneratedSelector(t *testing.T) {
	src := &fakeMedia{tracks: []models.CaptionTrack{{LanguageCode: "en", Kind: models.CaptionKindASR}}}
	svc := New(&fakeCatalog{}, src, nil, nil, Options{})

	got, err := svc.FetchCaption(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FetchCaption() error = %v", err)
	}
	if got.Language != "a.en" {
		t.Errorf("Language = %q, want a.en", got.Language)
	}
}

func TestFetchCaption_NoTrack(t *testing.T) {
	src := &fakeMedia{tracks: []models.CaptionTrack{{LanguageCode: "fr"}}}
	svc := New(&fakeCatalog{}, src, nil, nil, Options{})

	_, err := svc.FetchCaption(context.Background(), "abc")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if n := src.videoCalls.Load(); n != 1 {
		t.Errorf("video loads = %d, want 1 (not found is not retried)", n)
	}
}

func TestFetchCaption_RetriesThrottling(t *testing.T) {
	noSleep(t)
	src := &fakeMedia{
		tracks:    []models.CaptionTrack{{LanguageCode: "ko"}},
		videoErrs: []error{apperrors.ErrRateLimited, apperrors.ErrRateLimited},
	}
	svc := New(&fakeCatalog{}, src, nil, nil, Options{})

	got, err := svc.FetchCaption(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FetchCaption() error = %v", err)
	}
	if got.Language != "ko" {
		t.Errorf("Language = %q, want ko", got.Language)
	}
	if n := src.videoCalls.Load(); n != 3 {
		t.Errorf("video loads = %d, want 3", n)
	}
}

func TestFetchCaption_Exhausted(t *testing.T) {
	noSleep(t)
	src := &fakeMedia{videoErrs: []error{apperrors.ErrRateLimited, apperrors.ErrRateLimited, apperrors.ErrRateLimited}}
	svc := New(&fakeCatalog{}, src, nil, nil, Options{})

	_, err := svc.FetchCaption(context.Background(), "abc")
	if !errors.Is(err, apperrors.ErrExhausted) {
		t.Errorf("error = %v, want ErrExhausted", err)
	}
}

func TestFetchAICaption_Disabled(t *testing.T) {
	src := &fakeMedia{}
	svc := New(&fakeCatalog{}, src, transcribe.Disabled(), nil, Options{})

	_, err := svc.FetchAICaption(context.Background(), "abc")
	if !errors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if src.videoCalls.Load() != 0 || src.audioCalls.Load() != 0 {
		t.Error("media touched while the engine is unavailable")
	}
	if svc.SpeechState() != transcribe.StateUnavailable {
		t.Errorf("SpeechState() = %v, want unavailable", svc.SpeechState())
	}
}

func TestFetchAICaption_PrefixesTitle(t *testing.T) {
	src := &fakeMedia{}
	speech := transcribe.NewAdapter(func(context.Context) (transcribe.Engine, error) {
		return stubEngine{}, nil
	}, "ko", t.TempDir())
	svc := New(&fakeCatalog{}, src, speech, nil, Options{})

	got, err := svc.FetchAICaption(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FetchAICaption() error = %v", err)
	}
	if got.Title != "[AI] Title: abc" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Language != "ko" {
		t.Errorf("Language = %q, want ko", got.Language)
	}
	want := "1\n00:00:00,000 --> 00:00:01,500\n안녕하세요"
	if got.SubtitleText != want {
		t.Errorf("SubtitleText = %q, want %q", got.SubtitleText, want)
	}
	if src.audioCalls.Load() != 1 {
		t.Errorf("audio downloads = %d, want 1", src.audioCalls.Load())
	}
}

func TestFetchDownloadableVideo_Streams(t *testing.T) {
	svc := New(&fakeCatalog{}, &fakeMedia{}, nil, nil, Options{})

	got, err := svc.FetchDownloadableVideo(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FetchDownloadableVideo() error = %v", err)
	}
	defer got.Body.Close()

	if got.IsRedirect() {
		t.Fatal("successful download reported as redirect")
	}
	if got.Filename != "Title abc.mp4" || got.ContentType != "video/mp4" || got.Size != 7 {
		t.Errorf("download = %+v", got)
	}
	body, _ := io.ReadAll(got.Body)
	if string(body) != "mp4data" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchDownloadableVideo_FallsBackToPage(t *testing.T) {
	noSleep(t)
	src := &fakeMedia{openErr: fmt.Errorf("no progressive format: %w", apperrors.ErrNotFound)}
	svc := New(&fakeCatalog{}, src, nil, nil, Options{})

	got, err := svc.FetchDownloadableVideo(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected an error alongside the fallback")
	}
	if got == nil || !got.IsRedirect() {
		t.Fatalf("download = %+v, want redirect", got)
	}
	if got.FallbackURL != "https://youtu.be/abc" {
		t.Errorf("FallbackURL = %q", got.FallbackURL)
	}
}
