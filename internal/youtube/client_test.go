// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/config"
)

const (
	channelJSON = `{
  "items": [{
    "id": "UC_x5XG1OV2P6uZZ5FSM9Ttw",
    "snippet": {
      "title": "Google for Developers",
      "description": "Talks and tutorials",
      "publishedAt": "2007-08-23T00:34:43Z",
      "thumbnails": {"high": {"url": "https://yt3.example/high.jpg"}}
    },
    "statistics": {"subscriberCount": "2400000", "viewCount": "250000000", "videoCount": "6200"},
    "contentDetails": {"relatedPlaylists": {"uploads": "UU_x5XG1OV2P6uZZ5FSM9Ttw"}}
  }]
}`

	playlistPage1JSON = `{
  "nextPageToken": "PAGE2",
  "items": [
    {"contentDetails": {"videoId": "vid1"}},
    {"contentDetails": {"videoId": "vid2"}}
  ]
}`

	playlistPage2JSON = `{"items": [{"contentDetails": {"videoId": "vid3"}}]}`

	videosJSON = `{
  "items": [
    {
      "id": "vid2",
      "snippet": {"title": "Second", "publishedAt": "not-a-time", "thumbnails": {"medium": {"url": "https://i.example/2.jpg"}}},
      "statistics": {"viewCount": "20", "likeCount": "2", "commentCount": "1"},
      "contentDetails": {"duration": "garbage"}
    },
    {
      "id": "vid1",
      "snippet": {"title": "First", "publishedAt": "2024-03-01T12:00:00Z", "thumbnails": {"medium": {"url": "https://i.example/1.jpg"}}},
      "statistics": {"viewCount": "1000", "likeCount": "50", "commentCount": "7"},
      "contentDetails": {"duration": "PT1H5S"}
    }
  ]
}`

	quotaJSON = `{"error": {"code": 403, "message": "quota", "errors": [{"domain": "youtube.quota", "reason": "quotaExceeded", "message": "quota"}]}}`

	rateLimitJSON = `{"error": {"code": 429, "message": "slow down", "errors": [{"reason": "rateLimitExceeded", "message": "slow down"}]}}`
)

// newTestClient starts a fake Data API server backed by handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), &config.YouTubeConfig{
		APIKey:   "test-key",
		Endpoint: srv.URL,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	c.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), &config.YouTubeConfig{}); err == nil {
		t.Error("NewClient() without api key should fail")
	}
}

func TestClient_ChannelInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/youtube/v3/channels") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not sent, query = %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("id") != testChannelID {
			t.Errorf("id = %q, want %q", r.URL.Query().Get("id"), testChannelID)
		}
		writeJSON(w, http.StatusOK, channelJSON)
	})

	stats, err := c.ChannelInfo(context.Background(), testChannelID)
	if err != nil {
		t.Fatalf("ChannelInfo() error = %v", err)
	}

	if stats.Title != "Google for Developers" || stats.SubscriberCount != 2400000 || stats.VideoCount != 6200 {
		t.Errorf("ChannelInfo() = %+v", stats)
	}
	if stats.TotalViewCount != 250000000 {
		t.Errorf("TotalViewCount = %d, want 250000000", stats.TotalViewCount)
	}
	if stats.ProfileImageURL != "https://yt3.example/high.jpg" {
		t.Errorf("ProfileImageURL = %q", stats.ProfileImageURL)
	}
	wantCreated := time.Date(2007, 8, 23, 0, 0, 0, 0, time.UTC)
	if !stats.CreatedDate.Equal(wantCreated) {
		t.Errorf("CreatedDate = %v, want %v", stats.CreatedDate, wantCreated)
	}
}

func TestClient_UploadsPlaylist(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, channelJSON)
	})

	id, err := c.UploadsPlaylist(context.Background(), testChannelID)
	if err != nil {
		t.Fatalf("UploadsPlaylist() error = %v", err)
	}
	if id != "UU_x5XG1OV2P6uZZ5FSM9Ttw" {
		t.Errorf("UploadsPlaylist() = %q", id)
	}
}

func TestClient_ChannelInfo_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"items": []}`)
	})

	if _, err := c.ChannelInfo(context.Background(), testChannelID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("ChannelInfo() error = %v, want ErrNotFound", err)
	}
}

func TestClient_PlaylistItems_Paging(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("playlistId") != "UUabc" || q.Get("maxResults") != "50" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("pageToken") == "PAGE2" {
			writeJSON(w, http.StatusOK, playlistPage2JSON)
			return
		}
		writeJSON(w, http.StatusOK, playlistPage1JSON)
	})

	ids, next, err := c.PlaylistItems(context.Background(), "UUabc", "")
	if err != nil {
		t.Fatalf("PlaylistItems() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "vid1" || next != "PAGE2" {
		t.Errorf("page 1 = %v next %q", ids, next)
	}

	ids, next, err = c.PlaylistItems(context.Background(), "UUabc", next)
	if err != nil {
		t.Fatalf("PlaylistItems() page 2 error = %v", err)
	}
	if len(ids) != 1 || ids[0] != "vid3" || next != "" {
		t.Errorf("page 2 = %v next %q", ids, next)
	}
}

func TestClient_VideoDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := strings.Join(r.URL.Query()["id"], ","); got != "vid1,vid2,gone" {
			t.Errorf("id = %q, want vid1,vid2,gone", got)
		}
		writeJSON(w, http.StatusOK, videosJSON)
	})

	records, err := c.VideoDetails(context.Background(), []string{"vid1", "vid2", "gone"})
	if err != nil {
		t.Fatalf("VideoDetails() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("VideoDetails() returned %d records, want 2", len(records))
	}

	first := records[0]
	if first.ID != "vid1" || first.DurationSeconds != 3605 || first.ViewCount != 1000 || first.LikeCount != 50 || first.CommentCount != 7 {
		t.Errorf("records[0] = %+v", first)
	}
	if first.URL != "https://youtu.be/vid1" || first.ThumbnailURL != "https://i.example/1.jpg" {
		t.Errorf("records[0] urls = %q %q", first.URL, first.ThumbnailURL)
	}
	if !first.PublishedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("records[0].PublishedAt = %v", first.PublishedAt)
	}

	second := records[1]
	if second.ID != "vid2" {
		t.Errorf("records[1].ID = %q, want request order", second.ID)
	}
	if second.DurationSeconds != 0 {
		t.Errorf("malformed duration = %d, want 0", second.DurationSeconds)
	}
	if !second.PublishedAt.Equal(c.now()) {
		t.Errorf("malformed publishedAt = %v, want hydration time", second.PublishedAt)
	}
}

func TestClient_VideoDetails_BatchTooLarge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	ids := make([]string, MaxPageSize+1)
	if _, err := c.VideoDetails(context.Background(), ids); err == nil {
		t.Error("VideoDetails() with 51 ids should fail")
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"quota", http.StatusForbidden, quotaJSON, apperrors.ErrQuotaExceeded},
		{"rate limited", http.StatusTooManyRequests, rateLimitJSON, apperrors.ErrRateLimited},
		{"not found", http.StatusNotFound, `{"error": {"code": 404, "message": "playlist not found"}}`, apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, _, err := c.PlaylistItems(context.Background(), "UUabc", "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("PlaylistItems() error = %v, want %v", err, tt.wantErr)
			}
			if strings.Contains(err.Error(), "test-key") {
				t.Errorf("error leaks api key: %v", err)
			}
		})
	}
}

func TestClient_ResolveChannelID(t *testing.T) {
	var lookups atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		q := r.URL.Query()
		switch {
		case q.Get("forHandle") == "@GoogleDevelopers":
			writeJSON(w, http.StatusOK, `{"items": [{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw"}]}`)
		case q.Get("forUsername") == "GoogleDevelopers":
			writeJSON(w, http.StatusOK, `{"items": [{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw"}]}`)
		default:
			writeJSON(w, http.StatusOK, `{"items": []}`)
		}
	})
	ctx := context.Background()

	for _, in := range []string{
		"https://www.youtube.com/@GoogleDevelopers",
		"https://www.youtube.com/user/GoogleDevelopers",
	} {
		id, err := c.ResolveChannelID(ctx, in)
		if err != nil || id != testChannelID {
			t.Errorf("ResolveChannelID(%q) = %q, %v", in, id, err)
		}
	}

	before := lookups.Load()
	if id, err := c.ResolveChannelID(ctx, "https://www.youtube.com/channel/"+testChannelID); err != nil || id != testChannelID {
		t.Errorf("ResolveChannelID(channel url) = %q, %v", id, err)
	}
	if lookups.Load() != before {
		t.Error("channel url should resolve without an API call")
	}

	if _, err := c.ResolveChannelID(ctx, "https://www.youtube.com/@nobody"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown handle error = %v, want ErrNotFound", err)
	}
	if _, err := c.ResolveChannelID(ctx, "https://example.com"); !errors.Is(err, apperrors.ErrInvalidChannelURL) {
		t.Errorf("bad url error = %v, want ErrInvalidChannelURL", err)
	}
}
