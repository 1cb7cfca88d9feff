// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tubelens/internal/models"
	"github.com/tomtom215/tubelens/internal/subtitle"
)

// maxCaptionBytes bounds a timed-text response.
const maxCaptionBytes = 8 << 20

// timedText is the json3 caption format served at a track's base URL.
type timedText struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// CaptionText downloads track and renders it as SRT.
func (s *Source) CaptionText(ctx context.Context, track *models.CaptionTrack) (string, error) {
	u, err := json3URL(track.BaseURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build caption request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return "", classifyError("fetch caption", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError("fetch caption", resp.StatusCode,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
	if err != nil {
		return "", classifyError("read caption", err)
	}

	segments, err := decodeTimedText(body)
	if err != nil {
		return "", err
	}
	return subtitle.Serialize(segments), nil
}

func json3URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("caption track has no usable url")
	}
	q := u.Query()
	q.Set("fmt", "json3")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeTimedText converts json3 events into transcript segments. Events
// without text (window and style markers) are dropped.
func decodeTimedText(body []byte) ([]models.TranscriptSegment, error) {
	var tt timedText
	if err := json.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("decode timed text: %w", err)
	}

	segments := make([]models.TranscriptSegment, 0, len(tt.Events))
	for _, ev := range tt.Events {
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		start := float64(max(ev.StartMs, 0)) / 1000
		segments = append(segments, models.TranscriptSegment{
			Start: start,
			End:   start + float64(max(ev.DurationMs, 0))/1000,
			Text:  text,
		})
	}
	return segments, nil
}
