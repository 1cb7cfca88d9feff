// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	kyt "github.com/kkdai/youtube/v2"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/captions"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/models"
)

// Video is the media view of one upload. It implements captions.TrackLookup.
type Video struct {
	ID     string
	Title  string
	Tracks []models.CaptionTrack

	raw *kyt.Video
}

var _ captions.TrackLookup = (*Video)(nil)

// Track returns the caption track matching selector, or nil when absent.
func (v *Video) Track(_ context.Context, selector string) (*models.CaptionTrack, error) {
	return captions.Find(v.Tracks, selector), nil
}

// Source fetches videos and streams through kkdai/youtube.
type Source struct {
	client *kyt.Client
	http   *http.Client
}

// NewSource creates a media source. A nil httpClient uses a client with a
// 60 second timeout for metadata and caption calls; streams are bounded by
// the request context only.
func NewSource(httpClient *http.Client) *Source {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	streamClient := &http.Client{Transport: httpClient.Transport}
	return &Source{
		client: &kyt.Client{HTTPClient: streamClient},
		http:   httpClient,
	}
}

// Video loads metadata and caption tracks of videoID.
func (s *Source) Video(ctx context.Context, videoID string) (*Video, error) {
	raw, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, classifyError("load video", err)
	}

	logging.Ctx(ctx).Debug().
		Str("video_id", raw.ID).
		Int("caption_tracks", len(raw.CaptionTracks)).
		Int("formats", len(raw.Formats)).
		Msg("Video metadata loaded")

	return &Video{
		ID:     raw.ID,
		Title:  raw.Title,
		Tracks: convertTracks(raw.CaptionTracks),
		raw:    raw,
	}, nil
}

func convertTracks(in []kyt.CaptionTrack) []models.CaptionTrack {
	out := make([]models.CaptionTrack, 0, len(in))
	for _, t := range in {
		out = append(out, models.CaptionTrack{
			LanguageCode: t.LanguageCode,
			Kind:         t.Kind,
			Name:         t.Name.SimpleText,
			BaseURL:      t.BaseURL,
		})
	}
	return out
}

// DownloadAudio writes the audio-only stream of video into dir and returns
// the file path. The caller owns dir and its cleanup.
func (s *Source) DownloadAudio(ctx context.Context, video *Video, dir string) (string, error) {
	format := pickAudio(video.raw.Formats)
	if format == nil {
		return "", fmt.Errorf("audio stream of %s: %w", video.ID, apperrors.ErrNotFound)
	}

	stream, _, err := s.client.GetStreamContext(ctx, video.raw, format)
	if err != nil {
		return "", classifyError("open audio stream", err)
	}
	defer stream.Close()

	path := filepath.Join(dir, video.ID+audioExtension(format.MimeType))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}

	n, copyErr := io.Copy(f, stream)
	if closeErr := f.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		return "", classifyError("download audio", copyErr)
	}

	logging.Ctx(ctx).Debug().
		Str("video_id", video.ID).
		Int64("bytes", n).
		Str("mime", format.MimeType).
		Msg("Audio stream downloaded")
	return path, nil
}

// OpenHighestResolution opens the tallest stream that carries both audio and
// mp4 video. The caller must close the returned reader.
func (s *Source) OpenHighestResolution(ctx context.Context, video *Video) (io.ReadCloser, int64, error) {
	format := pickHighestResolution(video.raw.Formats)
	if format == nil {
		return nil, 0, fmt.Errorf("muxed stream of %s: %w", video.ID, apperrors.ErrNotFound)
	}

	stream, size, err := s.client.GetStreamContext(ctx, video.raw, format)
	if err != nil {
		return nil, 0, classifyError("open video stream", err)
	}
	return stream, size, nil
}

// pickAudio prefers an mp4 audio-only stream and falls back to any audio.
func pickAudio(formats kyt.FormatList) *kyt.Format {
	for _, mime := range []string{"audio/mp4", "audio/"} {
		if list := formats.Type(mime); len(list) > 0 {
			return &list[0]
		}
	}
	return nil
}

// pickHighestResolution returns the muxed mp4 format with the greatest
// height; ties go to the higher bitrate.
func pickHighestResolution(formats kyt.FormatList) *kyt.Format {
	var best *kyt.Format
	list := formats.WithAudioChannels().Type("video/mp4")
	for i := range list {
		f := &list[i]
		if best == nil || f.Height > best.Height ||
			(f.Height == best.Height && f.Bitrate > best.Bitrate) {
			best = f
		}
	}
	return best
}

func audioExtension(mime string) string {
	switch {
	case strings.HasPrefix(mime, "audio/mp4"):
		return ".m4a"
	case strings.HasPrefix(mime, "audio/webm"):
		return ".webm"
	default:
		return ".audio"
	}
}

// classifyError maps kkdai and transport errors into the apperrors taxonomy.
func classifyError(op string, err error) error {
	var status kyt.ErrUnexpectedStatusCode
	if errors.As(err, &status) {
		return statusError(op, int(status), err)
	}
	return fmt.Errorf("%s: %w", op, logging.SafeErr(err))
}

func statusError(op string, code int, err error) error {
	switch code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrRateLimited, logging.SafeErr(err))
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrNotFound, logging.SafeErr(err))
	default:
		return fmt.Errorf("%s: %w", op, logging.SafeErr(err))
	}
}
