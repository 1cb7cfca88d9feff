// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package api

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/models"
)

// DownloadVideo handles GET /api/v1/videos/{videoID}/download. It streams
// the video as an attachment, or redirects to the watch page when the
// stream cannot be opened.
func (h *Handler) DownloadVideo(w http.ResponseWriter, r *http.Request) {
	req := parseVideoRequest(r)
	if !validateRequest(NewResponseWriter(w, r), &req) {
		return
	}

	download, err := h.svc.FetchDownloadableVideo(r.Context(), req.VideoID)
	if err != nil || download == nil || download.Body == nil {
		target := models.CanonicalVideoURL(req.VideoID)
		if download != nil && download.FallbackURL != "" {
			target = download.FallbackURL
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	defer download.Body.Close()

	// Streams outlive the server write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Write deadline not adjustable")
	}

	header := w.Header()
	header.Set("Content-Type", download.ContentType)
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": download.Filename,
	}))
	if download.Size > 0 {
		header.Set("Content-Length", strconv.FormatInt(download.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	written, err := io.Copy(w, download.Body)
	if err != nil {
		logging.Ctx(r.Context()).Warn().
			Err(err).
			Int64("written", written).
			Msg("Video stream interrupted")
		return
	}
	logging.Ctx(r.Context()).Debug().Int64("written", written).Msg("Video streamed")
}
