// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

/*
Package transcribe produces AI captions with a local speech engine.

The engine is expensive to construct, so the Adapter builds it lazily, at most
once per process. If construction fails the failure is sticky: every later
call returns apperrors.ErrUnavailable without trying again, and the process
keeps serving every other endpoint.

Each transcription runs in its own temporary directory. The audio file and
any engine output live there and are removed on every exit path.

	adapter := transcribe.NewAdapter(transcribe.WhisperFactory(&cfg.Transcribe), "ko", "")
	srt, err := adapter.Transcribe(ctx, videoID, func(ctx context.Context, dir string) (string, error) {
	    return source.DownloadAudio(ctx, video, dir)
	})
*/
package transcribe
