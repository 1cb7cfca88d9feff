// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id1 := GenerateCorrelationID()
	id2 := GenerateCorrelationID()

	if len(id1) != 8 {
		t.Errorf("expected 8-character correlation ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique correlation IDs")
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	if id := GenerateRequestID(); len(id) != 36 {
		t.Errorf("expected 36-character request ID, got %d", len(id))
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || VideoIDFromContext(ctx) != "" || ChannelIDFromContext(ctx) != "" {
		t.Fatal("expected empty ids on a bare context")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithVideoID(ctx, "dQw4w9WgXcQ")
	ctx = ContextWithChannelID(ctx, "UCabc")
	ctx = ContextWithCorrelationID(ctx, "corr1234")

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
	if got := VideoIDFromContext(ctx); got != "dQw4w9WgXcQ" {
		t.Errorf("VideoIDFromContext() = %q, want dQw4w9WgXcQ", got)
	}
	if got := ChannelIDFromContext(ctx); got != "UCabc" {
		t.Errorf("ChannelIDFromContext() = %q, want UCabc", got)
	}
	if got := CorrelationIDFromContext(ctx); got != "corr1234" {
		t.Errorf("CorrelationIDFromContext() = %q, want corr1234", got)
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-42")
	ctx = ContextWithVideoID(ctx, "vid-1")

	Ctx(ctx).Info().Msg("caption resolved")

	output := buf.String()
	for _, want := range []string{`"request_id":"req-42"`, `"video_id":"vid-1"`, "caption resolved"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %s, got: %s", want, output)
		}
	}
	if strings.Contains(output, "channel_id") {
		t.Errorf("expected no channel_id field, got: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	logger := WithComponent("catalog")
	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"catalog"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
