// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tomtom215/tubelens/internal/apperrors"
)

// RefKind says how a channel reference must be resolved to a channel id.
type RefKind int

const (
	// RefChannelID is already a channel id.
	RefChannelID RefKind = iota
	// RefUsername is a legacy /user/ name, looked up with forUsername.
	RefUsername
	// RefHandle is an @handle, looked up with forHandle.
	RefHandle
)

// ChannelRef is a parsed channel URL.
type ChannelRef struct {
	Kind  RefKind
	Value string
}

var channelIDPattern = regexp.MustCompile(`^UC[0-9A-Za-z_-]{22}$`)

// IsChannelID reports whether s has the shape of a channel id.
func IsChannelID(s string) bool {
	return channelIDPattern.MatchString(s)
}

// ParseChannelURL extracts a channel reference from a URL or bare id.
func ParseChannelURL(raw string) (ChannelRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ChannelRef{}, fmt.Errorf("empty url: %w", apperrors.ErrInvalidChannelURL)
	}
	if IsChannelID(raw) {
		return ChannelRef{Kind: RefChannelID, Value: raw}, nil
	}
	if strings.HasPrefix(raw, "@") {
		return handleRef(raw)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ChannelRef{}, fmt.Errorf("parse %q: %w", raw, apperrors.ErrInvalidChannelURL)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "youtube.com" {
		return ChannelRef{}, fmt.Errorf("host %q is not youtube.com: %w", u.Hostname(), apperrors.ErrInvalidChannelURL)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	first := segments[0]
	switch {
	case strings.HasPrefix(first, "@"):
		return handleRef(first)
	case first == "channel" && len(segments) > 1 && IsChannelID(segments[1]):
		return ChannelRef{Kind: RefChannelID, Value: segments[1]}, nil
	case first == "user" && len(segments) > 1 && segments[1] != "":
		return ChannelRef{Kind: RefUsername, Value: segments[1]}, nil
	}
	return ChannelRef{}, fmt.Errorf("unrecognized channel path %q: %w", u.Path, apperrors.ErrInvalidChannelURL)
}

func handleRef(s string) (ChannelRef, error) {
	handle := strings.TrimPrefix(s, "@")
	if handle == "" {
		return ChannelRef{}, fmt.Errorf("empty handle: %w", apperrors.ErrInvalidChannelURL)
	}
	if decoded, err := url.PathUnescape(handle); err == nil {
		handle = decoded
	}
	return ChannelRef{Kind: RefHandle, Value: "@" + handle}, nil
}
