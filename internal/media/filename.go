// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package media

import (
	"strings"
	"unicode"
)

// DefaultFilename is used when a title has no usable characters.
const DefaultFilename = "video.mp4"

// SanitizeFilename keeps letters, digits, spaces and hyphens of title, trims
// the result and appends ".mp4".
func SanitizeFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			return r
		}
		return -1
	}, title)

	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename
	}
	return name + ".mp4"
}
