// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package subtitle

import (
	"strconv"
	"strings"

	"github.com/tomtom215/tubelens/internal/models"
)

// Serialize renders segments as an SRT document. Segment text is trimmed of
// surrounding whitespace; empty input yields an empty string.
func Serialize(segments []models.TranscriptSegment) string {
	if len(segments) == 0 {
		return ""
	}

	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(Timecode(seg.Start))
		b.WriteString(" --> ")
		b.WriteString(Timecode(seg.End))
		b.WriteByte('\n')
		b.WriteString(strings.TrimSpace(seg.Text))
	}
	return b.String()
}
