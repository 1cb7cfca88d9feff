// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Timecode renders seconds as HH:MM:SS,mmm. Negative input renders as zero.
func Timecode(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	// The epsilon absorbs float error such as 1.001*1000 = 1000.9999.
	total := int64(math.Floor(seconds*1000 + 1e-6))
	h := total / 3_600_000
	m := total / 60_000 % 60
	s := total / 1000 % 60
	ms := total % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// DurationPhrase formats whole seconds as a Korean duration phrase such as
// "1시간 0분 5초". Minutes are always shown once hours are. Zero or negative
// durations render as "N/A".
func DurationPhrase(seconds int) string {
	if seconds <= 0 {
		return "N/A"
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, strconv.Itoa(h)+"시간")
	}
	if m > 0 || h > 0 {
		parts = append(parts, strconv.Itoa(m)+"분")
	}
	if s > 0 || len(parts) == 0 {
		parts = append(parts, strconv.Itoa(s)+"초")
	}
	return strings.Join(parts, " ")
}
