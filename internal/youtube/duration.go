// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package youtube

import (
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO-8601 video duration such as "PT1H2M3S"
// into whole seconds. The second return is false for malformed input, in
// which case the duration is 0.
func ParseISODuration(s string) (int64, bool) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil || s == "PT" {
		return 0, false
	}

	var total int64
	for i, unit := range []int64{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, false
		}
		total += n * unit
	}
	return total, true
}
