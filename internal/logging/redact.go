// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package logging

import (
	"net/url"
	"regexp"
)

const redacted = "REDACTED"

// secretParams are query parameters whose values never reach the logs.
var secretParams = []string{"key", "access_token", "sig", "signature"}

var secretParamPattern = regexp.MustCompile(`([?&](?:key|access_token|sig|signature)=)[^&\s"']+`)

// RedactURL masks credential query parameters in a URL string.
// Unparseable input is scrubbed with a pattern match instead.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return secretParamPattern.ReplaceAllString(raw, "${1}"+redacted)
	}

	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, redacted)
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RedactError returns err's message with credential parameters masked.
func RedactError(err error) string {
	if err == nil {
		return ""
	}
	return secretParamPattern.ReplaceAllString(err.Error(), "${1}"+redacted)
}

// SafeErr wraps err so its message is redacted when logged with .Err().
func SafeErr(err error) error {
	if err == nil {
		return nil
	}
	return &redactedError{err: err}
}

type redactedError struct {
	err error
}

func (e *redactedError) Error() string { return RedactError(e.err) }

func (e *redactedError) Unwrap() error { return e.err }
