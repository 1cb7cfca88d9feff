// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

// Package retry runs an operation under a bounded, fixed-delay retry policy.
//
// Only rate limiting (apperrors.ErrRateLimited) is retried. Every other error
// ends the execution on the attempt that produced it. The result is a tagged
// value rather than a bare error so callers can tell a hard failure from a
// run that simply ran out of attempts:
//
//	res := retry.Do(ctx, retry.Caption, func(ctx context.Context) (string, error) {
//	    return source.CaptionText(ctx, track)
//	})
//	switch res.Outcome {
//	case retry.OutcomeSuccess:
//	    use(res.Value)
//	case retry.OutcomeExhausted:
//	    // res.Err wraps apperrors.ErrExhausted
//	}
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/metrics"
)

// Outcome tags the result of an execution.
type Outcome int

const (
	// OutcomeSuccess means an attempt returned a value.
	OutcomeSuccess Outcome = iota
	// OutcomeFailed means an attempt returned a non-retryable error,
	// or the context ended while waiting.
	OutcomeFailed
	// OutcomeExhausted means every attempt was rate limited.
	OutcomeExhausted
)

// String returns the metric label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Policy bounds an execution.
type Policy struct {
	Name        string
	MaxAttempts int
	Delay       time.Duration
}

// Named policies used by the artifact pipeline. Attempts and delay are
// overridden from configuration at startup through Configure.
var (
	Catalog  = Policy{Name: "catalog", MaxAttempts: 3, Delay: time.Second}
	Caption  = Policy{Name: "caption", MaxAttempts: 3, Delay: time.Second}
	Download = Policy{Name: "download", MaxAttempts: 3, Delay: time.Second}
	Speech   = Policy{Name: "speech", MaxAttempts: 2, Delay: time.Second}
)

// Configure sets attempts and delay on the named policies.
// Call it once at startup, before any request is served.
func Configure(attempts, speechAttempts int, delay time.Duration) {
	for _, p := range []*Policy{&Catalog, &Caption, &Download} {
		p.MaxAttempts = attempts
		p.Delay = delay
	}
	Speech.MaxAttempts = speechAttempts
	Speech.Delay = delay
}

// Result is the tagged outcome of Do.
type Result[T any] struct {
	Value    T
	Outcome  Outcome
	Err      error
	Attempts int
	Waits    int
}

// Ok reports whether the execution succeeded.
func (r Result[T]) Ok() bool {
	return r.Outcome == OutcomeSuccess
}

// Unwrap returns the value and the error, for callers that only need both.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the wait used between attempts. Tests replace it.
var Sleep SleepFunc = sleepContext

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// policy's attempts are used up. It waits policy.Delay between attempts and
// never panics past its boundary.
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error)) (res Result[T]) {
	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	defer func() {
		if r := recover(); r != nil {
			var zero T
			res = Result[T]{
				Value:    zero,
				Outcome:  OutcomeFailed,
				Err:      fmt.Errorf("%s: panic in operation: %v", policy.Name, r),
				Attempts: res.Attempts,
				Waits:    res.Waits,
			}
		}
		metrics.RecordRetryOutcome(policy.Name, res.Outcome.String())
	}()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res.Attempts = attempt
		metrics.RecordRetryAttempt(policy.Name)

		value, err := op(ctx)
		if err == nil {
			res.Value = value
			res.Outcome = OutcomeSuccess
			res.Err = nil
			return res
		}
		lastErr = err

		if !apperrors.IsRetryable(err) {
			res.Outcome = OutcomeFailed
			res.Err = err
			return res
		}

		if attempt == maxAttempts {
			break
		}

		logging.Ctx(ctx).Debug().
			Str("policy", policy.Name).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Dur("delay", policy.Delay).
			Msg("Rate limited, waiting before retry")

		res.Waits++
		metrics.RecordRetryWait(policy.Name)
		if err := Sleep(ctx, policy.Delay); err != nil {
			res.Outcome = OutcomeFailed
			res.Err = fmt.Errorf("%s: wait interrupted: %w", policy.Name, err)
			return res
		}
	}

	logging.Ctx(ctx).Warn().
		Str("policy", policy.Name).
		Int("attempts", res.Attempts).
		Msg("Retry attempts exhausted")

	res.Outcome = OutcomeExhausted
	res.Err = fmt.Errorf("%s after %d attempts: %w", policy.Name, res.Attempts, errors.Join(apperrors.ErrExhausted, lastErr))
	return res
}
