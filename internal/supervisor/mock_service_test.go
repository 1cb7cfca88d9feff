// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// mockService runs until canceled, optionally failing its first few runs.
type mockService struct {
	name      string
	failFirst int32
	starts    atomic.Int32
	started   chan struct{}
}

func newMockService(name string) *mockService {
	return &mockService{name: name, started: make(chan struct{}, 16)}
}

func (m *mockService) Serve(ctx context.Context) error {
	n := m.starts.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}
	if n <= m.failFirst {
		return errors.New("mock failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string {
	return fmt.Sprintf("mock-%s", m.name)
}

func waitStarted(m *mockService, timeout time.Duration) bool {
	select {
	case <-m.started:
		return true
	case <-time.After(timeout):
		return false
	}
}
