// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/tubelens/internal/apperrors"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/metrics"
	"github.com/tomtom215/tubelens/internal/models"
	"github.com/tomtom215/tubelens/internal/subtitle"
)

// Engine turns an audio file into timed segments.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, language string) ([]models.TranscriptSegment, error)
}

// EngineFactory constructs the engine. It is called at most once.
type EngineFactory func(ctx context.Context) (Engine, error)

// AudioFetcher writes the audio of one video into dir and returns its path.
type AudioFetcher func(ctx context.Context, dir string) (string, error)

// State of the lazily constructed engine.
type State int32

const (
	StateUninitialized State = iota
	StateReady
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateUnavailable:
		return "unavailable"
	default:
		return "uninitialized"
	}
}

// Adapter gates access to the speech engine.
type Adapter struct {
	factory  EngineFactory
	language string
	tempRoot string

	once   sync.Once
	engine Engine
	err    error
	state  atomic.Int32
}

// NewAdapter creates an adapter. language is passed to every transcription;
// tempRoot is where per-operation directories are created ("" means the OS
// default).
func NewAdapter(factory EngineFactory, language, tempRoot string) *Adapter {
	return &Adapter{factory: factory, language: language, tempRoot: tempRoot}
}

// Disabled returns an adapter whose engine is always unavailable.
func Disabled() *Adapter {
	return NewAdapter(func(context.Context) (Engine, error) {
		return nil, errors.New("speech engine disabled by configuration")
	}, "", "")
}

// Engine returns the engine, constructing it on first use. Construction runs
// detached from ctx cancellation so one aborted request cannot poison the
// process-wide state.
func (a *Adapter) Engine(ctx context.Context) (Engine, error) {
	a.once.Do(func() {
		log := logging.Ctx(ctx)
		log.Info().Msg("Loading speech engine")

		start := time.Now()
		engine, err := a.factory(context.WithoutCancel(ctx))
		if err == nil && engine == nil {
			err = errors.New("factory returned no engine")
		}
		if err != nil {
			a.err = fmt.Errorf("speech engine: %w: %w", apperrors.ErrUnavailable, logging.SafeErr(err))
			a.setState(StateUnavailable)
			log.Error().Err(err).Msg("Speech engine failed to load; AI captions disabled")
			return
		}

		a.engine = engine
		a.setState(StateReady)
		log.Info().Dur("took", time.Since(start)).Msg("Speech engine loaded")
	})
	return a.engine, a.err
}

// Language is the spoken language passed to the engine.
func (a *Adapter) Language() string {
	return a.language
}

// State reports whether the engine has been built.
func (a *Adapter) State() State {
	return State(a.state.Load())
}

func (a *Adapter) setState(s State) {
	a.state.Store(int32(s))
	metrics.SpeechEngineState.Set(float64(s))
}

// Transcribe fetches audio into a scratch directory, runs the engine over it
// and returns the transcript as SRT text.
func (a *Adapter) Transcribe(ctx context.Context, videoID string, fetch AudioFetcher) (string, error) {
	engine, err := a.Engine(ctx)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp(a.tempRoot, "tubelens-audio-*")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logging.Ctx(ctx).Warn().Err(rmErr).Str("dir", dir).Msg("Failed to remove scratch dir")
		}
	}()

	audioPath, err := fetch(ctx, dir)
	if err != nil {
		return "", err
	}

	start := time.Now()
	segments, err := engine.Transcribe(ctx, audioPath, a.language)
	metrics.RecordTranscription(time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", videoID, err)
	}

	logging.Ctx(ctx).Info().
		Str("video_id", videoID).
		Int("segments", len(segments)).
		Dur("took", time.Since(start)).
		Msg("Transcription complete")
	return subtitle.Serialize(segments), nil
}
