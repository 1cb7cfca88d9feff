// Tubelens - YouTube Channel Analytics and Caption Retrieval
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tubelens

package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tubelens/internal/config"
	"github.com/tomtom215/tubelens/internal/logging"
	"github.com/tomtom215/tubelens/internal/models"
)

// maxStderr bounds the engine output kept for error messages.
const maxStderr = 2048

// WhisperEngine runs the openai-whisper command line tool.
type WhisperEngine struct {
	binary   string
	model    string
	modelDir string
	beamSize int
	timeout  time.Duration
}

// NewWhisperEngine locates the whisper binary and prepares the model cache.
func NewWhisperEngine(cfg *config.TranscribeConfig) (*WhisperEngine, error) {
	binary, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("locate whisper binary %q: %w", cfg.Binary, err)
	}
	if cfg.ModelDir != "" {
		if err := os.MkdirAll(cfg.ModelDir, 0o750); err != nil {
			return nil, fmt.Errorf("create model dir: %w", err)
		}
	}

	beam := cfg.BeamSize
	if beam <= 0 {
		beam = 5
	}
	return &WhisperEngine{
		binary:   binary,
		model:    cfg.Model,
		modelDir: cfg.ModelDir,
		beamSize: beam,
		timeout:  cfg.Timeout,
	}, nil
}

// WhisperFactory adapts NewWhisperEngine to EngineFactory.
func WhisperFactory(cfg *config.TranscribeConfig) EngineFactory {
	return func(context.Context) (Engine, error) {
		engine, err := NewWhisperEngine(cfg)
		if err != nil {
			return nil, err
		}
		return engine, nil
	}
}

type whisperOutput struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs whisper on audioPath and writes its JSON output next to it.
func (w *WhisperEngine) Transcribe(ctx context.Context, audioPath, language string) ([]models.TranscriptSegment, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	outDir := filepath.Dir(audioPath)
	args := w.args(audioPath, language, outDir)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, w.binary, args...)
	cmd.Stderr = &stderr

	logging.Ctx(ctx).Debug().Str("binary", w.binary).Strs("args", args).Msg("Running whisper")
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("whisper: %w", ctx.Err())
		}
		return nil, fmt.Errorf("whisper: %w: %s", err, tail(stderr.String(), maxStderr))
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	raw, err := os.ReadFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	var out whisperOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode whisper output: %w", err)
	}

	segments := make([]models.TranscriptSegment, 0, len(out.Segments))
	for _, s := range out.Segments {
		start := max(s.Start, 0)
		segments = append(segments, models.TranscriptSegment{
			Start: start,
			End:   max(s.End, start),
			Text:  s.Text,
		})
	}
	return segments, nil
}

func (w *WhisperEngine) args(audioPath, language, outDir string) []string {
	args := []string{
		audioPath,
		"--model", w.model,
		"--language", language,
		"--beam_size", strconv.Itoa(w.beamSize),
		"--output_format", "json",
		"--output_dir", outDir,
		"--fp16", "False",
	}
	if w.modelDir != "" {
		args = append(args, "--model_dir", w.modelDir)
	}
	return args
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
