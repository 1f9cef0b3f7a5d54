package alignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"karaoke/internal/logging"
	"karaoke/internal/lyrics"
	"karaoke/internal/services"
)

// DefaultBaseName names the exported artifacts when a request omits one.
const DefaultBaseName = "alignment"

// ArtifactWriter persists line timings as JSON, SRT, and LRC files.
type ArtifactWriter interface {
	WriteAll(ctx context.Context, dir, base string, lines []LineTiming) (Artifacts, error)
}

// Request describes one alignment run. Lyrics takes precedence over
// LyricsPath; Engine falls back to the service default.
type Request struct {
	AudioPath  string `json:"audio_path"`
	Lyrics     string `json:"lyrics,omitempty"`
	LyricsPath string `json:"lyrics_path,omitempty"`
	Engine     string `json:"engine,omitempty"`
	OutputDir  string `json:"output_dir,omitempty"`
	BaseName   string `json:"base_name,omitempty"`
}

// Service runs alignment requests against the registered engines.
type Service struct {
	engines       map[string]Engine
	defaultEngine string
	writer        ArtifactWriter
	logger        *slog.Logger
}

// NewService registers engines by name. defaultEngine is used when a request
// does not name one.
func NewService(defaultEngine string, writer ArtifactWriter, logger *slog.Logger, engines ...Engine) *Service {
	registry := make(map[string]Engine, len(engines))
	for _, engine := range engines {
		if engine != nil {
			registry[engine.Name()] = engine
		}
	}
	return &Service{
		engines:       registry,
		defaultEngine: strings.ToLower(strings.TrimSpace(defaultEngine)),
		writer:        writer,
		logger:        logging.NewComponentLogger(logger, "alignment"),
	}
}

// Engine resolves the engine for a request name, applying the default.
func (s *Service) Engine(name string) (Engine, error) {
	if strings.TrimSpace(name) == "" {
		name = s.defaultEngine
	}
	normalized, err := NormalizeEngine(name)
	if err != nil {
		return nil, err
	}
	engine, ok := s.engines[normalized]
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, services.StageAlignment, "select engine", fmt.Sprintf("engine %q is not available", normalized), nil)
	}
	return engine, nil
}

// Align resolves lyrics, runs the selected engine, and writes the artifacts.
// Artifacts already written stay on disk if a later write fails.
func (s *Service) Align(ctx context.Context, req Request) (Result, error) {
	ctx = services.WithStage(ctx, services.StageAlignment)
	logger := logging.WithContext(ctx, s.logger)

	if err := checkAudio(req.AudioPath); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return Result{}, services.Wrap(services.ErrValidation, services.StageAlignment, "align", "output directory is required", nil)
	}
	lines, err := lyrics.Resolve(req.Lyrics, req.LyricsPath)
	if err != nil {
		return Result{}, err
	}
	engine, err := s.Engine(req.Engine)
	if err != nil {
		return Result{}, err
	}

	logger.Info("alignment started",
		logging.String("engine", engine.Name()),
		logging.String("audio", req.AudioPath),
		logging.Int("lines", len(lines)))
	started := time.Now()

	timings, err := engine.Align(ctx, req.AudioPath, lines)
	if err != nil {
		logging.ErrorWithContext(logger, "alignment engine failed", "alignment_failed",
			logging.String("engine", engine.Name()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the engine's tools are installed (karaoke doctor)"))
		return Result{}, err
	}
	if len(timings) != len(lines) {
		logging.WarnWithContext(logger, "engine returned a different number of timings than lyric lines", "timing_count_mismatch",
			logging.Int("lines", len(lines)),
			logging.Int("timings", len(timings)),
			logging.String(logging.FieldImpact, "exported files follow the engine output"))
	}

	base := strings.TrimSpace(req.BaseName)
	if base == "" {
		base = DefaultBaseName
	}
	if s.writer == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, services.StageFormatting, "write artifacts", "no artifact writer configured", nil)
	}
	artifacts, err := s.writer.WriteAll(ctx, req.OutputDir, base, timings)
	if err != nil {
		return Result{}, err
	}

	logger.Info("alignment complete",
		logging.String("engine", engine.Name()),
		logging.Int("timings", len(timings)),
		logging.Float64("last_end", MaxEnd(timings)),
		logging.Duration("elapsed", time.Since(started)),
		logging.String("json", artifacts.JSONPath))

	return Result{Engine: engine.Name(), Lines: timings, Artifacts: artifacts}, nil
}

func checkAudio(path string) error {
	if strings.TrimSpace(path) == "" {
		return services.Wrap(services.ErrValidation, services.StageAlignment, "check audio", "audio path is required", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, services.StageAlignment, "check audio", path, err)
		}
		return services.Wrap(services.ErrValidation, services.StageAlignment, "check audio", path, err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, services.StageAlignment, "check audio", path+" is a directory", nil)
	}
	return nil
}
