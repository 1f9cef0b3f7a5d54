package render

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"karaoke/internal/config"
	"karaoke/internal/logging"
	"karaoke/internal/services"
)

// DurationProber reports the duration of a media file in seconds.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Compositor renders specs to video files.
type Compositor struct {
	settings EncodeSettings
	defaults config.Render
	workers  int
	prober   DurationProber
	logger   *slog.Logger
}

// NewCompositor builds a compositor from configuration. prober may be nil
// when no render will carry audio.
func NewCompositor(cfg *config.Config, prober DurationProber, logger *slog.Logger) *Compositor {
	workers := cfg.Render.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Compositor{
		settings: EncodeSettings{
			Binary:     cfg.FFmpegBinary(),
			VideoCodec: cfg.Render.VideoCodec,
			AudioCodec: cfg.Render.AudioCodec,
			Preset:     cfg.Render.Preset,
		},
		defaults: cfg.Render,
		workers:  workers,
		prober:   prober,
		logger:   logging.NewComponentLogger(logger, "compositor"),
	}
}

// Render encodes spec to spec.OutputPath and returns that path. Zero-valued
// canvas, color, and style fields take the configured defaults. On any
// failure the partial output is removed.
func (c *Compositor) Render(ctx context.Context, spec Spec) (string, error) {
	ctx = services.WithStage(ctx, services.StageRendering)
	logger := logging.WithContext(ctx, c.logger)

	spec = spec.WithDefaults(c.defaults)
	if err := spec.validate(); err != nil {
		return "", err
	}

	audioSeconds, err := c.audioDuration(ctx, spec.AudioPath)
	if err != nil {
		return "", err
	}
	duration, err := ResolveDuration(spec.Lines, audioSeconds)
	if err != nil {
		return "", err
	}
	scene, err := BuildScene(spec, duration)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(spec.OutputPath), 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, services.StageRendering, "ensure output dir", spec.OutputPath, err)
	}

	logger.Info("render started",
		logging.String("output", spec.OutputPath),
		logging.Int("lines", len(spec.Lines)),
		logging.Float64("duration_seconds", duration),
		logging.Int("frames", scene.FrameCount()),
		logging.String("background", describeBackground(spec)),
		logging.Int("workers", c.workers))
	started := time.Now()

	enc, err := startEncoder(ctx, c.settings.Binary, ffmpegArgs(c.settings, spec, duration))
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, services.StageRendering, "start encoder", c.settings.Binary, err)
	}
	succeeded := false
	defer func() {
		if succeeded {
			return
		}
		enc.Abort()
		if removeErr := os.Remove(spec.OutputPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logging.WarnWithContext(logger, "failed to remove partial render", "render_cleanup_failed",
				logging.String("output", spec.OutputPath),
				logging.Error(removeErr),
				logging.String(logging.FieldImpact, "a partial video file remains on disk"))
		}
	}()

	if err := c.streamFrames(ctx, scene, enc); err != nil {
		if ctx.Err() != nil {
			return "", services.Wrap(services.ErrTransient, services.StageRendering, "stream frames", "cancelled", ctx.Err())
		}
		return "", services.Wrap(services.ErrExternalTool, services.StageRendering, "stream frames", c.settings.Binary, err)
	}
	if err := enc.Finish(); err != nil {
		return "", services.Wrap(services.ErrExternalTool, services.StageRendering, "encode", c.settings.Binary, err)
	}
	succeeded = true

	logger.Info("render complete",
		logging.String("output", spec.OutputPath),
		logging.Duration("elapsed", time.Since(started)))
	return spec.OutputPath, nil
}

func (c *Compositor) audioDuration(ctx context.Context, path string) (float64, error) {
	if path == "" {
		return 0, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, services.Wrap(services.ErrNotFound, services.StageRendering, "check audio", path, err)
		}
		return 0, services.Wrap(services.ErrValidation, services.StageRendering, "check audio", path, err)
	}
	if c.prober == nil {
		return 0, services.Wrap(services.ErrConfiguration, services.StageRendering, "probe audio", "no duration prober configured", nil)
	}
	seconds, err := c.prober.Duration(ctx, path)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, services.StageRendering, "probe audio", path, err)
	}
	return seconds, nil
}

// streamFrames rasterizes frames in parallel batches of c.workers and writes
// each batch to the encoder in frame order.
func (c *Compositor) streamFrames(ctx context.Context, scene *Scene, enc *encoder) error {
	total := scene.FrameCount()
	buffers := make([]*image.RGBA, c.workers)
	for i := range buffers {
		buffers[i] = scene.NewFrame()
	}

	for start := 0; start < total; start += c.workers {
		end := min(start+c.workers, total)
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				scene.FrameAt(scene.FrameTime(i), buffers[i-start])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for i := start; i < end; i++ {
			if err := enc.WriteFrame(buffers[i-start]); err != nil {
				return err
			}
		}
	}
	return nil
}
