package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"karaoke/internal/alignment"
	"karaoke/internal/config"
	"karaoke/internal/daemon"
	"karaoke/internal/export"
	"karaoke/internal/jobs"
	"karaoke/internal/logging"
	"karaoke/internal/media/ffprobe"
	"karaoke/internal/render"
	"karaoke/internal/services/aeneas"
	"karaoke/internal/services/whisperx"
	"karaoke/internal/storage"
	"karaoke/internal/workflow"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
}

// Pipeline bundles the alignment and rendering services built from config.
type Pipeline struct {
	Paths      storage.Paths
	Aligner    *alignment.Service
	Compositor *render.Compositor
}

// NewPipeline opens the storage root and wires both alignment engines and the
// compositor.
func NewPipeline(cfg *config.Config, logger *slog.Logger) (Pipeline, error) {
	if cfg == nil {
		return Pipeline{}, fmt.Errorf("config is required")
	}
	paths, err := storage.Open(cfg)
	if err != nil {
		return Pipeline{}, fmt.Errorf("open storage: %w", err)
	}

	forced := aeneas.NewService(aeneas.Config{
		Python:   cfg.Alignment.AeneasPython,
		Language: cfg.Alignment.Language,
		WorkDir:  paths.Tmp,
	}, logger)
	transcriber := whisperx.NewService(whisperx.Config{
		Model:        cfg.Alignment.WhisperXModel,
		Language:     cfg.Alignment.Language,
		CUDAEnabled:  cfg.Alignment.WhisperXCUDAEnabled,
		VADMethod:    cfg.Alignment.WhisperXVADMethod,
		HFToken:      cfg.Alignment.WhisperXHuggingFace,
		UVXBinary:    cfg.UVXBinary(),
		FFmpegBinary: cfg.FFmpegBinary(),
		WorkDir:      paths.Tmp,
	}, logger)

	aligner := alignment.NewService(cfg.Alignment.Engine, export.NewWriter(logger), logger,
		alignment.ForcedEngine{Aligner: forced},
		alignment.MatchingEngine{
			Transcriber: transcriber,
			Matcher:     alignment.Matcher{Fallback: cfg.Alignment.FallbackSeconds},
			Logger:      logger,
		},
	)
	compositor := render.NewCompositor(cfg, ffprobe.Prober{Binary: cfg.FFprobeBinary()}, logger)

	return Pipeline{Paths: paths, Aligner: aligner, Compositor: compositor}, nil
}

// Register binds the pipeline's services to the manager's job kinds.
func (p Pipeline) Register(mgr *workflow.Manager) {
	mgr.Register(jobs.KindAlign, workflow.AlignHandler(p.Aligner, p.Paths))
	mgr.Register(jobs.KindRender, workflow.RenderHandler(p.Compositor, p.Paths))
}

// Run starts the karaoke daemon and blocks until the context is cancelled or
// the process receives SIGINT/SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		override := *cfg
		override.Logging.Level = level
		cfg = &override
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logDependencySnapshot(logger, cfg)

	pidPath := filepath.Join(cfg.Paths.LogDir, "karaoke.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := jobs.Open(cfg)
	if err != nil {
		logger.Error("open job store", logging.Error(err))
		return err
	}

	pipeline, err := NewPipeline(cfg, logger)
	if err != nil {
		store.Close()
		return err
	}
	manager := workflow.NewManager(cfg, store, logger)
	pipeline.Register(manager)

	d, err := daemon.New(cfg, store, pipeline.Paths, logger, manager)
	if err != nil {
		store.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		logging.ErrorWithContext(logger, "daemon start failed", "daemon_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the lock file, API bind address, and job database access"),
			logging.String(logging.FieldImpact, "no jobs will be processed"))
		return err
	}

	<-signalCtx.Done()
	logger.Info("karaoke daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logDependencySnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	ffmpeg := cfg.FFmpegBinary()
	ffprobeBinary := cfg.FFprobeBinary()
	uvx := cfg.UVXBinary()
	logger.Info("dependency snapshot",
		logging.String(logging.FieldEventType, "dependency_snapshot"),
		logging.String("default_engine", cfg.Alignment.Engine),
		logging.Bool("ffmpeg_available", binaryAvailable(ffmpeg)),
		logging.String("ffmpeg_binary", ffmpeg),
		logging.Bool("ffprobe_available", binaryAvailable(ffprobeBinary)),
		logging.String("ffprobe_binary", ffprobeBinary),
		logging.Bool("uvx_available", binaryAvailable(uvx)),
		logging.String("aeneas_python", cfg.Alignment.AeneasPython),
		logging.Bool("whisperx_cuda", cfg.Alignment.WhisperXCUDAEnabled),
		logging.Bool("hf_token_present", strings.TrimSpace(cfg.Alignment.WhisperXHuggingFace) != ""),
	)
}

func binaryAvailable(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
