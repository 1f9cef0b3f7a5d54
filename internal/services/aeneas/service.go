package aeneas

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"karaoke/internal/alignment"
	langpkg "karaoke/internal/language"
	"karaoke/internal/logging"
)

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

// Config captures runtime settings for aeneas.
type Config struct {
	// Python is the interpreter with the aeneas package installed.
	Python string
	// Language is any code the language package understands; aeneas receives ISO 639-3.
	Language string
	// WorkDir is where per-call scratch directories are created; empty uses the OS temp dir.
	WorkDir string
}

// CommandRunner executes an external command and returns an error describing
// any failure.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Service aligns transcripts with aeneas.
type Service struct {
	cfg           Config
	commandRunner CommandRunner
	logger        *slog.Logger
}

// NewService creates an aeneas service.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if strings.TrimSpace(cfg.Python) == "" {
		cfg.Python = DefaultPython
	}
	return &Service{cfg: cfg, logger: logging.NewComponentLogger(logger, "aeneas")}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// TaskConfig is the aeneas task configuration string.
func (s *Service) TaskConfig() string {
	lang := langpkg.ToISO3(s.cfg.Language)
	if lang == "und" {
		lang = "eng"
	}
	return strings.Join([]string{
		"task_language=" + lang,
		"is_text_type=plain",
		"os_task_file_format=json",
	}, "|")
}

// Align implements alignment.ForcedAligner.
func (s *Service) Align(ctx context.Context, audioPath, transcript string) ([]alignment.Fragment, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("aeneas: empty transcript")
	}
	if s.cfg.WorkDir != "" {
		if err := os.MkdirAll(s.cfg.WorkDir, 0o755); err != nil {
			return nil, fmt.Errorf("aeneas: ensure work dir: %w", err)
		}
	}
	workDir, err := os.MkdirTemp(s.cfg.WorkDir, "aeneas-")
	if err != nil {
		return nil, fmt.Errorf("aeneas: create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	textPath := filepath.Join(workDir, "lyrics.txt")
	if err := os.WriteFile(textPath, []byte(transcript), 0o644); err != nil {
		return nil, fmt.Errorf("aeneas: write transcript: %w", err)
	}
	syncMapPath := filepath.Join(workDir, "aeneas_alignment.json")

	logger := logging.WithContext(ctx, s.logger)
	logger.Info("aeneas alignment started",
		logging.String("audio", audioPath),
		logging.String("task", s.TaskConfig()))

	args := []string{"-m", "aeneas.tools.execute_task", audioPath, textPath, s.TaskConfig(), syncMapPath}
	if err := s.run(ctx, s.cfg.Python, args...); err != nil {
		return nil, fmt.Errorf("aeneas: %w", err)
	}

	fragments, err := LoadSyncMap(syncMapPath)
	if err != nil {
		return nil, fmt.Errorf("aeneas: %w", err)
	}
	logger.Info("aeneas alignment complete", logging.Int("fragments", len(fragments)))
	return fragments, nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

type syncMapFragment struct {
	ID    string   `json:"id"`
	Begin seconds  `json:"begin"`
	End   seconds  `json:"end"`
	Lines []string `json:"lines"`
}

type syncMap struct {
	Fragments []syncMapFragment `json:"fragments"`
}

// seconds accepts both the quoted ("1.960") and bare numeric forms aeneas
// has used for begin/end.
type seconds float64

func (s *seconds) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid time %s: %w", data, err)
	}
	*s = seconds(v)
	return nil
}

// LoadSyncMap reads an aeneas JSON sync map.
func LoadSyncMap(path string) ([]alignment.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload syncMap
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse sync map: %w", err)
	}
	fragments := make([]alignment.Fragment, 0, len(payload.Fragments))
	for _, frag := range payload.Fragments {
		fragments = append(fragments, alignment.Fragment{
			ID:    frag.ID,
			Lines: frag.Lines,
			Start: float64(frag.Begin),
			End:   float64(frag.End),
		})
	}
	return fragments, nil
}
