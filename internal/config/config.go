package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	StorageDir string `toml:"storage_dir"`
	LogDir     string `toml:"log_dir"`
	APIBind    string `toml:"api_bind"`
	APIToken   string `toml:"api_token"`
}

// Alignment selects and tunes the lyric alignment engines.
type Alignment struct {
	// Engine is "aeneas" (forced alignment) or "whisper" (ASR segment matching).
	Engine   string `toml:"engine"`
	Language string `toml:"language"`
	// FallbackSeconds is the span given to lines that match no speech segment.
	FallbackSeconds     float64 `toml:"fallback_seconds"`
	AeneasPython        string  `toml:"aeneas_python"`
	WhisperXModel       string  `toml:"whisperx_model"`
	WhisperXCUDAEnabled bool    `toml:"whisperx_cuda_enabled"`
	WhisperXVADMethod   string  `toml:"whisperx_vad_method"`
	WhisperXHuggingFace string  `toml:"whisperx_hf_token"`
}

// Render contains default canvas, layout, and encoder settings for karaoke videos.
type Render struct {
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	FPS             int    `toml:"fps"`
	BackgroundColor string `toml:"background_color"`
	TextColor       string `toml:"text_color"`
	HighlightColor  string `toml:"highlight_color"`
	FontPath        string `toml:"font_path"`
	FontSize        int    `toml:"font_size"`
	LineHeight      int    `toml:"line_height"`
	LineGap         int    `toml:"line_gap"`
	MarginBottom    int    `toml:"margin_bottom"`
	SideMargin      int    `toml:"side_margin"`
	VideoCodec      string `toml:"video_codec"`
	AudioCodec      string `toml:"audio_codec"`
	Preset          string `toml:"preset"`
	// Workers bounds parallel frame rasterization; 0 means one per CPU.
	Workers int `toml:"workers"`
}

// Tools overrides the external binaries used by the pipeline.
type Tools struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	UVXBinary     string `toml:"uvx_binary"`
}

// Workflow contains configuration for the job daemon.
type Workflow struct {
	PollInterval int `toml:"poll_interval"`
	Workers      int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for karaoke.
//
// Configuration sections by subsystem:
//   - Paths: storage root, log directory, and API bind address
//   - Alignment: engine selection and WhisperX/aeneas settings
//   - Render: canvas, colors, layout, and encoder defaults
//   - Tools: ffmpeg/ffprobe/uvx overrides
//   - Workflow: job daemon polling and concurrency
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Alignment Alignment `toml:"alignment"`
	Render    Render    `toml:"render"`
	Tools     Tools     `toml:"tools"`
	Workflow  Workflow  `toml:"workflow"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/karaoke/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("karaoke.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory. Storage directories are owned by
// storage.Open so they are created exactly where jobs will use them.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable to invoke.
func (c *Config) FFmpegBinary() string {
	if c == nil || strings.TrimSpace(c.Tools.FFmpegBinary) == "" {
		return "ffmpeg"
	}
	return strings.TrimSpace(c.Tools.FFmpegBinary)
}

// FFprobeBinary returns the ffprobe executable to invoke.
func (c *Config) FFprobeBinary() string {
	if c == nil || strings.TrimSpace(c.Tools.FFprobeBinary) == "" {
		return "ffprobe"
	}
	return strings.TrimSpace(c.Tools.FFprobeBinary)
}

// UVXBinary returns the uvx executable used to launch WhisperX.
func (c *Config) UVXBinary() string {
	if c == nil || strings.TrimSpace(c.Tools.UVXBinary) == "" {
		return "uvx"
	}
	return strings.TrimSpace(c.Tools.UVXBinary)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
