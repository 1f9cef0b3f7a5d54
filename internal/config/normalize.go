package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeAlignment(); err != nil {
		return err
	}
	c.normalizeRender()
	c.normalizeTools()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("STORAGE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StorageDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StorageDir) == "" {
		c.Paths.StorageDir = defaultStorageDir
	}
	var err error
	if c.Paths.StorageDir, err = expandPath(c.Paths.StorageDir); err != nil {
		return fmt.Errorf("paths.storage_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	if c.Paths.APIToken == "" {
		if value, ok := os.LookupEnv("KARAOKE_API_TOKEN"); ok {
			c.Paths.APIToken = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeAlignment() error {
	if value, ok := os.LookupEnv("ALIGNER_ENGINE"); ok && strings.TrimSpace(value) != "" {
		c.Alignment.Engine = value
	}
	c.Alignment.Engine = strings.ToLower(strings.TrimSpace(c.Alignment.Engine))
	if c.Alignment.Engine == "" {
		c.Alignment.Engine = defaultEngine
	}
	c.Alignment.Language = strings.ToLower(strings.TrimSpace(c.Alignment.Language))
	if c.Alignment.Language == "" {
		c.Alignment.Language = defaultLanguage
	}
	if c.Alignment.FallbackSeconds <= 0 {
		c.Alignment.FallbackSeconds = defaultFallbackSeconds
	}
	c.Alignment.AeneasPython = strings.TrimSpace(c.Alignment.AeneasPython)
	if c.Alignment.AeneasPython == "" {
		c.Alignment.AeneasPython = defaultAeneasPython
	}
	c.Alignment.WhisperXModel = strings.TrimSpace(c.Alignment.WhisperXModel)
	if c.Alignment.WhisperXModel == "" {
		c.Alignment.WhisperXModel = defaultWhisperXModel
	}
	c.Alignment.WhisperXVADMethod = strings.ToLower(strings.TrimSpace(c.Alignment.WhisperXVADMethod))
	if c.Alignment.WhisperXVADMethod == "" {
		c.Alignment.WhisperXVADMethod = defaultWhisperXVADMethod
	}
	c.Alignment.WhisperXHuggingFace = strings.TrimSpace(c.Alignment.WhisperXHuggingFace)
	if c.Alignment.WhisperXHuggingFace == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.Alignment.WhisperXHuggingFace = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Alignment.WhisperXHuggingFace = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeRender() {
	c.Render.BackgroundColor = strings.TrimSpace(c.Render.BackgroundColor)
	if c.Render.BackgroundColor == "" {
		c.Render.BackgroundColor = defaultBackgroundColor
	}
	c.Render.TextColor = strings.TrimSpace(c.Render.TextColor)
	if c.Render.TextColor == "" {
		c.Render.TextColor = defaultTextColor
	}
	c.Render.HighlightColor = strings.TrimSpace(c.Render.HighlightColor)
	if c.Render.HighlightColor == "" {
		c.Render.HighlightColor = defaultHighlightColor
	}
	if c.Render.FontPath != "" {
		if expanded, err := expandPath(strings.TrimSpace(c.Render.FontPath)); err == nil {
			c.Render.FontPath = expanded
		}
	}
	c.Render.VideoCodec = strings.TrimSpace(c.Render.VideoCodec)
	if c.Render.VideoCodec == "" {
		c.Render.VideoCodec = defaultVideoCodec
	}
	c.Render.AudioCodec = strings.TrimSpace(c.Render.AudioCodec)
	if c.Render.AudioCodec == "" {
		c.Render.AudioCodec = defaultAudioCodec
	}
	c.Render.Preset = strings.TrimSpace(c.Render.Preset)
	if c.Render.Preset == "" {
		c.Render.Preset = defaultPreset
	}
	if c.Render.Workers < 0 {
		c.Render.Workers = 0
	}
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpegBinary = strings.TrimSpace(c.Tools.FFmpegBinary)
	c.Tools.FFprobeBinary = strings.TrimSpace(c.Tools.FFprobeBinary)
	c.Tools.UVXBinary = strings.TrimSpace(c.Tools.UVXBinary)
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.PollInterval <= 0 {
		c.Workflow.PollInterval = defaultWorkflowPoll
	}
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = defaultWorkflowWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
