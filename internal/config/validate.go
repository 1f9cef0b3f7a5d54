package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"karaoke/internal/language"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StorageDir) == "" {
		return errors.New("paths.storage_dir must be set")
	}
	return nil
}

func (c *Config) validateAlignment() error {
	if err := ValidateEngine(c.Alignment.Engine); err != nil {
		return fmt.Errorf("alignment.engine: %w", err)
	}
	if !language.Valid(c.Alignment.Language) {
		return fmt.Errorf("alignment.language: unrecognized language %q", c.Alignment.Language)
	}
	if c.Alignment.FallbackSeconds <= 0 {
		return errors.New("alignment.fallback_seconds must be positive")
	}
	switch c.Alignment.WhisperXVADMethod {
	case defaultWhisperXVADMethod:
	case supportedVADMethodPyannote:
		if c.Alignment.WhisperXHuggingFace == "" {
			return errors.New("alignment.whisperx_hf_token must be set when alignment.whisperx_vad_method is pyannote (or set HF_TOKEN)")
		}
	default:
		return fmt.Errorf("alignment.whisperx_vad_method: unsupported value %q", c.Alignment.WhisperXVADMethod)
	}
	return nil
}

// ValidateEngine reports whether engine names a supported alignment engine.
func ValidateEngine(engine string) error {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case EngineAeneas, EngineWhisper:
		return nil
	default:
		return fmt.Errorf("unsupported engine %q (want %s or %s)", engine, EngineAeneas, EngineWhisper)
	}
}

func (c *Config) validateRender() error {
	if err := ensurePositiveMap(map[string]int{
		"render.width":       c.Render.Width,
		"render.height":      c.Render.Height,
		"render.fps":         c.Render.FPS,
		"render.font_size":   c.Render.FontSize,
		"render.line_height": c.Render.LineHeight,
	}); err != nil {
		return err
	}
	if c.Render.Width > maxCanvasDimension || c.Render.Height > maxCanvasDimension {
		return fmt.Errorf("render.width and render.height must not exceed %d", maxCanvasDimension)
	}
	if c.Render.FPS > maxFramesPerSecond {
		return fmt.Errorf("render.fps must not exceed %d", maxFramesPerSecond)
	}
	if c.Render.LineGap < 0 || c.Render.MarginBottom < 0 || c.Render.SideMargin < 0 {
		return errors.New("render.line_gap, render.margin_bottom, and render.side_margin must be >= 0")
	}
	for key, value := range map[string]string{
		"render.background_color": c.Render.BackgroundColor,
		"render.text_color":       c.Render.TextColor,
		"render.highlight_color":  c.Render.HighlightColor,
	} {
		if !hexColorPattern.MatchString(value) {
			return fmt.Errorf("%s: expected #RRGGBB, got %q", key, value)
		}
	}
	if 2*c.Render.SideMargin >= c.Render.Width {
		return errors.New("render.side_margin leaves no room for text")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
