package render

import (
	"fmt"
	"strings"

	"karaoke/internal/alignment"
	"karaoke/internal/config"
	"karaoke/internal/services"
)

// Style controls typography and placement.
type Style struct {
	FontPath     string `json:"font_path,omitempty"`
	FontSize     int    `json:"font_size,omitempty"`
	LineHeight   int    `json:"line_height,omitempty"`
	LineGap      int    `json:"line_gap,omitempty"`
	MarginBottom int    `json:"margin_bottom,omitempty"`
	SideMargin   int    `json:"side_margin,omitempty"`
}

// Spec describes one render. BackgroundImage, when set, replaces
// BackgroundColor; AudioPath is optional.
type Spec struct {
	Lines           []alignment.LineTiming `json:"lines"`
	Width           int                    `json:"width,omitempty"`
	Height          int                    `json:"height,omitempty"`
	FPS             int                    `json:"fps,omitempty"`
	BackgroundColor string                 `json:"background_color,omitempty"`
	BackgroundImage string                 `json:"background_image,omitempty"`
	TextColor       string                 `json:"text_color,omitempty"`
	HighlightColor  string                 `json:"highlight_color,omitempty"`
	AudioPath       string                 `json:"audio_path,omitempty"`
	OutputPath      string                 `json:"output_path"`
	Style           Style                  `json:"style,omitempty"`
}

// WithDefaults fills zero-valued fields from the render configuration.
func (s Spec) WithDefaults(cfg config.Render) Spec {
	if s.Width == 0 {
		s.Width = cfg.Width
	}
	if s.Height == 0 {
		s.Height = cfg.Height
	}
	if s.FPS == 0 {
		s.FPS = cfg.FPS
	}
	if strings.TrimSpace(s.BackgroundColor) == "" {
		s.BackgroundColor = cfg.BackgroundColor
	}
	if strings.TrimSpace(s.TextColor) == "" {
		s.TextColor = cfg.TextColor
	}
	if strings.TrimSpace(s.HighlightColor) == "" {
		s.HighlightColor = cfg.HighlightColor
	}
	if strings.TrimSpace(s.Style.FontPath) == "" {
		s.Style.FontPath = cfg.FontPath
	}
	if s.Style.FontSize == 0 {
		s.Style.FontSize = cfg.FontSize
	}
	if s.Style.LineHeight == 0 {
		s.Style.LineHeight = cfg.LineHeight
	}
	if s.Style.LineGap == 0 {
		s.Style.LineGap = cfg.LineGap
	}
	if s.Style.MarginBottom == 0 {
		s.Style.MarginBottom = cfg.MarginBottom
	}
	if s.Style.SideMargin == 0 {
		s.Style.SideMargin = cfg.SideMargin
	}
	return s
}

// Layout derives line placement from the canvas and style.
func (s Spec) Layout() Layout {
	return Layout{
		Width:        s.Width,
		Height:       s.Height,
		LineHeight:   s.Style.LineHeight,
		LineGap:      s.Style.LineGap,
		MarginBottom: s.Style.MarginBottom,
		SideMargin:   s.Style.SideMargin,
	}
}

func (s Spec) validate() error {
	invalid := func(msg string) error {
		return services.Wrap(services.ErrValidation, services.StageRendering, "validate spec", msg, nil)
	}
	switch {
	case strings.TrimSpace(s.OutputPath) == "":
		return invalid("output path is required")
	case s.Width <= 0 || s.Height <= 0:
		return invalid(fmt.Sprintf("canvas %dx%d must be positive", s.Width, s.Height))
	case s.Width%2 != 0 || s.Height%2 != 0:
		return invalid(fmt.Sprintf("canvas %dx%d must have even dimensions for yuv420p", s.Width, s.Height))
	case s.FPS <= 0:
		return invalid(fmt.Sprintf("fps %d must be positive", s.FPS))
	case s.Style.FontSize <= 0 || s.Style.LineHeight <= 0:
		return invalid("font size and line height must be positive")
	case s.Layout().ContentWidth() <= 0:
		return invalid("side margins leave no room for text")
	}
	for i, line := range s.Lines {
		if line.End < line.Start {
			return invalid(fmt.Sprintf("line %d ends (%.3f) before it starts (%.3f)", i, line.End, line.Start))
		}
	}
	return nil
}
