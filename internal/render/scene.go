package render

import (
	"errors"
	"image"
	"os"

	"karaoke/internal/alignment"
	"karaoke/internal/services"
)

// LineLayer is the pair of text layers for one line. Base and Highlight share
// position and window; Highlight is drawn above Base and clipped to the
// visible width at each instant.
type LineLayer struct {
	Index     int
	Timing    alignment.LineTiming
	X, Y      int
	Base      *image.RGBA
	Highlight *image.RGBA
}

// Scene is the derived, read-only description of a render.
type Scene struct {
	Width        int
	Height       int
	FPS          int
	Duration     float64
	ContentWidth int
	Background   *image.RGBA
	Lines        []LineLayer
}

// BuildScene rasterizes the background and every line's text layers once.
func BuildScene(spec Spec, duration float64) (*Scene, error) {
	textColor, err := ParseHexColor(spec.TextColor)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, services.StageRendering, "parse text color", "", err)
	}
	highlightColor, err := ParseHexColor(spec.HighlightColor)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, services.StageRendering, "parse highlight color", "", err)
	}

	var background *image.RGBA
	if spec.BackgroundImage != "" {
		background, err = imageBackground(spec.BackgroundImage, spec.Width, spec.Height)
		if err != nil {
			return nil, err
		}
	} else {
		bg, err := ParseHexColor(spec.BackgroundColor)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, services.StageRendering, "parse background color", "", err)
		}
		background = solidBackground(spec.Width, spec.Height, bg)
	}

	face, err := LoadFace(spec.Style.FontPath, spec.Style.FontSize)
	if err != nil {
		marker := services.ErrValidation
		if errors.Is(err, os.ErrNotExist) {
			marker = services.ErrNotFound
		}
		return nil, services.Wrap(marker, services.StageRendering, "load font", spec.Style.FontPath, err)
	}
	defer face.Close()

	layout := spec.Layout()
	contentWidth := layout.ContentWidth()
	layers := make([]LineLayer, len(spec.Lines))
	for idx, line := range spec.Lines {
		rows := WrapText(face, line.Text, contentWidth)
		layers[idx] = LineLayer{
			Index:     idx,
			Timing:    line,
			X:         layout.LineX(),
			Y:         layout.LineY(idx, len(spec.Lines)),
			Base:      textBlock(face, rows, contentWidth, layout.LineHeight, textColor),
			Highlight: textBlock(face, rows, contentWidth, layout.LineHeight, highlightColor),
		}
	}

	return &Scene{
		Width:        spec.Width,
		Height:       spec.Height,
		FPS:          spec.FPS,
		Duration:     duration,
		ContentWidth: contentWidth,
		Background:   background,
		Lines:        layers,
	}, nil
}

// NewFrame allocates a frame buffer sized to the scene.
func (s *Scene) NewFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
}

// FrameCount is the number of frames the scene encodes to.
func (s *Scene) FrameCount() int {
	return FrameCount(s.Duration, s.FPS)
}

// FrameTime is the timestamp of frame i.
func (s *Scene) FrameTime(i int) float64 {
	return float64(i) / float64(s.FPS)
}

// FrameAt draws the scene at time t into dst, overwriting it.
func (s *Scene) FrameAt(t float64, dst *image.RGBA) {
	copy(dst.Pix, s.Background.Pix)
	for i := range s.Lines {
		layer := &s.Lines[i]
		if !Visible(layer.Timing, t) {
			continue
		}
		overlay(dst, layer.Base, layer.X, layer.Y, layer.Base.Bounds().Dx())
		overlay(dst, layer.Highlight, layer.X, layer.Y, VisibleWidth(layer.Timing, t, s.ContentWidth))
	}
}
