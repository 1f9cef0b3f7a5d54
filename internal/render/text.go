package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace opens the font at path, or the embedded Go Regular font when path
// is empty, at size points (72 DPI, so points equal pixels).
func LoadFace(path string, size int) (font.Face, error) {
	data := goregular.TTF
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = raw
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("open font face: %w", err)
	}
	return face, nil
}

// WrapText greedily packs words into rows no wider than maxWidth pixels. A
// single word wider than maxWidth gets a row of its own.
func WrapText(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	limit := fixed.I(maxWidth)
	var rows []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate) <= limit {
			current = candidate
			continue
		}
		rows = append(rows, current)
		current = word
	}
	return append(rows, current)
}

// textBlock rasterizes wrapped rows onto a transparent width-wide image, each
// row centered horizontally and vertically centered within lineHeight.
func textBlock(face font.Face, rows []string, width, lineHeight int, c color.Color) *image.RGBA {
	height := len(rows) * lineHeight
	if height == 0 {
		height = lineHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	metrics := face.Metrics()
	glyphHeight := (metrics.Ascent + metrics.Descent).Ceil()
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	for i, row := range rows {
		advance := font.MeasureString(face, row).Ceil()
		x := (width - advance) / 2
		top := i*lineHeight + (lineHeight-glyphHeight)/2
		drawer.Dot = fixed.P(x, top+metrics.Ascent.Ceil())
		drawer.DrawString(row)
	}
	return img
}

// overlay composites src over dst with src's origin at (x, y), clipped to the
// first clipWidth columns of src.
func overlay(dst *image.RGBA, src *image.RGBA, x, y, clipWidth int) {
	if clipWidth <= 0 {
		return
	}
	bounds := src.Bounds()
	if clipWidth < bounds.Dx() {
		bounds.Max.X = bounds.Min.X + clipWidth
	}
	target := image.Rect(x, y, x+bounds.Dx(), y+bounds.Dy())
	draw.Draw(dst, target, src, bounds.Min, draw.Over)
}
