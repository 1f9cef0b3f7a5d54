package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"karaoke/internal/services"
)

// solidBackground fills a width x height canvas with c.
func solidBackground(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// imageBackground decodes path and stretches it to exactly width x height.
func imageBackground(path string, width, height int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, services.StageRendering, "load background", path, err)
		}
		return nil, services.Wrap(services.ErrValidation, services.StageRendering, "load background", path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, services.StageRendering, "decode background", path, err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// describeBackground is used in log lines.
func describeBackground(spec Spec) string {
	if spec.BackgroundImage != "" {
		return fmt.Sprintf("image:%s", spec.BackgroundImage)
	}
	return "color:" + spec.BackgroundColor
}
