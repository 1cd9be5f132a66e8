package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"image-enhancement/internal/catalog"
)

// Resample scales src to the dimensions implied by the resolution target
// (scale factor = DPI / 72, the base web resolution). Output dimensions are
// rounded, with a 1×1 floor. Catmull-Rom interpolation keeps upscaled edges
// smooth instead of blocky. The source buffer is never modified.
func Resample(src *Buffer, target catalog.Resolution) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	scale := target.ScaleFactor()
	width := int(math.Round(float64(src.Width) * scale))
	height := int(math.Round(float64(src.Height) * scale))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst, err := New(width, height)
	if err != nil {
		return nil, err
	}

	draw.CatmullRom.Scale(dst.RGBA(), image.Rect(0, 0, width, height), src.RGBA(), image.Rect(0, 0, src.Width, src.Height), draw.Src, nil)
	return dst, nil
}
