package filters

import (
	"image-enhancement/internal/raster"
)

// Sharpen applies a fixed-topology 3×3 convolution in place: the eight
// neighbors weigh -1 and the center weighs 9 + boost, where
// boost = (sharpness-1)*0.8.
//
// The kernel weights sum to 1+boost rather than exactly 1, so uniform
// regions are scaled by (1+boost) and re-normalized by the clamp at the top
// of the range. This matches the shipped behavior and must not be silently
// normalized.
//
// sharpness ≤ 1 is a no-op and leaves the buffer byte-identical. The
// outermost pixel ring is left unmodified (no padding or reflection), and
// alpha is never touched.
func Sharpen(buf *raster.Buffer, sharpness float32) {
	if sharpness <= 1 {
		return
	}

	w, h := buf.Width, buf.Height
	if w < 3 || h < 3 {
		return
	}

	src := snapshot(buf.Pix)
	center := 9 + (float64(sharpness)-1)*0.8

	parallelRows(1, h-1, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 1; x < w-1; x++ {
				i := buf.Offset(x, y)
				up := i - w*4
				down := i + w*4
				for ch := 0; ch < 3; ch++ {
					sum := center * float64(src[i+ch])
					sum -= float64(src[up+ch-4]) + float64(src[up+ch]) + float64(src[up+ch+4])
					sum -= float64(src[i+ch-4]) + float64(src[i+ch+4])
					sum -= float64(src[down+ch-4]) + float64(src[down+ch]) + float64(src[down+ch+4])
					buf.Pix[i+ch] = clampByte(sum)
				}
			}
		}
	})
}
