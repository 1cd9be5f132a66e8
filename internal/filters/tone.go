package filters

import (
	"image-enhancement/internal/raster"
)

// AdjustTone remaps brightness and contrast in place across the full frame,
// borders included. Per channel, in this exact order: the value is scaled by
// brightness and clamped, then contrast is applied around the 0.5 midpoint to
// the already brightness-adjusted value. The sequencing is load-bearing:
// swapping the two steps produces different output for any non-unity
// contrast. Alpha is never touched.
func AdjustTone(buf *raster.Buffer, brightness, contrast float32) {
	b := float64(brightness)
	c := float64(contrast)

	parallelRows(0, buf.Height, func(y0, y1 int) {
		for i := y0 * buf.Width * 4; i < y1*buf.Width*4; i += 4 {
			for ch := 0; ch < 3; ch++ {
				v := float64(buf.Pix[i+ch])
				v = clampRange(v * b)
				v = clampRange(((v/255-0.5)*c + 0.5) * 255)
				buf.Pix[i+ch] = clampByte(v)
			}
		}
	})
}
