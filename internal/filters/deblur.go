package filters

import (
	"math"

	"image-enhancement/internal/raster"
)

// deblurThreshold suppresses amplification of near-flat regions so smooth
// areas do not pick up grain, while genuine edges are boosted. 0–255 scale.
const deblurThreshold = 10.0

// Deblur recovers local contrast in place via windowed unsharp masking with
// radius = ceil(strength*3) and amount = strength*1.5. Each channel's local
// mean over the (2radius+1)² window estimates the blur; differences above
// the threshold are amplified by amount and clamped.
//
// strength 0 is a no-op and leaves the buffer byte-identical. Same border
// policy as Denoise: pixels without a full window are untouched, and so is
// alpha.
func Deblur(buf *raster.Buffer, strength float32) {
	if strength <= 0 {
		return
	}

	radius := int(math.Ceil(float64(strength) * 3))
	w, h := buf.Width, buf.Height
	if w < 2*radius+1 || h < 2*radius+1 {
		return
	}

	src := snapshot(buf.Pix)
	amount := float64(strength) * 1.5
	side := 2*radius + 1
	count := float64(side * side)

	parallelRows(radius, h-radius, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := radius; x < w-radius; x++ {
				i := buf.Offset(x, y)
				for ch := 0; ch < 3; ch++ {
					sum := 0
					for wy := y - radius; wy <= y+radius; wy++ {
						o := (wy*w+x-radius)*4 + ch
						for wx := 0; wx < side; wx++ {
							sum += int(src[o])
							o += 4
						}
					}
					original := float64(src[i+ch])
					diff := original - float64(sum)/count
					if math.Abs(diff) > deblurThreshold {
						buf.Pix[i+ch] = clampByte(original + diff*amount)
					}
				}
			}
		}
	})
}
