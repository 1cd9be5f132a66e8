package filters

import (
	"math"
	"sort"

	"image-enhancement/internal/raster"
)

// Denoise applies edge-preserving smoothing in place: each color channel is
// blended toward the median of its (2r+1)×(2r+1) neighborhood, with
// r = ceil(strength*2). Median filtering removes impulse noise without the
// over-smoothing of a mean filter; the blend keeps fine structure at low
// strengths.
//
// strength 0 is a no-op and leaves the buffer byte-identical. Pixels within
// r of any border are left unmodified; only full windows are filtered.
// Strength above 1 is not clamped; preset values are expected to stay ≤ 1.
// Alpha is never touched.
func Denoise(buf *raster.Buffer, strength float32) {
	if strength <= 0 {
		return
	}

	r := int(math.Ceil(float64(strength) * 2))
	w, h := buf.Width, buf.Height
	if w < 2*r+1 || h < 2*r+1 {
		// No pixel has a full window.
		return
	}

	src := snapshot(buf.Pix)
	s := float64(strength)
	side := 2*r + 1

	parallelRows(r, h-r, func(y0, y1 int) {
		window := make([]int, 0, side*side)
		for y := y0; y < y1; y++ {
			for x := r; x < w-r; x++ {
				i := buf.Offset(x, y)
				for ch := 0; ch < 3; ch++ {
					window = window[:0]
					for wy := y - r; wy <= y+r; wy++ {
						o := (wy*w+x-r)*4 + ch
						for wx := 0; wx < side; wx++ {
							window = append(window, int(src[o]))
							o += 4
						}
					}
					sort.Ints(window)
					median := float64(window[len(window)/2])
					original := float64(src[i+ch])
					buf.Pix[i+ch] = clampByte(original*(1-s) + median*s)
				}
			}
		}
	})
}
