// In-place enhancement filters over raster buffers.
//
// Every filter follows the same pass discipline: read from an immutable
// snapshot of the pre-filter pixels, write into the live buffer. A pixel's
// filtered value never feeds another pixel's computation within the same
// pass, which also makes per-row slices independent.
package filters

import (
	"runtime"
	"sync"
)

// More workers than this stop paying off for memory-bound per-pixel passes.
var defaultWorkers = min(6, runtime.NumCPU())

// parallelRows runs fn over [start, stop) split into contiguous row chunks,
// one chunk per worker. fn must only write rows inside its own range.
func parallelRows(start, stop int, fn func(y0, y1 int)) {
	rows := stop - start
	if rows <= 0 {
		return
	}
	workers := defaultWorkers
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		fn(start, stop)
		return
	}

	chunk := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for y := start; y < stop; y += chunk {
		end := y + chunk
		if end > stop {
			end = stop
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y, end)
	}
	wg.Wait()
}

// snapshot returns an immutable copy of the pixel data for the read side of
// a pass.
func snapshot(pix []byte) []byte {
	src := make([]byte, len(pix))
	copy(src, pix)
	return src
}

// clampByte clamps v to [0, 255] and rounds to the nearest byte.
func clampByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}

// clampRange clamps v to [0, 255] without rounding, for intermediate values
// that stay in float space.
func clampRange(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
