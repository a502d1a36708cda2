package renderer

import (
	"image"
	"image/color"

	"github.com/prism-render/prism/spectrum"
)

// Per-tile spectral accumulator. Each tile allocates its own accumulator
// when a worker picks it up and releases it after the tile's pixels have
// been resolved to display colors, so no synchronization is needed: the
// accumulator is only ever touched by the worker that owns the tile.
type tileAccumulator struct {
	tile tile
	bins int

	// Running per-bin radiance sums, w*h*bins values in row-major order.
	sums []float32

	// Per-bin sample counts, same layout as sums.
	counts []uint32

	scratch []float32
}

func newTileAccumulator(t tile, bins int) *tileAccumulator {
	n := int(t.w) * int(t.h) * bins
	return &tileAccumulator{
		tile:    t,
		bins:    bins,
		sums:    make([]float32, n),
		counts:  make([]uint32, n),
		scratch: make([]float32, bins),
	}
}

// Deposit one wavelength radiance sample. x and y are frame coordinates.
func (a *tileAccumulator) add(x, y uint32, bin int, radiance float32) {
	idx := (int(y-a.tile.y)*int(a.tile.w)+int(x-a.tile.x))*a.bins + bin
	a.sums[idx] += radiance
	a.counts[idx]++
}

// binMeans returns the per-bin radiance estimate for a pixel. The returned
// slice is reused between calls.
func (a *tileAccumulator) binMeans(x, y uint32) []float32 {
	base := (int(y-a.tile.y)*int(a.tile.w) + int(x-a.tile.x)) * a.bins
	for b := 0; b < a.bins; b++ {
		if c := a.counts[base+b]; c > 0 {
			a.scratch[b] = a.sums[base+b] / float32(c)
		} else {
			a.scratch[b] = 0
		}
	}
	return a.scratch
}

// resolve converts the tile's accumulated spectra to display colors and
// writes them into the frame image. Each pixel is written exactly once and
// tiles cover disjoint regions, so concurrent resolves need no locking.
func (a *tileAccumulator) resolve(img *image.RGBA, exposure float32) {
	for y := a.tile.y; y < a.tile.y+a.tile.h; y++ {
		for x := a.tile.x; x < a.tile.x+a.tile.w; x++ {
			r, g, b := spectrum.BinsToRGB(a.binMeans(x, y))
			img.SetRGBA(int(x), int(y), color.RGBA{
				R: spectrum.EncodeSRGB(r * exposure),
				G: spectrum.EncodeSRGB(g * exposure),
				B: spectrum.EncodeSRGB(b * exposure),
				A: 255,
			})
		}
	}
}
