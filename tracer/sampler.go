package tracer

import (
	"math/rand"

	"github.com/prism-render/prism/spectrum"
	"github.com/prism-render/prism/types"
)

// SampleWavelength draws a wavelength uniformly from one of count
// equal-width strata over the supported spectral range. Stratifying the
// draws over the accumulation bins keeps every bin populated at equal rate.
func SampleWavelength(rng *rand.Rand, bin, count int) float32 {
	lo, hi := spectrum.BinBounds(bin, count)
	return lo + rng.Float32()*(hi-lo)
}

// SampleDisk draws a point uniformly from the unit disk by rejection.
func SampleDisk(rng *rand.Rand) types.Vec2 {
	for {
		p := types.XY(2*rng.Float32()-1, 2*rng.Float32()-1)
		if p[0]*p[0]+p[1]*p[1] <= 1 {
			return p
		}
	}
}
