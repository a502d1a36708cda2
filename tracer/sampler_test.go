package tracer

import (
	"math/rand"
	"testing"

	"github.com/prism-render/prism/spectrum"
)

func TestSampleWavelengthStaysInStratum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, count := range []int{1, 4, 8, 16} {
		for bin := 0; bin < count; bin++ {
			lo, hi := spectrum.BinBounds(bin, count)
			for i := 0; i < 200; i++ {
				wavelength := SampleWavelength(rng, bin, count)
				if wavelength < lo || wavelength > hi {
					t.Fatalf("bin %d of %d: wavelength %f outside [%f, %f]", bin, count, wavelength, lo, hi)
				}
			}
		}
	}
}

func TestSampleDisk(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inHalf := 0
	const samples = 20000
	for i := 0; i < samples; i++ {
		p := SampleDisk(rng)
		if r2 := p[0]*p[0] + p[1]*p[1]; r2 > 1 {
			t.Fatalf("[sample %d] point %v outside unit disk", i, p)
		} else if r2 <= 0.5 {
			inHalf++
		}
	}

	// Uniform density: half the disk area holds half the samples.
	got := float32(inHalf) / samples
	if absDelta(got, 0.5) > 0.02 {
		t.Fatalf("expected half the samples within r^2 <= 0.5; got fraction %f", got)
	}
}
