package spectrum

import "fmt"

// The visible wavelength range supported by all spectra, in nanometers.
// Evaluating a spectrum outside of this range yields zero intensity.
const (
	MinWavelength float32 = 380
	MaxWavelength float32 = 780
)

// A Spectrum maps a wavelength in nanometers to a non-negative intensity.
// Spectra are immutable once constructed and may be freely shared between
// materials and between concurrent render workers. Operations that derive a
// new spectrum (Scale, Mix) never modify their inputs.
type Spectrum interface {
	Evaluate(wavelength float32) float32
}

// A flat spectrum with the same intensity at every supported wavelength.
type Constant float32

func (c Constant) Evaluate(wavelength float32) float32 {
	if wavelength < MinWavelength || wavelength > MaxWavelength || c < 0 {
		return 0
	}
	return float32(c)
}

// A control point of an interpolated spectrum.
type Point struct {
	Wavelength float32
	Intensity  float32
}

// A piecewise-linear spectrum defined by a sorted list of control points.
// Wavelengths before the first or after the last point evaluate to zero.
type Interpolated struct {
	points []Point
}

// Create an interpolated spectrum. The control points must be sorted by
// ascending wavelength and carry non-negative intensities.
func NewInterpolated(points []Point) (*Interpolated, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("spectrum: interpolated spectrum requires at least one control point")
	}
	for i, p := range points {
		if p.Intensity < 0 {
			return nil, fmt.Errorf("spectrum: control point %d has negative intensity %f", i, p.Intensity)
		}
		if i > 0 && points[i-1].Wavelength >= p.Wavelength {
			return nil, fmt.Errorf("spectrum: control points must be sorted by ascending wavelength (point %d)", i)
		}
	}

	owned := make([]Point, len(points))
	copy(owned, points)
	return &Interpolated{points: owned}, nil
}

func (s *Interpolated) Evaluate(wavelength float32) float32 {
	points := s.points
	if wavelength < MinWavelength || wavelength > MaxWavelength {
		return 0
	}
	if wavelength < points[0].Wavelength || wavelength > points[len(points)-1].Wavelength {
		return 0
	}

	// Binary search for the segment containing the wavelength.
	min, max := 0, len(points)-1
	for max > min+1 {
		mid := (min + max) / 2
		if points[mid].Wavelength > wavelength {
			max = mid
		} else {
			min = mid
		}
	}

	p0, p1 := points[min], points[max]
	if p1.Wavelength == p0.Wavelength {
		return p0.Intensity
	}
	t := (wavelength - p0.Wavelength) / (p1.Wavelength - p0.Wavelength)
	return p0.Intensity + (p1.Intensity-p0.Intensity)*t
}

type scaled struct {
	base   Spectrum
	factor float32
}

func (s scaled) Evaluate(wavelength float32) float32 {
	v := s.base.Evaluate(wavelength) * s.factor
	if v < 0 {
		return 0
	}
	return v
}

// Derive a new spectrum that evaluates to factor times the base spectrum.
// The base spectrum is not modified; several materials may scale the same
// shared base spectrum independently.
func Scale(base Spectrum, factor float32) Spectrum {
	if factor == 1 {
		return base
	}
	return scaled{base: base, factor: factor}
}

type mixed struct {
	a, b Spectrum
	t    float32
}

func (s mixed) Evaluate(wavelength float32) float32 {
	return s.a.Evaluate(wavelength)*(1-s.t) + s.b.Evaluate(wavelength)*s.t
}

// Derive a new spectrum that linearly blends a and b. A t of 0 yields a,
// a t of 1 yields b; t is clamped to [0, 1].
func Mix(a, b Spectrum, t float32) Spectrum {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return mixed{a: a, b: b, t: t}
}

// Bin returns the representative intensity of a spectrum for one of count
// equal-width accumulation bins across the supported range. The bin center
// wavelength is used as the representative sample.
func Bin(s Spectrum, index, count int) float32 {
	lo, hi := BinBounds(index, count)
	return s.Evaluate((lo + hi) * 0.5)
}

// BinBounds returns the wavelength interval covered by one of count
// equal-width bins across the supported range.
func BinBounds(index, count int) (float32, float32) {
	width := (MaxWavelength - MinWavelength) / float32(count)
	lo := MinWavelength + float32(index)*width
	return lo, lo + width
}
