package spectrum

import "math"

// CIE 1931 2 degree standard observer color matching functions, abridged to
// 10nm steps over [MinWavelength, MaxWavelength]. Index i corresponds to
// MinWavelength + i*cieStep nanometers.
const cieStep float32 = 10

var cieX = [41]float32{
	0.0014, 0.0042, 0.0143, 0.0435, 0.1344, 0.2839, 0.3483, 0.3362,
	0.2908, 0.1954, 0.0956, 0.0320, 0.0049, 0.0093, 0.0633, 0.1655,
	0.2904, 0.4334, 0.5945, 0.7621, 0.9163, 1.0263, 1.0622, 1.0026,
	0.8544, 0.6424, 0.4479, 0.2835, 0.1649, 0.0874, 0.0468, 0.0227,
	0.0114, 0.0058, 0.0029, 0.0014, 0.0007, 0.0003, 0.0002, 0.0001,
	0.0000,
}

var cieY = [41]float32{
	0.0000, 0.0001, 0.0004, 0.0012, 0.0040, 0.0116, 0.0230, 0.0380,
	0.0600, 0.0910, 0.1390, 0.2080, 0.3230, 0.5030, 0.7100, 0.8620,
	0.9540, 0.9950, 0.9950, 0.9520, 0.8700, 0.7570, 0.6310, 0.5030,
	0.3810, 0.2650, 0.1750, 0.1070, 0.0610, 0.0320, 0.0170, 0.0082,
	0.0041, 0.0021, 0.0010, 0.0005, 0.0002, 0.0001, 0.0001, 0.0000,
	0.0000,
}

var cieZ = [41]float32{
	0.0065, 0.0201, 0.0679, 0.2074, 0.6456, 1.3856, 1.7471, 1.7721,
	1.6692, 1.2876, 0.8130, 0.4652, 0.2720, 0.1582, 0.0782, 0.0422,
	0.0203, 0.0087, 0.0039, 0.0021, 0.0017, 0.0011, 0.0008, 0.0003,
	0.0002, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
	0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
	0.0000,
}

// Integral of the y matching function over the supported range. Used to
// normalize conversions so that a constant unit spectrum maps to Y = 1.
var cieYIntegral = func() float32 {
	var sum float32
	for _, y := range cieY {
		sum += y * cieStep
	}
	return sum
}()

// Sample a color matching function table at an arbitrary wavelength via
// linear interpolation between the tabulated 10nm entries.
func cieSample(table *[41]float32, wavelength float32) float32 {
	if wavelength < MinWavelength || wavelength > MaxWavelength {
		return 0
	}
	pos := (wavelength - MinWavelength) / cieStep
	idx := int(pos)
	if idx >= len(table)-1 {
		return table[len(table)-1]
	}
	t := pos - float32(idx)
	return table[idx]*(1-t) + table[idx+1]*t
}

// BinsToRGB converts an accumulated per-bin spectral radiance estimate into
// a linear sRGB color. Each bin contributes at its center wavelength,
// weighted by the bin width, so the result is independent of the number of
// bins used during accumulation. Negative channel values produced by the
// XYZ transform for saturated spectral colors are clamped to zero.
func BinsToRGB(bins []float32) (float32, float32, float32) {
	if len(bins) == 0 {
		return 0, 0, 0
	}

	var x, y, z float32
	width := (MaxWavelength - MinWavelength) / float32(len(bins))
	for i, intensity := range bins {
		lo, hi := BinBounds(i, len(bins))
		center := (lo + hi) * 0.5
		x += intensity * cieSample(&cieX, center) * width
		y += intensity * cieSample(&cieY, center) * width
		z += intensity * cieSample(&cieZ, center) * width
	}

	x /= cieYIntegral
	y /= cieYIntegral
	z /= cieYIntegral

	// CIE XYZ to linear sRGB (D65 white point).
	r := 3.2406*x - 1.5372*y - 0.4986*z
	g := -0.9689*x + 1.8758*y + 0.0415*z
	b := 0.0557*x - 0.2040*y + 1.0570*z

	return maxf(r, 0), maxf(g, 0), maxf(b, 0)
}

// EncodeSRGB applies the sRGB transfer curve to a linear channel value and
// quantizes it to 8 bits. Inputs outside [0, 1] are clamped.
func EncodeSRGB(c float32) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	var enc float64
	if c <= 0.0031308 {
		enc = 12.92 * float64(c)
	} else {
		enc = 1.055*math.Pow(float64(c), 1/2.4) - 0.055
	}
	return uint8(enc*255 + 0.5)
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
