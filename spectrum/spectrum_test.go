package spectrum

import "testing"

func TestInterpolatedEvaluate(t *testing.T) {
	s, err := NewInterpolated([]Point{
		{Wavelength: 400, Intensity: 0.0},
		{Wavelength: 500, Intensity: 1.0},
		{Wavelength: 600, Intensity: 0.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type spec struct {
		wavelength float32
		expected   float32
	}
	specs := []spec{
		{400, 0.0},
		{450, 0.5},
		{500, 1.0},
		{550, 0.75},
		{600, 0.5},
		// Outside the control points the spectrum is zero, not clamped.
		{399, 0.0},
		{601, 0.0},
		// Outside the supported range entirely.
		{100, 0.0},
		{900, 0.0},
	}

	for index, sp := range specs {
		got := s.Evaluate(sp.wavelength)
		if absDelta(got, sp.expected) > 1e-5 {
			t.Fatalf("[spec %d] expected intensity %f at %fnm; got %f", index, sp.expected, sp.wavelength, got)
		}
	}
}

func TestInterpolatedValidation(t *testing.T) {
	type spec struct {
		points []Point
	}
	specs := []spec{
		{nil},
		{[]Point{{500, 1}, {400, 1}}},
		{[]Point{{400, 1}, {400, 2}}},
		{[]Point{{400, -1}}},
	}

	for index, sp := range specs {
		if _, err := NewInterpolated(sp.points); err == nil {
			t.Fatalf("[spec %d] expected constructor error; got none", index)
		}
	}
}

func TestEvaluateNeverNegative(t *testing.T) {
	spectra := []Spectrum{
		Constant(0.5),
		Constant(-1),
		Scale(Constant(0.5), -2),
		Mix(Constant(0), Constant(1), 0.25),
	}

	for index, s := range spectra {
		for wl := float32(300); wl <= 900; wl += 7 {
			if v := s.Evaluate(wl); v < 0 {
				t.Fatalf("[spectrum %d] negative intensity %f at %fnm", index, v, wl)
			}
		}
	}
}

func TestScaleSharesBase(t *testing.T) {
	base := Constant(0.5)
	double := Scale(base, 2)

	if got := double.Evaluate(550); absDelta(got, 1.0) > 1e-5 {
		t.Fatalf("expected scaled intensity 1.0; got %f", got)
	}
	// The base spectrum must be unaffected by the derived view.
	if got := base.Evaluate(550); absDelta(got, 0.5) > 1e-5 {
		t.Fatalf("base spectrum changed: got %f", got)
	}
}

func TestMix(t *testing.T) {
	type spec struct {
		t        float32
		expected float32
	}
	specs := []spec{
		{0, 1.0},
		{0.25, 0.85},
		{1, 0.4},
		// t is clamped.
		{-1, 1.0},
		{2, 0.4},
	}

	a, b := Constant(1.0), Constant(0.4)
	for index, sp := range specs {
		if got := Mix(a, b, sp.t).Evaluate(550); absDelta(got, sp.expected) > 1e-5 {
			t.Fatalf("[spec %d] expected mix %f; got %f", index, sp.expected, got)
		}
	}
}

func TestBinBounds(t *testing.T) {
	// Bins must partition the supported range exactly.
	const count = 7
	lo, _ := BinBounds(0, count)
	if lo != MinWavelength {
		t.Fatalf("expected first bin to start at %f; got %f", MinWavelength, lo)
	}
	for i := 0; i < count-1; i++ {
		_, hi := BinBounds(i, count)
		nextLo, _ := BinBounds(i+1, count)
		if absDelta(hi, nextLo) > 1e-3 {
			t.Fatalf("bin %d ends at %f but bin %d starts at %f", i, hi, i+1, nextLo)
		}
	}
	_, hi := BinBounds(count-1, count)
	if absDelta(hi, MaxWavelength) > 1e-3 {
		t.Fatalf("expected last bin to end at %f; got %f", MaxWavelength, hi)
	}
}

func TestBinRepresentative(t *testing.T) {
	s, err := NewInterpolated([]Point{
		{Wavelength: MinWavelength, Intensity: 1},
		{Wavelength: MaxWavelength, Intensity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, count := range []int{1, 4, 16} {
		for i := 0; i < count; i++ {
			if got := Bin(s, i, count); absDelta(got, 1) > 1e-5 {
				t.Fatalf("expected bin %d/%d of a flat spectrum to be 1; got %f", i, count, got)
			}
		}
	}
}

func absDelta(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
