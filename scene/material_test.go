package scene

import (
	"testing"

	"github.com/prism-render/prism/spectrum"
)

func TestMaterialValidation(t *testing.T) {
	type spec struct {
		material Material
		valid    bool
	}
	specs := []spec{
		{Material{Type: RefractiveMaterial, Name: "glass", IOR: 1.5, Reflectance: spectrum.Constant(1)}, true},
		{Material{Type: RefractiveMaterial, Name: "glass", IOR: 0.5, Reflectance: spectrum.Constant(1)}, false},
		{Material{Type: RefractiveMaterial, Name: "glass", IOR: 1.5, Dispersion: -0.1, Reflectance: spectrum.Constant(1)}, false},
		{Material{Type: RefractiveMaterial, Name: "glass", IOR: 1.5}, false},
		{Material{Type: MirrorMaterial, Name: "mirror", Reflectance: spectrum.Constant(0.9)}, true},
		{Material{Type: MirrorMaterial, Name: "mirror", Reflectance: spectrum.Constant(0.9), FresnelBlend: 0.5, FresnelIOR: 1.8}, true},
		{Material{Type: MirrorMaterial, Name: "mirror", Reflectance: spectrum.Constant(0.9), FresnelBlend: 1.5, FresnelIOR: 1.8}, false},
		{Material{Type: MirrorMaterial, Name: "mirror", Reflectance: spectrum.Constant(0.9), FresnelBlend: 0.5, FresnelIOR: 0}, false},
		{Material{Type: MirrorMaterial, Name: "mirror"}, false},
		{Material{Type: EmissiveMaterial, Name: "light", Emission: spectrum.Constant(1)}, true},
		{Material{Type: EmissiveMaterial, Name: "light", Emission: spectrum.Constant(1), Scale: -2}, false},
		{Material{Type: EmissiveMaterial, Name: "light"}, false},
		{Material{Type: EmissiveMaterial, Emission: spectrum.Constant(1)}, false},
		{Material{Type: MaterialType(42), Name: "weird"}, false},
	}

	for index, sp := range specs {
		err := sp.material.Validate()
		if sp.valid && err != nil {
			t.Fatalf("[spec %d] expected material to be valid; got %v", index, err)
		}
		if !sp.valid && err == nil {
			t.Fatalf("[spec %d] expected a validation error; got none", index)
		}
	}
}

// The dispersion curve must decrease monotonically with wavelength and
// equal the base index at the red end of the range.
func TestDispersionCurve(t *testing.T) {
	mat := Material{Type: RefractiveMaterial, Name: "glass", IOR: 1.5, Dispersion: 0.05, Reflectance: spectrum.Constant(1)}

	if got := mat.IORAt(spectrum.MaxWavelength); got != 1.5 {
		t.Fatalf("expected base ior at %fnm; got %f", spectrum.MaxWavelength, got)
	}

	prev := mat.IORAt(spectrum.MinWavelength)
	if prev != 1.55 {
		t.Fatalf("expected ior 1.55 at %fnm; got %f", spectrum.MinWavelength, prev)
	}
	for wl := spectrum.MinWavelength + 10; wl <= spectrum.MaxWavelength; wl += 10 {
		cur := mat.IORAt(wl)
		if cur > prev {
			t.Fatalf("ior increased with wavelength at %fnm: %f > %f", wl, cur, prev)
		}
		prev = cur
	}
}

func TestEmissionScaleSharedSpectrum(t *testing.T) {
	// Two emitters deriving from one shared spectrum with different scales.
	base := spectrum.Constant(0.8)
	left := Material{Type: EmissiveMaterial, Name: "light_left", Emission: base}
	right := Material{Type: EmissiveMaterial, Name: "light_right", Emission: base, Scale: 2}

	if got := left.Emission.Evaluate(550) * left.EmissionScale(); got != 0.8 {
		t.Fatalf("expected left emitter radiance 0.8; got %f", got)
	}
	if got := right.Emission.Evaluate(550) * right.EmissionScale(); got != 1.6 {
		t.Fatalf("expected right emitter radiance 1.6; got %f", got)
	}
}
