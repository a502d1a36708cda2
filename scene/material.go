package scene

import (
	"fmt"

	"github.com/prism-render/prism/spectrum"
)

type MaterialType uint8

const (
	RefractiveMaterial MaterialType = iota
	MirrorMaterial
	EmissiveMaterial
)

func (t MaterialType) String() string {
	switch t {
	case RefractiveMaterial:
		return "refractive"
	case MirrorMaterial:
		return "mirror"
	case EmissiveMaterial:
		return "emissive"
	}
	return "unknown"
}

// Defines a scene material. The material set is closed; the tracer switches
// on Type rather than dispatching through an interface.
type Material struct {
	// The type of the material.
	Type MaterialType

	// Material name used by surface bindings.
	Name string

	// Reflectance spectrum. Tints refracted/reflected light for refractive
	// materials and provides the base color for mirrors.
	Reflectance spectrum.Spectrum

	// Emitted radiance spectrum (emissive materials only). Several materials
	// may share one emission spectrum with different Scale factors.
	Emission spectrum.Spectrum

	// Emission intensity multiplier. Zero defaults to 1.
	Scale float32

	// Index of refraction at the red end of the visible range
	// (refractive materials only).
	IOR float32

	// Dispersion coefficient; see IORAt.
	Dispersion float32

	// Mix factor between the base color and the Fresnel term
	// (mirror materials only). Zero gives a pure colored mirror.
	FresnelBlend float32

	// Index of refraction used to evaluate the mirror Fresnel term.
	FresnelIOR float32
}

// IORAt returns the wavelength-dependent index of refraction:
//
//	ior(λ) = IOR + Dispersion × (λmax − λ) / (λmax − λmin)
//
// The curve is linear in normalized wavelength and decreases monotonically
// with it, so shorter wavelengths refract more strongly (normal dispersion).
// At λmax the index equals the configured base IOR.
func (m *Material) IORAt(wavelength float32) float32 {
	if m.Dispersion == 0 {
		return m.IOR
	}
	t := (spectrum.MaxWavelength - wavelength) / (spectrum.MaxWavelength - spectrum.MinWavelength)
	return m.IOR + m.Dispersion*t
}

// EmissionScale returns the emission multiplier, defaulting to 1.
func (m *Material) EmissionScale() float32 {
	if m.Scale == 0 {
		return 1
	}
	return m.Scale
}

// Validate material parameters. Configuration errors are fatal and must be
// detected before any rendering starts.
func (m *Material) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("scene: material has no name")
	}

	switch m.Type {
	case RefractiveMaterial:
		if m.IOR < 1 {
			return fmt.Errorf("scene: material %q: index of refraction %f is out of domain (must be >= 1)", m.Name, m.IOR)
		}
		if m.Dispersion < 0 {
			return fmt.Errorf("scene: material %q: dispersion must be non-negative", m.Name)
		}
		if m.Reflectance == nil {
			return fmt.Errorf("scene: material %q: refractive material requires a reflectance spectrum", m.Name)
		}
	case MirrorMaterial:
		if m.Reflectance == nil {
			return fmt.Errorf("scene: material %q: mirror material requires a reflectance spectrum", m.Name)
		}
		if m.FresnelBlend < 0 || m.FresnelBlend > 1 {
			return fmt.Errorf("scene: material %q: fresnel blend %f is out of domain [0, 1]", m.Name, m.FresnelBlend)
		}
		if m.FresnelBlend > 0 && m.FresnelIOR < 1 {
			return fmt.Errorf("scene: material %q: fresnel index of refraction %f is out of domain (must be >= 1)", m.Name, m.FresnelIOR)
		}
	case EmissiveMaterial:
		if m.Emission == nil {
			return fmt.Errorf("scene: material %q: emissive material requires an emission spectrum", m.Name)
		}
		if m.Scale < 0 {
			return fmt.Errorf("scene: material %q: emission scale must be non-negative", m.Name)
		}
	default:
		return fmt.Errorf("scene: material %q: unknown material type %d", m.Name, m.Type)
	}

	return nil
}
