// Package reader loads scene descriptions from JSON documents. It is the
// boundary between external configuration and the render core: it produces
// the immutable scene graph and render options, and every malformed field
// is reported as a fatal error before any pixel work begins.
package reader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/prism-render/prism/renderer"
	"github.com/prism-render/prism/scene"
	"github.com/prism-render/prism/spectrum"
	"github.com/prism-render/prism/types"
)

type sceneFile struct {
	Camera    cameraDef              `json:"camera"`
	Spectra   map[string]spectrumDef `json:"spectra"`
	Materials map[string]materialDef `json:"materials"`
	Surfaces  []surfaceDef           `json:"surfaces"`
	Renderer  rendererDef            `json:"renderer"`
}

type cameraDef struct {
	Position  [3]float32 `json:"position"`
	LookAt    [3]float32 `json:"look_at"`
	Up        [3]float32 `json:"up"`
	FOV       float32    `json:"fov"`
	FocusDist float32    `json:"focus_distance"`
	Aperture  float32    `json:"aperture"`
}

// A spectrum is either a flat value or a list of [wavelength, intensity]
// control points.
type spectrumDef struct {
	Value  *float32     `json:"value"`
	Points [][2]float32 `json:"points"`
}

// A spectral parameter of a material: a reference into the shared spectra
// table, or an inline flat value. Scale derives a scaled view of the
// referenced spectrum without copying it.
type colorDef struct {
	Spectrum string   `json:"spectrum"`
	Value    *float32 `json:"value"`
	Scale    float32  `json:"scale"`
}

type materialDef struct {
	Type         string    `json:"type"`
	Reflectance  *colorDef `json:"reflectance"`
	Emission     *colorDef `json:"emission"`
	IOR          float32   `json:"ior"`
	Dispersion   float32   `json:"dispersion"`
	FresnelBlend float32   `json:"fresnel_blend"`
	FresnelIOR   float32   `json:"fresnel_ior"`
}

type surfaceDef struct {
	Type     string     `json:"type"`
	Material string     `json:"material"`
	Center   [3]float32 `json:"center"`
	Radius   float32    `json:"radius"`
	Normal   [3]float32 `json:"normal"`
	Distance float32    `json:"distance"`
}

type rendererDef struct {
	Width           uint32  `json:"width"`
	Height          uint32  `json:"height"`
	PixelSamples    uint32  `json:"pixel_samples"`
	SpectrumSamples uint32  `json:"spectrum_samples"`
	SpectrumBins    uint32  `json:"spectrum_bins"`
	TileSize        uint32  `json:"tile_size"`
	Bounces         uint32  `json:"bounces"`
	Exposure        float32 `json:"exposure"`
	Seed            int64   `json:"seed"`
}

// ReadScene loads a scene description from a file.
func ReadScene(path string) (*scene.Scene, renderer.Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, renderer.Options{}, fmt.Errorf("reader: %v", err)
	}
	defer f.Close()

	sc, opts, err := Parse(f)
	if err != nil {
		return nil, renderer.Options{}, fmt.Errorf("reader: %s: %v", path, err)
	}
	return sc, opts, nil
}

// Parse decodes a scene description document.
func Parse(r io.Reader) (*scene.Scene, renderer.Options, error) {
	var file sceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, renderer.Options{}, fmt.Errorf("malformed scene description: %v", err)
	}

	spectra, err := buildSpectra(file.Spectra)
	if err != nil {
		return nil, renderer.Options{}, err
	}

	sc := scene.NewScene()
	names := make([]string, 0, len(file.Materials))
	for name := range file.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mat, err := buildMaterial(name, file.Materials[name], spectra)
		if err != nil {
			return nil, renderer.Options{}, err
		}
		if err := sc.AddMaterial(mat); err != nil {
			return nil, renderer.Options{}, err
		}
	}

	for i, def := range file.Surfaces {
		surface, err := buildSurface(i, def, sc)
		if err != nil {
			return nil, renderer.Options{}, err
		}
		if err := sc.AddSurface(surface); err != nil {
			return nil, renderer.Options{}, err
		}
	}

	cam := scene.NewCamera(file.Camera.FOV)
	cam.Position = types.Vec3(file.Camera.Position)
	cam.LookAt = types.Vec3(file.Camera.LookAt)
	if file.Camera.Up != [3]float32{} {
		cam.Up = types.Vec3(file.Camera.Up)
	}
	cam.FocusDist = file.Camera.FocusDist
	cam.Aperture = file.Camera.Aperture
	sc.SetCamera(cam)

	opts := renderer.Options{
		FrameW:          file.Renderer.Width,
		FrameH:          file.Renderer.Height,
		SamplesPerPixel: file.Renderer.PixelSamples,
		SpectrumSamples: file.Renderer.SpectrumSamples,
		SpectrumBins:    file.Renderer.SpectrumBins,
		TileSize:        file.Renderer.TileSize,
		NumBounces:      file.Renderer.Bounces,
		Exposure:        file.Renderer.Exposure,
		Seed:            file.Renderer.Seed,
	}
	applyOptionDefaults(&opts)

	return sc, opts, nil
}

func buildSpectra(defs map[string]spectrumDef) (map[string]spectrum.Spectrum, error) {
	spectra := make(map[string]spectrum.Spectrum, len(defs))
	for name, def := range defs {
		s, err := buildSpectrum(def)
		if err != nil {
			return nil, fmt.Errorf("spectrum %q: %v", name, err)
		}
		spectra[name] = s
	}
	return spectra, nil
}

func buildSpectrum(def spectrumDef) (spectrum.Spectrum, error) {
	switch {
	case def.Value != nil && def.Points != nil:
		return nil, fmt.Errorf("'value' and 'points' are mutually exclusive")
	case def.Value != nil:
		if *def.Value < 0 {
			return nil, fmt.Errorf("negative intensity %f", *def.Value)
		}
		return spectrum.Constant(*def.Value), nil
	case def.Points != nil:
		points := make([]spectrum.Point, len(def.Points))
		for i, p := range def.Points {
			points[i] = spectrum.Point{Wavelength: p[0], Intensity: p[1]}
		}
		return spectrum.NewInterpolated(points)
	}
	return nil, fmt.Errorf("missing 'value' or 'points'")
}

func resolveColor(def *colorDef, spectra map[string]spectrum.Spectrum) (spectrum.Spectrum, error) {
	if def == nil {
		return nil, nil
	}
	if def.Spectrum != "" && def.Value != nil {
		return nil, fmt.Errorf("'spectrum' and 'value' are mutually exclusive")
	}

	var s spectrum.Spectrum
	switch {
	case def.Spectrum != "":
		base, ok := spectra[def.Spectrum]
		if !ok {
			return nil, fmt.Errorf("unknown spectrum %q", def.Spectrum)
		}
		s = base
	case def.Value != nil:
		if *def.Value < 0 {
			return nil, fmt.Errorf("negative intensity %f", *def.Value)
		}
		s = spectrum.Constant(*def.Value)
	default:
		return nil, fmt.Errorf("missing 'spectrum' or 'value'")
	}

	if def.Scale != 0 && def.Scale != 1 {
		if def.Scale < 0 {
			return nil, fmt.Errorf("negative scale %f", def.Scale)
		}
		s = spectrum.Scale(s, def.Scale)
	}
	return s, nil
}

func buildMaterial(name string, def materialDef, spectra map[string]spectrum.Spectrum) (*scene.Material, error) {
	reflectance, err := resolveColor(def.Reflectance, spectra)
	if err != nil {
		return nil, fmt.Errorf("material %q: reflectance: %v", name, err)
	}
	emission, err := resolveColor(def.Emission, spectra)
	if err != nil {
		return nil, fmt.Errorf("material %q: emission: %v", name, err)
	}

	mat := &scene.Material{
		Name:         name,
		Reflectance:  reflectance,
		Emission:     emission,
		IOR:          def.IOR,
		Dispersion:   def.Dispersion,
		FresnelBlend: def.FresnelBlend,
		FresnelIOR:   def.FresnelIOR,
	}

	switch def.Type {
	case "refractive":
		mat.Type = scene.RefractiveMaterial
		if mat.Reflectance == nil {
			mat.Reflectance = spectrum.Constant(1)
		}
	case "mirror":
		mat.Type = scene.MirrorMaterial
	case "emissive":
		mat.Type = scene.EmissiveMaterial
	default:
		return nil, fmt.Errorf("material %q: unknown material type %q", name, def.Type)
	}

	return mat, nil
}

func buildSurface(index int, def surfaceDef, sc *scene.Scene) (scene.Surface, error) {
	mat, ok := sc.MaterialByName(def.Material)
	if !ok {
		return nil, fmt.Errorf("surfaces[%d]: unknown material %q", index, def.Material)
	}

	switch def.Type {
	case "sphere":
		if def.Radius <= 0 {
			return nil, fmt.Errorf("surfaces[%d]: sphere radius must be positive", index)
		}
		return scene.NewSphere(types.Vec3(def.Center), def.Radius, mat), nil
	case "plane":
		n := types.Vec3(def.Normal)
		if n.Len() == 0 {
			return nil, fmt.Errorf("surfaces[%d]: plane normal must be non-zero", index)
		}
		return scene.NewPlane(n, def.Distance, mat), nil
	}
	return nil, fmt.Errorf("surfaces[%d]: unknown surface type %q", index, def.Type)
}

func applyOptionDefaults(opts *renderer.Options) {
	if opts.FrameW == 0 {
		opts.FrameW = 512
	}
	if opts.FrameH == 0 {
		opts.FrameH = 512
	}
	if opts.SamplesPerPixel == 0 {
		opts.SamplesPerPixel = 16
	}
	if opts.SpectrumSamples == 0 {
		opts.SpectrumSamples = 1
	}
	if opts.SpectrumBins == 0 {
		opts.SpectrumBins = 8
	}
	if opts.TileSize == 0 {
		opts.TileSize = 32
	}
	if opts.NumBounces == 0 {
		opts.NumBounces = 8
	}
	if opts.Exposure == 0 {
		opts.Exposure = 1
	}
}
