package tracer

import (
	"math/rand"
	"testing"

	"github.com/prism-render/prism/scene"
	"github.com/prism-render/prism/spectrum"
	"github.com/prism-render/prism/types"
)

// A closed box of six planes bound to the given material, enclosing the
// region [-3, 3] on every axis.
func enclosingBox(t *testing.T, sc *scene.Scene, mat *scene.Material) {
	t.Helper()
	normals := []types.Vec3{
		types.XYZ(1, 0, 0), types.XYZ(-1, 0, 0),
		types.XYZ(0, 1, 0), types.XYZ(0, -1, 0),
		types.XYZ(0, 0, 1), types.XYZ(0, 0, -1),
	}
	for _, n := range normals {
		if err := sc.AddSurface(scene.NewPlane(n, 3, mat)); err != nil {
			t.Fatalf("add box plane: %v", err)
		}
	}
}

func mustAddMaterial(t *testing.T, sc *scene.Scene, mat *scene.Material) {
	t.Helper()
	if err := sc.AddMaterial(mat); err != nil {
		t.Fatalf("add material %q: %v", mat.Name, err)
	}
}

// A path that hits an emitter directly must report the emitted radiance
// exactly, with no estimator noise.
func TestDirectEmission(t *testing.T) {
	type spec struct {
		scale    float32
		expected float32
	}
	specs := []spec{
		{0, 1},   // zero scale defaults to 1
		{1, 1},
		{2.5, 2.5},
	}

	for index, sp := range specs {
		sc := scene.NewScene()
		light := &scene.Material{
			Type:     scene.EmissiveMaterial,
			Name:     "light",
			Emission: spectrum.Constant(1),
			Scale:    sp.scale,
		}
		mustAddMaterial(t, sc, light)
		if err := sc.AddSurface(scene.NewPlane(types.XYZ(0, 0, 1), -5, light)); err != nil {
			t.Fatalf("[spec %d] add plane: %v", index, err)
		}

		pt := NewPathTracer(8)
		rng := rand.New(rand.NewSource(1))
		for _, wavelength := range []float32{400, 550, 700} {
			ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
			if got := pt.Trace(sc, ray, wavelength, rng); got != sp.expected {
				t.Fatalf("[spec %d] expected radiance %f at %fnm; got %f", index, sp.expected, wavelength, got)
			}
		}
	}
}

func TestMissContributesNothing(t *testing.T) {
	sc := scene.NewScene()
	light := &scene.Material{Type: scene.EmissiveMaterial, Name: "light", Emission: spectrum.Constant(1)}
	mustAddMaterial(t, sc, light)
	if err := sc.AddSurface(scene.NewSphere(types.XYZ(0, 0, -5), 1, light)); err != nil {
		t.Fatalf("add sphere: %v", err)
	}

	pt := NewPathTracer(8)
	rng := rand.New(rand.NewSource(1))
	ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0))
	if got := pt.Trace(sc, ray, 550, rng); got != 0 {
		t.Fatalf("expected escaped path to contribute 0; got %f", got)
	}
}

// In a sealed mirror box with no emitter every path must exhaust its bounce
// budget and return zero rather than loop forever.
func TestBounceBudgetExhaustion(t *testing.T) {
	sc := scene.NewScene()
	mirror := &scene.Material{Type: scene.MirrorMaterial, Name: "mirror", Reflectance: spectrum.Constant(1)}
	mustAddMaterial(t, sc, mirror)
	enclosingBox(t, sc, mirror)

	pt := NewPathTracer(16)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		dir := types.XYZ(rng.Float32()*2-1, rng.Float32()*2-1, rng.Float32()*2-1)
		if dir.Len() == 0 {
			continue
		}
		ray := types.NewRay(types.XYZ(0.5, -0.25, 0.75), dir)
		if got := pt.Trace(sc, ray, 550, rng); got != 0 {
			t.Fatalf("[path %d] expected exhausted path to return 0; got %f", i, got)
		}
	}
}

// A zero-reflectance surface kills the path even when an emitter sits right
// behind the next bounce.
func TestZeroThroughputTerminates(t *testing.T) {
	sc := scene.NewScene()
	black := &scene.Material{Type: scene.MirrorMaterial, Name: "black", Reflectance: spectrum.Constant(0)}
	light := &scene.Material{Type: scene.EmissiveMaterial, Name: "light", Emission: spectrum.Constant(1)}
	mustAddMaterial(t, sc, black)
	mustAddMaterial(t, sc, light)
	if err := sc.AddSurface(scene.NewPlane(types.XYZ(0, 0, 1), -5, black)); err != nil {
		t.Fatalf("add plane: %v", err)
	}
	if err := sc.AddSurface(scene.NewPlane(types.XYZ(0, 0, -1), -5, light)); err != nil {
		t.Fatalf("add light plane: %v", err)
	}

	pt := NewPathTracer(8)
	rng := rand.New(rand.NewSource(1))
	ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	if got := pt.Trace(sc, ray, 550, rng); got != 0 {
		t.Fatalf("expected zero-throughput path to return 0; got %f", got)
	}
}

// Raising the bounce budget can only let formerly truncated paths reach a
// light. With identical random streams the per-path estimate must therefore
// be non-decreasing in the budget.
func TestRadianceMonotonicInBounceBudget(t *testing.T) {
	sc := scene.NewScene()
	mirror := &scene.Material{Type: scene.MirrorMaterial, Name: "mirror", Reflectance: spectrum.Constant(0.9)}
	light := &scene.Material{Type: scene.EmissiveMaterial, Name: "light", Emission: spectrum.Constant(1)}
	mustAddMaterial(t, sc, mirror)
	mustAddMaterial(t, sc, light)
	enclosingBox(t, sc, mirror)
	if err := sc.AddSurface(scene.NewSphere(types.XYZ(0, 0, 0), 0.5, light)); err != nil {
		t.Fatalf("add light sphere: %v", err)
	}

	origin := types.XYZ(1.5, 0.8, -0.7)
	dirRng := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		dir := types.XYZ(dirRng.Float32()*2-1, dirRng.Float32()*2-1, dirRng.Float32()*2-1)
		if dir.Len() == 0 {
			continue
		}
		ray := types.NewRay(origin, dir)

		prev := float32(0)
		for budget := 0; budget <= 8; budget++ {
			// Mirror scattering is deterministic, but keep the streams
			// aligned anyway so the path prefixes are identical.
			rng := rand.New(rand.NewSource(int64(i)))
			got := NewPathTracer(budget).Trace(sc, ray, 550, rng)
			if got < prev {
				t.Fatalf("[path %d] radiance dropped from %f to %f when budget grew to %d", i, prev, got, budget)
			}
			prev = got
		}
	}
}

// A path with exactly MaxBounces scatter events must still be able to
// collect emission on its next hit.
func TestEmissionCollectedAtBudgetBoundary(t *testing.T) {
	sc := scene.NewScene()
	mirror := &scene.Material{Type: scene.MirrorMaterial, Name: "mirror", Reflectance: spectrum.Constant(1)}
	light := &scene.Material{Type: scene.EmissiveMaterial, Name: "light", Emission: spectrum.Constant(1)}
	mustAddMaterial(t, sc, mirror)
	mustAddMaterial(t, sc, light)

	// Mirror at z=-5 bounces the ray straight back into a light at z=+5.
	if err := sc.AddSurface(scene.NewPlane(types.XYZ(0, 0, 1), -5, mirror)); err != nil {
		t.Fatalf("add mirror plane: %v", err)
	}
	if err := sc.AddSurface(scene.NewPlane(types.XYZ(0, 0, -1), -5, light)); err != nil {
		t.Fatalf("add light plane: %v", err)
	}

	ray := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	rng := rand.New(rand.NewSource(1))

	// One scatter is needed; a budget of exactly 1 must suffice.
	if got := NewPathTracer(1).Trace(sc, ray, 550, rng); got != 1 {
		t.Fatalf("expected budget of 1 to reach the light; got radiance %f", got)
	}
	if got := NewPathTracer(0).Trace(sc, ray, 550, rng); got != 0 {
		t.Fatalf("expected budget of 0 to truncate the path; got radiance %f", got)
	}
}
