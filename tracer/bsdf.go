package tracer

import (
	"math"
	"math/rand"

	"github.com/prism-render/prism/scene"
	"github.com/prism-render/prism/types"
)

// The outcome of a scatter event: the continuation ray and the throughput
// multiplier for the sampled wavelength. The weight never exceeds 1; no
// material amplifies energy.
type scatterResult struct {
	ray    types.Ray
	weight float32
}

// scatter evaluates the BSDF of a non-emissive material at a hit point for
// one wavelength. Dispatch is a switch over the closed material set.
func scatter(mat *scene.Material, ray types.Ray, hit scene.Hit, wavelength float32, rng *rand.Rand) scatterResult {
	switch mat.Type {
	case scene.RefractiveMaterial:
		return scatterRefractive(mat, ray, hit, wavelength, rng)
	case scene.MirrorMaterial:
		return scatterMirror(mat, ray, hit, wavelength)
	}
	return scatterResult{}
}

// Refractive surfaces importance-sample the Fresnel term: the path reflects
// with probability equal to the Fresnel reflectance at ior(λ) and refracts
// otherwise, so no explicit reflectance weight is applied (the estimate
// stays unbiased). Total internal reflection falls back to pure reflection.
func scatterRefractive(mat *scene.Material, ray types.Ray, hit scene.Hit, wavelength float32, rng *rand.Rand) scatterResult {
	ior := mat.IORAt(wavelength)

	normal := hit.Normal
	cosIn := -ray.Dir.Dot(normal)
	eta := 1 / ior
	if cosIn < 0 {
		// Leaving the medium: flip the shading normal and invert the ratio.
		normal = normal.Neg()
		cosIn = -cosIn
		eta = ior
	}
	cosIn = minf(cosIn, 1)

	sinIn := float32(math.Sqrt(float64(maxf(0, 1-cosIn*cosIn))))
	totalInternal := eta*sinIn > 1

	var dir types.Vec3
	if totalInternal || schlick(cosIn, eta) > rng.Float32() {
		dir = reflect(ray.Dir, normal)
	} else {
		dir = refract(ray.Dir, normal, eta, cosIn)
	}

	return scatterResult{
		ray:    types.NewRay(hit.Point, dir),
		weight: clamp01(mat.Reflectance.Evaluate(wavelength)),
	}
}

// Mirror surfaces reflect deterministically. The effective reflectance
// blends the base color at the sampled wavelength with a Fresnel term at
// the actual incidence angle, controlled by the material's FresnelBlend.
func scatterMirror(mat *scene.Material, ray types.Ray, hit scene.Hit, wavelength float32) scatterResult {
	normal := hit.Normal
	cosIn := -ray.Dir.Dot(normal)
	if cosIn < 0 {
		normal = normal.Neg()
		cosIn = -cosIn
	}
	cosIn = minf(cosIn, 1)

	weight := clamp01(mat.Reflectance.Evaluate(wavelength))
	if mat.FresnelBlend > 0 {
		fresnel := schlick(cosIn, 1/mat.FresnelIOR)
		weight = clamp01(weight*(1-mat.FresnelBlend) + fresnel*mat.FresnelBlend)
	}

	return scatterResult{
		ray:    types.NewRay(hit.Point, reflect(ray.Dir, normal)),
		weight: weight,
	}
}

// emittedRadiance evaluates an emissive material at the sampled wavelength.
func emittedRadiance(mat *scene.Material, wavelength float32) float32 {
	return mat.Emission.Evaluate(wavelength) * mat.EmissionScale()
}

// Mirror an incident direction about a normal.
func reflect(dir, normal types.Vec3) types.Vec3 {
	return dir.Sub(normal.Mul(2 * dir.Dot(normal)))
}

// Bend an incident direction through an interface per Snell's law. The
// caller guarantees that refraction has a real solution (no total internal
// reflection) and supplies the cosine of the incident angle.
func refract(dir, normal types.Vec3, eta, cosIn float32) types.Vec3 {
	perp := dir.Add(normal.Mul(cosIn)).Mul(eta)
	parallelLen := 1 - perp.Dot(perp)
	parallel := normal.Mul(-float32(math.Sqrt(float64(maxf(0, parallelLen)))))
	return perp.Add(parallel)
}

// Schlick's approximation of the Fresnel reflectance for a dielectric
// interface with relative index of refraction eta.
func schlick(cosine, eta float32) float32 {
	r0 := (1 - eta) / (1 + eta)
	r0 = r0 * r0
	return r0 + (1-r0)*float32(math.Pow(float64(1-cosine), 5))
}

func clamp01(v float32) float32 {
	if v < 0 || v != v { // reject negatives and NaN
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
