package tracer

import (
	"math/rand"

	"github.com/prism-render/prism/scene"
	"github.com/prism-render/prism/types"
)

// PathTracer follows single Monte Carlo light paths through a scene, one
// wavelength at a time. It is stateless apart from its configuration and
// safe for concurrent use; every randomized decision draws from the rng
// passed to Trace so workers keep private streams.
type PathTracer struct {
	// Maximum number of scatter events before a path is abandoned. This is
	// the only hard termination cap; there is no russian roulette.
	MaxBounces int
}

func NewPathTracer(maxBounces int) *PathTracer {
	return &PathTracer{MaxBounces: maxBounces}
}

// Trace runs one light path for the given wavelength and returns its
// radiance estimate. A path terminates when it escapes the scene, when it
// hits an emissive surface (emission ends a path; emissive surfaces do not
// scatter), when its throughput reaches zero, or when the bounce budget is
// spent.
func (pt *PathTracer) Trace(sc *scene.Scene, ray types.Ray, wavelength float32, rng *rand.Rand) float32 {
	throughput := float32(1)

	for bounce := 0; ; bounce++ {
		hit, ok := sc.Intersect(ray)
		if !ok {
			// Escaped into the background, which contributes nothing.
			return 0
		}

		mat := hit.Material
		if mat.Type == scene.EmissiveMaterial {
			return throughput * emittedRadiance(mat, wavelength)
		}

		if bounce == pt.MaxBounces {
			// Budget spent before reaching a light.
			return 0
		}

		res := scatter(mat, ray, hit, wavelength, rng)
		throughput *= res.weight
		if throughput == 0 {
			return 0
		}
		ray = res.ray
	}
}
