package scene

import (
	"math"

	"github.com/prism-render/prism/types"
)

// Hits closer than this are discarded to keep scattered rays from
// re-intersecting the surface they originate from.
const distEpsilon = 1e-4

// The nearest intersection of a ray with a surface. Normal is the geometric
// surface normal; the tracer orients it against the incident ray.
type Hit struct {
	Point    types.Vec3
	Normal   types.Vec3
	Distance float32
	Material *Material
}

// A Surface answers nearest-intersection queries. Implementations must be
// safe for concurrent read-only use; a render never mutates surfaces.
type Surface interface {
	Intersect(ray types.Ray) (Hit, bool)

	// The material bound to this surface. Surfaces reference shared
	// materials, they do not own them.
	BoundMaterial() *Material
}

// A sphere surface.
type Sphere struct {
	Origin   types.Vec3
	Radius   float32
	Material *Material
}

// Create a new sphere surface.
func NewSphere(origin types.Vec3, radius float32, material *Material) *Sphere {
	return &Sphere{
		Origin:   origin,
		Radius:   radius,
		Material: material,
	}
}

func (s *Sphere) Intersect(ray types.Ray) (Hit, bool) {
	oc := ray.Origin.Sub(s.Origin)
	b := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discr := b*b - c
	if discr < 0 {
		return Hit{}, false
	}

	root := float32(math.Sqrt(float64(discr)))
	dist := -b - root
	if dist < distEpsilon {
		// Ray origin is inside the sphere or past the near intersection;
		// try the far one.
		dist = -b + root
	}
	if dist < distEpsilon {
		return Hit{}, false
	}

	point := ray.PointAt(dist)
	return Hit{
		Point:    point,
		Normal:   point.Sub(s.Origin).Mul(1 / s.Radius),
		Distance: dist,
		Material: s.Material,
	}, true
}

// An infinite plane surface satisfying dot(Normal, p) = Dist.
type Plane struct {
	Normal   types.Vec3
	Dist     float32
	Material *Material
}

// Create a new plane surface. The normal is normalized on construction.
func NewPlane(normal types.Vec3, dist float32, material *Material) *Plane {
	return &Plane{
		Normal:   normal.Normalize(),
		Dist:     dist,
		Material: material,
	}
}

func (p *Plane) Intersect(ray types.Ray) (Hit, bool) {
	denom := p.Normal.Dot(ray.Dir)
	if absf(denom) < 1e-7 {
		return Hit{}, false
	}

	dist := (p.Dist - p.Normal.Dot(ray.Origin)) / denom
	if dist < distEpsilon {
		return Hit{}, false
	}

	return Hit{
		Point:    ray.PointAt(dist),
		Normal:   p.Normal,
		Distance: dist,
		Material: p.Material,
	}, true
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (s *Sphere) BoundMaterial() *Material {
	return s.Material
}

func (p *Plane) BoundMaterial() *Material {
	return p.Material
}
