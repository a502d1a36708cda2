package types

// A ray in world space. Dir is expected to be normalized; NewRay takes care
// of that.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Create a new ray with a normalized direction.
func NewRay(origin, dir Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir.Normalize(),
	}
}

// Get the point at parametric distance t along the ray.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
