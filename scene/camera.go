package scene

import (
	"fmt"
	"math"

	"github.com/prism-render/prism/types"
)

// The camera type maps image plane samples to primary rays using a thin
// lens model. The look-at transform is resolved once by Setup; after that
// CastRay is safe for concurrent use.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	// Distance from the camera to the focus plane. Zero defaults to the
	// distance between Position and LookAt.
	FocusDist float32

	// Lens radius for depth of field. A zero aperture is an exact pinhole:
	// lens samples have no effect on the generated rays.
	Aperture float32

	// Orthonormal basis and image plane extents resolved by Setup.
	u, v, w        types.Vec3
	planeW, planeH float32
}

func NewCamera(fov float32) *Camera {
	return &Camera{
		Position: types.XYZ(0, 0, 0),
		LookAt:   types.XYZ(0, 0, -1),
		Up:       types.XYZ(0, 1, 0),
		FOV:      fov,
	}
}

// Setup resolves the look-at transform into an orthonormal basis and sizes
// the image plane for the given aspect ratio. A degenerate basis (camera
// looking at its own position, or an up vector parallel to the view
// direction) is a configuration error.
func (c *Camera) Setup(aspect float32) error {
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("scene: camera field of view %f is out of domain (0, 180)", c.FOV)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("scene: camera aperture must be non-negative")
	}

	forward := c.LookAt.Sub(c.Position)
	if forward.Len() == 0 {
		return fmt.Errorf("scene: camera position and look-at target coincide")
	}

	c.w = forward.Normalize().Neg()
	u := c.Up.Cross(c.w)
	if u.Len() == 0 {
		return fmt.Errorf("scene: camera up vector is parallel to the view direction")
	}
	c.u = u.Normalize()
	c.v = c.w.Cross(c.u)

	if c.FocusDist == 0 {
		c.FocusDist = forward.Len()
	}
	if c.FocusDist < 0 {
		return fmt.Errorf("scene: camera focus distance must be non-negative")
	}

	theta := float64(c.FOV) * math.Pi / 180
	c.planeH = 2 * float32(math.Tan(theta/2))
	c.planeW = aspect * c.planeH

	return nil
}

// CastRay generates the primary ray for an image plane sample. s and t are
// continuous image coordinates in [0, 1] (pixel position plus jitter,
// supplied by the caller's sampler); lensU and lensV are a point in the
// unit disk that offsets the ray origin across the aperture. The ray is
// re-aimed through the focus point of the unperturbed ray, so geometry on
// the focus plane stays sharp for every lens sample.
func (c *Camera) CastRay(s, t, lensU, lensV float32) types.Ray {
	// Focus point of the unperturbed (pinhole) ray.
	focus := c.Position.
		Add(c.w.Mul(-c.FocusDist)).
		Add(c.u.Mul((s - 0.5) * c.planeW * c.FocusDist)).
		Add(c.v.Mul((0.5 - t) * c.planeH * c.FocusDist))

	origin := c.Position
	if c.Aperture > 0 {
		origin = origin.
			Add(c.u.Mul(lensU * c.Aperture)).
			Add(c.v.Mul(lensV * c.Aperture))
	}

	return types.NewRay(origin, focus.Sub(origin))
}
