package scene

import (
	"fmt"

	"github.com/prism-render/prism/types"
)

// A scene binds a camera, a shared material table and a set of surfaces.
// Once assembled the scene is immutable for the duration of a render and
// may be queried concurrently by any number of workers.
type Scene struct {
	Camera *Camera

	Materials []*Material
	Surfaces  []Surface
}

func NewScene() *Scene {
	return &Scene{
		Materials: make([]*Material, 0),
		Surfaces:  make([]Surface, 0),
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a material to the scene. Materials are validated on registration so
// that parameter errors abort before any rendering starts.
func (s *Scene) AddMaterial(material *Material) error {
	if material == nil {
		return fmt.Errorf("scene: nil material")
	}
	if err := material.Validate(); err != nil {
		return err
	}
	for _, mat := range s.Materials {
		if mat.Name == material.Name {
			return fmt.Errorf("scene: material %q already added", material.Name)
		}
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Look up a registered material by name.
func (s *Scene) MaterialByName(name string) (*Material, bool) {
	for _, mat := range s.Materials {
		if mat.Name == name {
			return mat, true
		}
	}
	return nil, false
}

// Add a surface to the scene. The surface's bound material must have been
// added to the scene first.
func (s *Scene) AddSurface(surface Surface) error {
	if surface == nil {
		return fmt.Errorf("scene: nil surface")
	}
	mat := surface.BoundMaterial()
	if mat == nil {
		return fmt.Errorf("scene: no material assigned to surface")
	}
	for _, known := range s.Materials {
		if known == mat {
			s.Surfaces = append(s.Surfaces, surface)
			return nil
		}
	}
	return fmt.Errorf("scene: surface references unknown material %q; add the material to the scene before adding the surface", mat.Name)
}

// Intersect returns the nearest surface hit by the ray. Safe for concurrent
// read-only use across render workers.
func (s *Scene) Intersect(ray types.Ray) (Hit, bool) {
	var nearest Hit
	found := false
	for _, surface := range s.Surfaces {
		hit, ok := surface.Intersect(ray)
		if ok && (!found || hit.Distance < nearest.Distance) {
			nearest = hit
			found = true
		}
	}
	return nearest, found
}
