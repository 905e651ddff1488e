package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene contains the shapes and lights to render. It must not be modified
// while a frame is being rendered.
type Scene struct {
	Shapes []geometry.Shape // Objects in the scene
	Lights []lights.Light   // Lights in the scene
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{
		Shapes: make([]geometry.Shape, 0),
		Lights: make([]lights.Light, 0),
	}
}

// AddShape appends shapes and returns the scene for chaining
func (s *Scene) AddShape(shapes ...geometry.Shape) *Scene {
	s.Shapes = append(s.Shapes, shapes...)
	return s
}

// AddLight appends lights and returns the scene for chaining
func (s *Scene) AddLight(ls ...lights.Light) *Scene {
	s.Lights = append(s.Lights, ls...)
	return s
}

// GetLights returns the lights in the scene
func (s *Scene) GetLights() []lights.Light {
	return s.Lights
}

// Hit returns the nearest intersection among all shapes. Every shape is
// tested; there is no acceleration structure.
func (s *Scene) Hit(ray core.Ray) (geometry.RayHit, bool) {
	closest := geometry.NoHit()
	found := false

	for i := range s.Shapes {
		if hit, ok := s.Shapes[i].Hit(ray); ok && hit.Distance < closest.Distance {
			closest = hit
			found = true
		}
	}

	return closest, found
}

// Stats counts the shapes of each kind
func (s *Scene) Stats() map[geometry.Kind]int {
	counts := make(map[geometry.Kind]int)
	for i := range s.Shapes {
		counts[s.Shapes[i].Kind()]++
	}
	return counts
}
