package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float32
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, mat material.Material) Shape {
	return Shape{
		kind:     KindSphere,
		sphere:   Sphere{Center: center, Radius: radius},
		material: mat,
	}
}

// SetCenter moves the sphere
func (s *Sphere) SetCenter(c core.Vec3) {
	s.Center = c
}

// SetRadius resizes the sphere
func (s *Sphere) SetRadius(r float32) error {
	if !(r > 0) {
		return fmt.Errorf("sphere radius must be positive, got %g", r)
	}
	s.Radius = r
	return nil
}

// intersect projects the origin-to-center vector onto the ray to find the
// chord midpoint, then steps half a chord either way
func (s *Sphere) intersect(ray core.Ray) (float32, core.Vec3, bool) {
	toCenter := s.Center.Sub(ray.Origin)
	proj := toCenter.Dot(ray.Direction)
	perpSq := toCenter.LenSqr() - proj*proj
	radiusSq := s.Radius * s.Radius
	if perpSq > radiusSq {
		return 0, core.Vec3{}, false
	}

	halfChord := core.Sqrt(radiusSq - perpSq)
	t := proj - halfChord
	if t < 0 {
		// Origin is inside or past the near surface
		t = proj + halfChord
		if t < 0 {
			return 0, core.Vec3{}, false
		}
	}

	normal := ray.At(t).Sub(s.Center).Normalize()
	return t, normal, true
}
