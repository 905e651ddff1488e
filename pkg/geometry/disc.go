package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Disc represents a one-sided circular disc in 3D space
type Disc struct {
	Center core.Vec3 // Center of the disc
	Normal core.Vec3 // Unit normal of the visible face
	Radius float32   // Radius of the disc
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float32, mat material.Material) Shape {
	return Shape{
		kind:     KindDisc,
		disc:     Disc{Center: center, Normal: normal.Normalize(), Radius: radius},
		material: mat,
	}
}

func (d *Disc) intersect(ray core.Ray) (float32, core.Vec3, bool) {
	t, ok := intersectFacing(ray, d.Center, d.Normal)
	if !ok {
		return 0, core.Vec3{}, false
	}

	if ray.At(t).Sub(d.Center).Len() > d.Radius {
		return 0, core.Vec3{}, false
	}
	return t, d.Normal, true
}
