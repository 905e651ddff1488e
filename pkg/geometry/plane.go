package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// facingEpsilon is the minimum dot(normal, -direction) for a one-sided
// surface to count as facing the ray
const facingEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal.
// Planes are one-sided: only rays arriving from the side the normal
// points toward can hit them.
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Material) Shape {
	return Shape{
		kind:     KindPlane,
		plane:    Plane{Point: point, Normal: normal.Normalize()},
		material: mat,
	}
}

func (p *Plane) intersect(ray core.Ray) (float32, core.Vec3, bool) {
	t, ok := intersectFacing(ray, p.Point, p.Normal)
	return t, p.Normal, ok
}

// intersectFacing finds where ray crosses the plane through point with the
// given normal, rejecting back faces, near-parallel rays and hits behind
// the origin
func intersectFacing(ray core.Ray, point, normal core.Vec3) (float32, bool) {
	facing := normal.Dot(ray.Direction.Mul(-1))
	if facing < facingEpsilon {
		return 0, false
	}

	t := ray.Origin.Sub(point).Dot(normal) / facing
	if t < 0 {
		return 0, false
	}
	return t, true
}
