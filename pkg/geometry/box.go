package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Box represents an axis-aligned box
type Box struct {
	Min core.Vec3 // Corner with the smallest coordinates
	Max core.Vec3 // Corner with the largest coordinates
}

// NewBox creates an axis-aligned box spanning two opposite corners.
// The corners may be given in any order.
func NewBox(a, b core.Vec3, mat material.Material) Shape {
	return Shape{
		kind: KindBox,
		box: Box{
			Min: core.NewVec3(min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])),
			Max: core.NewVec3(max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])),
		},
		material: mat,
	}
}

// Center returns the midpoint of the box
func (b *Box) Center() core.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents returns half the size of the box along each axis
func (b *Box) HalfExtents() core.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// intersect uses the slab method. A zero direction component yields an
// infinite slab bound; when the origin also lies exactly on that slab's
// face the bound is NaN and is ignored, which treats the face as inside.
func (b *Box) intersect(ray core.Ray) (float32, core.Vec3, bool) {
	tmin := -core.Inf()
	tmax := core.Inf()

	for axis := 0; axis < 3; axis++ {
		// Multiplying by the reciprocal keeps the sign of -0 directions
		inv := 1 / ray.Direction[axis]
		tNear := (b.Min[axis] - ray.Origin[axis]) * inv
		tFar := (b.Max[axis] - ray.Origin[axis]) * inv
		if inv < 0 {
			tNear, tFar = tFar, tNear
		}

		if tNear > tmin {
			tmin = tNear
		}
		if tFar < tmax {
			tmax = tFar
		}
		if tmin > tmax {
			return 0, core.Vec3{}, false
		}
	}

	var t float32
	switch {
	case tmin > 0:
		t = tmin
	case tmax > 0:
		// Origin is inside the box
		t = tmax
	default:
		return 0, core.Vec3{}, false
	}

	return t, b.normalAt(ray.At(t)), true
}

// normalAt picks the face whose plane the point lies closest to
func (b *Box) normalAt(p core.Vec3) core.Vec3 {
	local := p.Sub(b.Center())
	half := b.HalfExtents()

	best := 0
	bestDiff := core.Inf()
	for axis := 0; axis < 3; axis++ {
		diff := abs(abs(local[axis]) - half[axis])
		if diff < bestDiff {
			best = axis
			bestDiff = diff
		}
	}

	var normal core.Vec3
	if local[best] < 0 {
		normal[best] = -1
	} else {
		normal[best] = 1
	}
	return normal
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
