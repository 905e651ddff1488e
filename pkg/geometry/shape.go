package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// RayHit contains information about the nearest ray-shape intersection
type RayHit struct {
	Distance float32           // Parametric distance along the ray, >= 0
	Point    core.Vec3         // Point of intersection
	Normal   core.Vec3         // Unit normal pointing away from the interior
	Material material.Material // Material of the shape that was hit
}

// NoHit returns the sentinel used while searching for the nearest hit
func NoHit() RayHit {
	return RayHit{Distance: core.Inf(), Material: material.DefaultMaterial()}
}

// Kind identifies which primitive a Shape holds
type Kind uint8

const (
	KindSphere Kind = iota
	KindPlane
	KindDisc
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindDisc:
		return "disc"
	case KindBox:
		return "box"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Shape is a closed sum over the supported primitives. Only the payload
// matching Kind is meaningful. Build shapes with NewSphere, NewPlane,
// NewDisc and NewBox.
type Shape struct {
	kind     Kind
	sphere   Sphere
	plane    Plane
	disc     Disc
	box      Box
	material material.Material
}

// Hit returns the nearest forward intersection of ray with the shape
func (s *Shape) Hit(ray core.Ray) (RayHit, bool) {
	var (
		t      float32
		normal core.Vec3
		ok     bool
	)

	switch s.kind {
	case KindSphere:
		t, normal, ok = s.sphere.intersect(ray)
	case KindPlane:
		t, normal, ok = s.plane.intersect(ray)
	case KindDisc:
		t, normal, ok = s.disc.intersect(ray)
	case KindBox:
		t, normal, ok = s.box.intersect(ray)
	}
	if !ok {
		return RayHit{}, false
	}

	return RayHit{
		Distance: t,
		Point:    ray.At(t),
		Normal:   normal,
		Material: s.material,
	}, true
}

// Kind reports the primitive held by the shape
func (s *Shape) Kind() Kind { return s.kind }

// Material returns the shape's material
func (s *Shape) Material() material.Material { return s.material }

// SetMaterial replaces the shape's material
func (s *Shape) SetMaterial(m material.Material) { s.material = m }

// Sphere returns the sphere payload; ok is false for other kinds
func (s *Shape) Sphere() (*Sphere, bool) { return &s.sphere, s.kind == KindSphere }

// Plane returns the plane payload; ok is false for other kinds
func (s *Shape) Plane() (*Plane, bool) { return &s.plane, s.kind == KindPlane }

// Disc returns the disc payload; ok is false for other kinds
func (s *Shape) Disc() (*Disc, bool) { return &s.disc, s.kind == KindDisc }

// Box returns the box payload; ok is false for other kinds
func (s *Shape) Box() (*Box, bool) { return &s.box, s.kind == KindBox }

func (s *Shape) String() string {
	switch s.kind {
	case KindSphere:
		return fmt.Sprintf("sphere(center=%v radius=%g)", s.sphere.Center, s.sphere.Radius)
	case KindPlane:
		return fmt.Sprintf("plane(point=%v normal=%v)", s.plane.Point, s.plane.Normal)
	case KindDisc:
		return fmt.Sprintf("disc(center=%v normal=%v radius=%g)", s.disc.Center, s.disc.Normal, s.disc.Radius)
	case KindBox:
		return fmt.Sprintf("box(min=%v max=%v)", s.box.Min, s.box.Max)
	}
	return s.kind.String()
}
