package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene is the read-only view of a scene an integrator needs
type Scene interface {
	Hit(ray core.Ray) (geometry.RayHit, bool)
	GetLights() []lights.Light
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along ray, recursing at most depth levels
	RayColor(ray core.Ray, scene Scene, depth int) material.Color
}
