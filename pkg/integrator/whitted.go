package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultBackground is returned for rays that escape or run out of depth
var DefaultBackground = material.RGB(155, 200, 100)

// TIRDirection is used as the refracted direction under total internal
// reflection instead of dropping the refractive term.
// TODO: decide whether TIR should skip the refractive contribution instead;
// changing it alters the output of every scene containing glass.
var TIRDirection = core.UnitX

// WhittedIntegrator implements recursive Whitted-style ray tracing: local
// diffuse and specular lighting with hard shadows, plus one reflected and
// one refracted ray per hit
type WhittedIntegrator struct {
	Background material.Color // Color of escaped rays
	Bias       float32        // Offset applied to secondary ray origins
}

// NewWhittedIntegrator creates an integrator with the default background and bias
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{
		Background: DefaultBackground,
		Bias:       core.ShadowBias,
	}
}

// RayColor returns the shaded color along ray
func (w *WhittedIntegrator) RayColor(ray core.Ray, scene Scene, depth int) material.Color {
	if depth <= 0 {
		return w.Background
	}

	hit, isHit := scene.Hit(ray)
	if !isHit {
		return w.Background
	}

	reflectColor := w.reflectedColor(ray, hit, scene, depth)
	refractColor := w.refractedColor(ray, hit, scene, depth)
	diffuse, specular := w.directLighting(ray, hit, scene)

	m := hit.Material
	color := m.BaseColor.Scale(diffuse).Scale(m.DiffuseReflection)
	color = color.Add(material.White.Scale(specular).Scale(m.SpecularReflection))
	color = color.Add(reflectColor.Scale(m.Reflectiveness))
	color = color.Add(refractColor.Scale(m.Refractiveness))
	return color
}

func (w *WhittedIntegrator) reflectedColor(ray core.Ray, hit geometry.RayHit, scene Scene, depth int) material.Color {
	dir := core.Reflect(ray.Direction, hit.Normal)
	origin := core.OffsetOrigin(hit.Point, hit.Normal, dir, w.Bias)
	return w.RayColor(core.NewRay(origin, dir), scene, depth-1)
}

func (w *WhittedIntegrator) refractedColor(ray core.Ray, hit geometry.RayHit, scene Scene, depth int) material.Color {
	dir, ok := core.Refract(ray.Direction, hit.Normal, hit.Material.RefractiveIndex)
	if !ok {
		dir = TIRDirection
	}
	dir = dir.Normalize()
	origin := core.OffsetOrigin(hit.Point, hit.Normal, dir, w.Bias)
	return w.RayColor(core.NewRay(origin, dir), scene, depth-1)
}

// directLighting accumulates Lambertian and Phong intensities from every
// light that is not blocked by a shadow ray
func (w *WhittedIntegrator) directLighting(ray core.Ray, hit geometry.RayHit, scene Scene) (diffuse, specular float32) {
	for _, light := range scene.GetLights() {
		lightDir := light.Direction(hit.Point)
		lightDistance := light.Position().Sub(hit.Point).Len()

		shadowOrigin := core.OffsetOrigin(hit.Point, hit.Normal, lightDir, w.Bias)
		if blocker, blocked := scene.Hit(core.NewRay(shadowOrigin, lightDir)); blocked && blocker.Distance < lightDistance {
			continue
		}

		intensity := light.Intensity()
		diffuse += intensity * max(0, lightDir.Dot(hit.Normal))

		highlight := max(0, core.Reflect(lightDir, hit.Normal).Dot(ray.Direction))
		specular += intensity * core.Pow(highlight, hit.Material.SpecularExp)
	}
	return diffuse, specular
}
