package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the demo scene: four spheres, a mirror disc and a
// glass box under three lights
func NewDefaultScene() *Scene {
	s := NewScene()

	s.AddShape(
		geometry.NewSphere(core.NewVec3(-1, -1.5, -22), 2, material.Ivory),
		geometry.NewSphere(core.NewVec3(1.5, -0.5, -25), 2, material.Rubber),
		geometry.NewSphere(core.NewVec3(-6, 4.5, -30), 4, material.Mirror),
		geometry.NewSphere(core.NewVec3(2, 0, -15), 1, material.Glass),
		geometry.NewDisc(core.NewVec3(0, 15, -30), core.NewVec3(0, -1, 1), 10, material.Mirror),
		geometry.NewBox(core.NewVec3(10, -5, -9), core.NewVec3(5, 5, -24), material.Glass),
	)

	s.AddLight(
		lights.NewPointLight(core.NewVec3(30, 50, -25), 1.8),
		lights.NewPointLight(core.NewVec3(-20, 20, 20), 1.5),
		lights.NewPointLight(core.NewVec3(30, 20, 30), 1.7),
	)

	return s
}

// NewSingleSphereScene creates one white Lambertian sphere lit by one light
func NewSingleSphereScene() *Scene {
	return NewScene().
		AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewLambertian(material.White))).
		AddLight(lights.NewPointLight(core.NewVec3(10, 10, -5), 1.0))
}

// NewShowcaseScene creates a floor, a back wall, a box and a disc so every
// primitive and material response shows up in one frame
func NewShowcaseScene() *Scene {
	floor := material.NewMaterial(material.RGB(180, 180, 170), 0.8, 0.1, 20, 0.2, 0, 1)
	wall := material.NewLambertian(material.RGB(90, 110, 160))
	gold := material.NewMetal(material.RGB(220, 170, 60), 0.3)

	return NewScene().
		AddShape(
			geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), floor),
			geometry.NewPlane(core.NewVec3(0, 0, -30), core.NewVec3(0, 0, 1), wall),
			geometry.NewSphere(core.NewVec3(-3, 0, -14), 2, material.Ivory),
			geometry.NewSphere(core.NewVec3(0.5, -1, -9), 1, material.NewDielectric(1.5)),
			geometry.NewSphere(core.NewVec3(4, 1, -16), 3, gold),
			geometry.NewBox(core.NewVec3(-1, -2, -20), core.NewVec3(2, 1, -17), material.Rubber),
			geometry.NewDisc(core.NewVec3(-7, 3, -20), core.NewVec3(1, -0.2, 1), 3, material.Mirror),
		).
		AddLight(
			lights.NewPointLight(core.NewVec3(-20, 20, 20), 1.2),
			lights.NewPointLight(core.NewVec3(20, 30, -5), 0.9),
		)
}
