package integrator

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// MockScene records every ray it is asked to intersect
type MockScene struct {
	hitFn  func(ray core.Ray, call int) (geometry.RayHit, bool)
	lights []lights.Light
	rays   []core.Ray
}

func (m *MockScene) Hit(ray core.Ray) (geometry.RayHit, bool) {
	m.rays = append(m.rays, ray)
	return m.hitFn(ray, len(m.rays)-1)
}

func (m *MockScene) GetLights() []lights.Light { return m.lights }

func opaque(c material.Color) material.Material {
	return material.NewLambertian(c)
}

func TestWhitted_DepthZeroReturnsBackground(t *testing.T) {
	w := NewWhittedIntegrator()
	scenes := []*scene.Scene{
		scene.NewDefaultScene(),
		scene.NewSingleSphereScene(),
		scene.NewShowcaseScene(),
	}
	dirs := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0.3, -0.2, -1).Normalize(),
	}

	for _, s := range scenes {
		for _, d := range dirs {
			if got := w.RayColor(core.NewRay(core.NewVec3(0, 0, 0), d), s, 0); got != DefaultBackground {
				t.Errorf("Expected background at depth 0, got %v", got)
			}
		}
	}
}

func TestWhitted_MissReturnsBackground(t *testing.T) {
	w := NewWhittedIntegrator()
	s := scene.NewSingleSphereScene()
	if got := w.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), s, 4); got != DefaultBackground {
		t.Errorf("Expected background, got %v", got)
	}
}

func TestWhitted_HardShadows(t *testing.T) {
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), opaque(material.White))
	light := lights.NewPointLight(core.NewVec3(0, 10, 0), 1)
	down := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	w := NewWhittedIntegrator()

	tests := []struct {
		name     string
		blocker  *geometry.Shape
		expected material.Color
	}{
		{"Unblocked", nil, material.White},
		{"Opaque blocker", ptr(geometry.NewSphere(core.NewVec3(0, 7, 0), 0.5, opaque(material.RGB(255, 0, 0)))), material.Black},
		{"Glass blocker still blocks", ptr(geometry.NewSphere(core.NewVec3(0, 7, 0), 0.5, material.Glass)), material.Black},
		{"Blocker beyond light", ptr(geometry.NewSphere(core.NewVec3(0, 20, 0), 0.5, opaque(material.White))), material.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.NewScene().AddShape(floor).AddLight(light)
			if tt.blocker != nil {
				s.AddShape(*tt.blocker)
			}
			if got := w.RayColor(down, s, 4); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestWhitted_Specular(t *testing.T) {
	shiny := material.NewMaterial(material.RGB(255, 0, 0), 0, 0.5, 50, 0, 0, 1)
	s := scene.NewScene().
		AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, shiny)).
		AddLight(lights.NewPointLight(core.NewVec3(0, 0, 10), 1))

	got := NewWhittedIntegrator().RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s, 4)
	if got != material.RGB(127, 127, 127) {
		t.Errorf("Expected white highlight at half strength, got %v", got)
	}
}

func TestWhitted_ReflectionWeightsBackground(t *testing.T) {
	mirror := material.NewMaterial(material.Black, 0, 0, 0, 0.5, 0, 1)
	s := scene.NewScene().AddShape(geometry.NewPlane(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), mirror))

	got := NewWhittedIntegrator().RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s, 4)
	if expected := DefaultBackground.Scale(0.5); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestWhitted_SecondaryRaysAreBiased(t *testing.T) {
	hitPoint := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 1, 0)
	m := &MockScene{
		hitFn: func(ray core.Ray, call int) (geometry.RayHit, bool) {
			if call > 0 {
				return geometry.RayHit{}, false
			}
			return geometry.RayHit{Distance: 1, Point: hitPoint, Normal: normal, Material: material.Glass}, true
		},
	}

	NewWhittedIntegrator().RayColor(core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0).Normalize()), m, 2)

	if len(m.rays) != 3 {
		t.Fatalf("Expected primary, reflected and refracted rays, got %d", len(m.rays))
	}
	reflected, refracted := m.rays[1], m.rays[2]
	if reflected.Origin.Y() <= 0 {
		t.Errorf("Reflected ray should start above the surface, got %v", reflected.Origin)
	}
	if refracted.Origin.Y() >= 0 {
		t.Errorf("Refracted ray should start below the surface, got %v", refracted.Origin)
	}
}

func TestWhitted_TotalInternalReflectionFallback(t *testing.T) {
	m := &MockScene{
		hitFn: func(ray core.Ray, call int) (geometry.RayHit, bool) {
			if call > 0 {
				return geometry.RayHit{}, false
			}
			return geometry.RayHit{
				Distance: 1,
				Point:    core.NewVec3(0, 0, 0),
				Normal:   core.NewVec3(0, 1, 0),
				Material: material.Glass,
			}, true
		},
	}

	// Leaving glass well past the critical angle
	ray := core.NewRay(core.NewVec3(-1, -0.2, 0), core.NewVec3(1, 0.2, 0).Normalize())
	NewWhittedIntegrator().RayColor(ray, m, 2)

	found := false
	for _, r := range m.rays[1:] {
		if r.Direction == TIRDirection {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a secondary ray along %v, got %v", TIRDirection, m.rays)
	}
}

func TestWhitted_RecursionStopsAtDepth(t *testing.T) {
	// Every ray hits, so the call count is bounded only by depth
	m := &MockScene{
		hitFn: func(ray core.Ray, call int) (geometry.RayHit, bool) {
			return geometry.RayHit{
				Distance: 1,
				Point:    ray.At(1),
				Normal:   ray.Direction.Mul(-1),
				Material: material.Glass,
			}, true
		},
	}

	NewWhittedIntegrator().RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), m, 4)

	// A full binary tree of depth 4 has 1+2+4+8 = 15 internal hits
	if len(m.rays) != 15 {
		t.Errorf("Expected 15 intersection queries, got %d", len(m.rays))
	}
}

func ptr[T any](v T) *T { return &v }
