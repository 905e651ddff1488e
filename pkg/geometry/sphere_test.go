package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const tolerance = 1e-5

func approx(a, b float32) bool {
	return abs(a-b) <= tolerance
}

func TestSphere_Hit_Front(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, material.DefaultMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if !approx(hit.Distance, 4) {
		t.Errorf("Expected distance 4, got %f", hit.Distance)
	}
	if hit.Normal.Sub(core.NewVec3(0, 0, 1)).Len() > tolerance {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Point.Sub(core.NewVec3(0, 0, -4)).Len() > tolerance {
		t.Errorf("Expected point (0,0,-4), got %v", hit.Point)
	}
}

func TestSphere_Hit_Cases(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, material.DefaultMaterial())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		shouldHit bool
		expectedT float32
	}{
		{"Miss beside", core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0), false, 0},
		{"From inside uses far root", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), true, 1},
		{"Sphere behind origin", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 1), false, 0},
		{"Glancing", core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1), true, 2},
		{"Off axis", core.NewVec3(0.5, 0, 5), core.NewVec3(0, 0, -1), true, 5 - core.Sqrt(0.75)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.direction))
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if !approx(hit.Distance, tt.expectedT) {
				t.Errorf("Expected distance %f, got %f", tt.expectedT, hit.Distance)
			}
			if !approx(hit.Normal.Len(), 1) {
				t.Errorf("Expected unit normal, got %v", hit.Normal)
			}
		})
	}
}

func TestSphere_SetRadius(t *testing.T) {
	shape := NewSphere(core.NewVec3(0, 0, 0), 1, material.DefaultMaterial())
	sphere, ok := shape.Sphere()
	if !ok {
		t.Fatal("Expected sphere payload")
	}
	if err := sphere.SetRadius(0); err == nil {
		t.Error("Expected error for zero radius")
	}
	if err := sphere.SetRadius(2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sphere.SetCenter(core.NewVec3(0, 0, -10))

	hit, isHit := shape.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !isHit || !approx(hit.Distance, 8) {
		t.Errorf("Expected hit at 8 after edits, got %v %f", isHit, hit.Distance)
	}
}
