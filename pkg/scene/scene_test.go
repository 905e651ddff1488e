package scene

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestScene_HitReturnsNearest(t *testing.T) {
	far := material.NewLambertian(material.RGB(255, 0, 0))
	near := material.NewLambertian(material.RGB(0, 255, 0))

	// Far sphere added first so insertion order cannot decide the result
	s := NewScene().AddShape(
		geometry.NewSphere(core.NewVec3(0, 0, -10), 1, far),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, near),
		geometry.NewPlane(core.NewVec3(0, 0, -20), core.NewVec3(0, 0, 1), far),
	)

	hit, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(float64(hit.Distance-4)) > 1e-5 {
		t.Errorf("Expected nearest distance 4, got %f", hit.Distance)
	}
	if hit.Material != near {
		t.Errorf("Expected near material, got %+v", hit.Material)
	}
}

func TestScene_HitMiss(t *testing.T) {
	s := NewSingleSphereScene()
	if _, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))); ok {
		t.Error("Expected miss when looking away from the sphere")
	}
	if _, ok := NewScene().Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected miss in empty scene")
	}
}

func TestScene_Stats(t *testing.T) {
	stats := NewDefaultScene().Stats()
	if stats[geometry.KindSphere] != 4 || stats[geometry.KindDisc] != 1 || stats[geometry.KindBox] != 1 {
		t.Errorf("Unexpected default scene stats %v", stats)
	}
	if len(NewDefaultScene().GetLights()) != 3 {
		t.Error("Expected three lights in default scene")
	}
}

func TestBuiltins(t *testing.T) {
	infos := Builtins()
	if len(infos) != 3 {
		t.Fatalf("Expected 3 builtin scenes, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID >= infos[i].ID {
			t.Errorf("Builtins not sorted: %q before %q", infos[i-1].ID, infos[i].ID)
		}
	}

	for _, info := range infos {
		t.Run(info.ID, func(t *testing.T) {
			s, got, err := ByName(info.ID)
			if err != nil {
				t.Fatalf("ByName(%q): %v", info.ID, err)
			}
			if got != info {
				t.Errorf("Expected info %+v, got %+v", info, got)
			}
			if len(s.Shapes) == 0 || len(s.Lights) == 0 {
				t.Error("Expected shapes and lights")
			}
			if info.Width <= 0 || info.Height <= 0 || info.FOV <= 0 {
				t.Errorf("Invalid recommended view %+v", info)
			}
		})
	}
}

func TestByName_Unknown(t *testing.T) {
	if _, _, err := ByName("cornell"); err == nil {
		t.Error("Expected error for unknown scene")
	}
	if _, _, err := ByName("DEFAULT"); err != nil {
		t.Errorf("Expected case-insensitive lookup, got %v", err)
	}
}

func TestByName_ReturnsFreshScenes(t *testing.T) {
	a, _, _ := ByName("single-sphere")
	b, _, _ := ByName("single-sphere")
	a.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.DefaultMaterial()))
	if len(b.Shapes) != 1 {
		t.Error("Scenes returned by ByName must not share state")
	}
}
