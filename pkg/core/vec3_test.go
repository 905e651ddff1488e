package core

import "testing"

const tolerance = 1e-5

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{"Head on", NewVec3(0, 0, -1), NewVec3(0, 0, 1), NewVec3(0, 0, 1)},
		{"45 degrees", NewVec3(1, -1, 0).Normalize(), NewVec3(0, 1, 0), NewVec3(1, 1, 0).Normalize()},
		{"Grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reflect(tt.incident, tt.normal)
			if result.Sub(tt.expected).Len() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestRefract_IndexOneIsStraightThrough(t *testing.T) {
	incident := NewVec3(0.3, -1, 0.2).Normalize()
	dir, ok := Refract(incident, NewVec3(0, 1, 0), 1.0)
	if !ok {
		t.Fatal("Expected refraction, got total internal reflection")
	}
	if dir.Sub(incident).Len() > tolerance {
		t.Errorf("Expected unchanged direction %v, got %v", incident, dir)
	}
}

func TestRefract_EnteringBendsTowardNormal(t *testing.T) {
	incident := NewVec3(1, -1, 0).Normalize()
	normal := NewVec3(0, 1, 0)
	dir, ok := Refract(incident, normal, 1.5)
	if !ok {
		t.Fatal("Expected refraction, got total internal reflection")
	}

	// Snell: sin(t) = sin(i) / 1.5
	sinI := incident.X()
	sinT := dir.Normalize().X()
	if diff := sinT - sinI/1.5; diff > tolerance || diff < -tolerance {
		t.Errorf("Expected sin(theta_t)=%f, got %f", sinI/1.5, sinT)
	}
	if dir.Y() >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", dir)
	}
}

func TestRefract_ExitingSwapsIndices(t *testing.T) {
	// Leaving glass at a shallow angle to the normal
	incident := NewVec3(0.2, 1, 0).Normalize()
	normal := NewVec3(0, 1, 0)
	dir, ok := Refract(incident, normal, 1.5)
	if !ok {
		t.Fatal("Expected refraction, got total internal reflection")
	}
	sinI := incident.X()
	sinT := dir.Normalize().X()
	if diff := sinT - sinI*1.5; diff > tolerance || diff < -tolerance {
		t.Errorf("Expected sin(theta_t)=%f, got %f", sinI*1.5, sinT)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Leaving glass past the critical angle (~41.8 degrees)
	incident := NewVec3(1, 0.2, 0).Normalize()
	_, ok := Refract(incident, NewVec3(0, 1, 0), 1.5)
	if ok {
		t.Error("Expected total internal reflection")
	}
}

func TestOffsetOrigin(t *testing.T) {
	point := NewVec3(0, 0, 0)
	normal := NewVec3(0, 1, 0)

	above := OffsetOrigin(point, normal, NewVec3(0, 1, 0), ShadowBias)
	if above.Y() <= 0 {
		t.Errorf("Expected origin above surface, got %v", above)
	}
	below := OffsetOrigin(point, normal, NewVec3(0, -1, 0), ShadowBias)
	if below.Y() >= 0 {
		t.Errorf("Expected origin below surface, got %v", below)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))
	if p := ray.At(4); p.Sub(NewVec3(1, 2, -1)).Len() > tolerance {
		t.Errorf("Expected (1,2,-1), got %v", p)
	}
}
