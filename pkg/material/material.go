package material

import (
	"errors"
	"fmt"
)

// Material describes how a surface responds to light in the Whitted model.
// Reflection and refraction coefficients are meant to lie in [0,1] and the
// refractive index to be at least 1, but nothing enforces this.
type Material struct {
	BaseColor          Color   // Color lit by diffuse illumination
	DiffuseReflection  float32 // Weight of the Lambertian term
	SpecularReflection float32 // Weight of the Phong highlight
	SpecularExp        float32 // Phong exponent
	Reflectiveness     float32 // Weight of the mirrored ray
	Refractiveness     float32 // Weight of the transmitted ray
	RefractiveIndex    float32 // Index of refraction relative to vacuum
}

// NewMaterial creates a material from its coefficients
func NewMaterial(base Color, diffuse, specular, specularExp, reflect, refract, ior float32) Material {
	return Material{
		BaseColor:          base,
		DiffuseReflection:  diffuse,
		SpecularReflection: specular,
		SpecularExp:        specularExp,
		Reflectiveness:     reflect,
		Refractiveness:     refract,
		RefractiveIndex:    ior,
	}
}

// DefaultMaterial is black, fully diffuse, with the index of vacuum
func DefaultMaterial() Material {
	return Material{
		BaseColor:         Black,
		DiffuseReflection: 1,
		RefractiveIndex:   1,
	}
}

// Validate reports coefficients outside their intended ranges.
// Rendering never calls it; scene builders may.
func (m Material) Validate() error {
	var errs []error
	unit := []struct {
		name string
		v    float32
	}{
		{"diffuse reflection", m.DiffuseReflection},
		{"specular reflection", m.SpecularReflection},
		{"reflectiveness", m.Reflectiveness},
		{"refractiveness", m.Refractiveness},
	}
	for _, c := range unit {
		if c.v < 0 || c.v > 1 {
			errs = append(errs, fmt.Errorf("%s %.3f outside [0,1]", c.name, c.v))
		}
	}
	if m.SpecularExp < 0 {
		errs = append(errs, fmt.Errorf("specular exponent %.3f is negative", m.SpecularExp))
	}
	if m.RefractiveIndex < 1 {
		errs = append(errs, fmt.Errorf("refractive index %.3f below 1", m.RefractiveIndex))
	}
	return errors.Join(errs...)
}
