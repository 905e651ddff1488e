package material

// NewLambertian creates a purely diffuse material
func NewLambertian(albedo Color) Material {
	m := DefaultMaterial()
	m.BaseColor = albedo
	return m
}

// NewMetal creates a tinted mirror; fuzz trades reflection for diffuse
func NewMetal(albedo Color, fuzz float32) Material {
	fuzz = max(0, min(1, fuzz))
	return NewMaterial(albedo, fuzz, 0.5, 250, 1-fuzz, 0, 1)
}

// NewDielectric creates a mostly transparent material with the given index
func NewDielectric(ior float32) Material {
	return NewMaterial(White, 0, 0.5, 125, 0.1, 0.8, ior)
}

// Presets from the demo scene
var (
	Ivory  = NewMaterial(FromFloat(0.3, 0.2, 0.4), 0.6, 0.3, 50, 0.3, 0, 1)
	Rubber = NewMaterial(FromFloat(0.3, 0.1, 0.3), 0.9, 0.1, 10, 0.1, 0, 1)
	Mirror = NewMaterial(RGB(200, 0, 150), 0.1, 0, 1000, 0.9, 0, 1)
	Glass  = NewMaterial(RGB(150, 10, 50), 0.1, 0.2, 100, 0.2, 0.7, 1.5)
)

// Preset looks up a named preset material
func Preset(name string) (Material, bool) {
	switch name {
	case "ivory":
		return Ivory, true
	case "rubber":
		return Rubber, true
	case "mirror":
		return Mirror, true
	case "glass":
		return Glass, true
	case "default":
		return DefaultMaterial(), true
	}
	return Material{}, false
}
