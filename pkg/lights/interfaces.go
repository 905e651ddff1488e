package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Light is a source the shading model can query for direct illumination
type Light interface {
	// Direction returns the unit vector from at toward the light
	Direction(at core.Vec3) core.Vec3
	// Position returns the light's location in world space
	Position() core.Vec3
	// Intensity returns the scalar intensity, applied regardless of distance
	Intensity() float32
}
