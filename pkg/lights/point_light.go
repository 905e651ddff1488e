package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an infinitely small light with no distance falloff
type PointLight struct {
	position  core.Vec3
	intensity float32
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float32) *PointLight {
	return &PointLight{position: position, intensity: intensity}
}

// Direction returns the unit vector from at toward the light
func (pl *PointLight) Direction(at core.Vec3) core.Vec3 {
	return pl.position.Sub(at).Normalize()
}

// Position returns the light position
func (pl *PointLight) Position() core.Vec3 { return pl.position }

// Intensity returns the light intensity
func (pl *PointLight) Intensity() float32 { return pl.intensity }

// SetPosition moves the light between frames
func (pl *PointLight) SetPosition(p core.Vec3) { pl.position = p }
