package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is the single-precision vector used throughout the tracer
type Vec3 = mgl32.Vec3

// ShadowBias is the distance secondary ray origins are pushed off a surface
const ShadowBias float32 = 1e-3

// UnitX is the +X axis
var UnitX = Vec3{1, 0, 0}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Ray represents a ray with an origin and direction.
// Direction is expected to be unit length wherever it is consumed.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Reflect mirrors incident about normal
func Reflect(incident, normal Vec3) Vec3 {
	return incident.Sub(normal.Mul(2 * incident.Dot(normal)))
}

// Refract bends incident through a surface with the given refractive index
// using the vector form of Snell's law. The outside medium is vacuum (n=1);
// when incident leaves the surface (dot(incident, normal) > 0) the indices are
// swapped and the normal flipped. ok is false on total internal reflection.
func Refract(incident, normal Vec3, refractiveIndex float32) (dir Vec3, ok bool) {
	cosI := -clamp(incident.Dot(normal), -1, 1)
	n1, n2 := float32(1), refractiveIndex
	n := normal

	if cosI < 0 {
		n1, n2 = n2, n1
		n = n.Mul(-1)
		cosI = -cosI
	}

	eta := n1 / n2
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return Vec3{}, false
	}

	return incident.Mul(eta).Add(n.Mul(eta*cosI - Sqrt(k))), true
}

// OffsetOrigin pushes point off the surface by eps along normal, on the side
// that dir leaves through
func OffsetOrigin(point, normal, dir Vec3, eps float32) Vec3 {
	if dir.Dot(normal) < 0 {
		return point.Sub(normal.Mul(eps))
	}
	return point.Add(normal.Mul(eps))
}

// Sqrt is a float32 square root
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Pow is a float32 power
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Inf returns float32 positive infinity
func Inf() float32 {
	return float32(math.Inf(1))
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(hi, x))
}
