package renderer

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole camera looking down -Z with +Y up. It is safe to move
// while a frame renders; the frame keeps the view it started with.
type Camera struct {
	mu      sync.RWMutex
	origin  core.Vec3
	fov     float32 // vertical field of view in degrees
	surface *Surface
}

// NewCamera creates a camera at origin with the given vertical field of view in degrees
func NewCamera(origin core.Vec3, fov float32) *Camera {
	return &Camera{origin: origin, fov: fov}
}

// SetSurface binds the render target
func (c *Camera) SetSurface(s *Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface = s
}

// Surface returns the bound render target, or nil
func (c *Camera) Surface() *Surface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surface
}

// SetOrigin moves the camera
func (c *Camera) SetOrigin(origin core.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = origin
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.origin
}

// SetFOV changes the vertical field of view (degrees)
func (c *Camera) SetFOV(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

// FOV returns the vertical field of view in degrees
func (c *Camera) FOV() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fov
}

// GetRay returns the primary ray through the center of pixel (x, y) of a
// width x height image. Pixel rows grow downward.
func (c *Camera) GetRay(x, y, width, height int) core.Ray {
	c.mu.RLock()
	origin, fov := c.origin, c.fov
	c.mu.RUnlock()
	return primaryRay(origin, fov, x, y, width, height)
}

// view is an immutable copy of the camera taken at the start of a frame
type view struct {
	origin  core.Vec3
	fov     float32
	surface *Surface
}

func (c *Camera) snapshot() view {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return view{origin: c.origin, fov: c.fov, surface: c.surface}
}

func (v view) GetRay(x, y, width, height int) core.Ray {
	return primaryRay(v.origin, v.fov, x, y, width, height)
}

func primaryRay(origin core.Vec3, fov float32, x, y, width, height int) core.Ray {
	scale := float32(math.Tan(float64(mgl32.DegToRad(fov)) / 2))
	aspect := float32(width) / float32(height)

	dx := (2*(float32(x)+0.5)/float32(width) - 1) * scale * aspect
	dy := -(2*(float32(y)+0.5)/float32(height) - 1) * scale

	return core.NewRay(origin, core.NewVec3(dx, dy, -1).Normalize())
}
