package renderer

import (
	"image"
	"image/color"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// BytesPerPixel is the size of one BGRA pixel
const BytesPerPixel = 4

// rowShards must be a power of two
const rowShards = 64

// Surface is the render target: a width*height BGRA byte buffer.
//
// Workers write pixels through SetPixel, which locks one of rowShards mutexes
// chosen by row, so tiles on different rows never contend. A frame in progress
// holds the frame lock exclusively; readers (Pixels, At, RGBA, ...) take it
// shared and therefore never observe a half-written frame.
type Surface struct {
	width  int
	height int
	pix    []byte

	frame sync.RWMutex
	rows  [rowShards]sync.Mutex
}

// NewSurface creates a black, opaque surface of the given size
func NewSurface(width, height int) *Surface {
	width = max(width, 0)
	height = max(height, 0)
	s := &Surface{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*BytesPerPixel),
	}
	for i := 3; i < len(s.pix); i += BytesPerPixel {
		s.pix[i] = 255
	}
	return s
}

// Width returns the surface width in pixels
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels
func (s *Surface) Height() int { return s.height }

// SetPixel writes c at (x, y). Out-of-range coordinates are ignored.
func (s *Surface) SetPixel(x, y int, c material.Color) {
	if !s.inside(x, y) {
		return
	}
	i := s.offset(x, y)
	mu := &s.rows[y&(rowShards-1)]
	mu.Lock()
	s.pix[i+0] = c.B
	s.pix[i+1] = c.G
	s.pix[i+2] = c.R
	s.pix[i+3] = c.A
	mu.Unlock()
}

// Pixel returns the color stored at (x, y)
func (s *Surface) Pixel(x, y int) material.Color {
	if !s.inside(x, y) {
		return material.Color{}
	}
	s.frame.RLock()
	defer s.frame.RUnlock()
	return s.pixelLocked(x, y)
}

// Pixels returns a copy of the raw BGRA buffer
func (s *Surface) Pixels() []byte {
	s.frame.RLock()
	defer s.frame.RUnlock()
	out := make([]byte, len(s.pix))
	copy(out, s.pix)
	return out
}

// RGBA converts the surface into an *image.RGBA for encoders
func (s *Surface) RGBA() *image.RGBA {
	s.frame.RLock()
	defer s.frame.RUnlock()
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i := 0; i < len(s.pix); i += BytesPerPixel {
		img.Pix[i+0] = s.pix[i+2]
		img.Pix[i+1] = s.pix[i+1]
		img.Pix[i+2] = s.pix[i+0]
		img.Pix[i+3] = s.pix[i+3]
	}
	return img
}

// ColorModel implements image.Image
func (s *Surface) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// At implements image.Image
func (s *Surface) At(x, y int) color.Color {
	c := s.Pixel(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// beginFrame blocks readers until endFrame
func (s *Surface) beginFrame() { s.frame.Lock() }

func (s *Surface) endFrame() { s.frame.Unlock() }

func (s *Surface) pixelLocked(x, y int) material.Color {
	i := s.offset(x, y)
	return material.RGBA(s.pix[i+2], s.pix[i+1], s.pix[i+0], s.pix[i+3])
}

func (s *Surface) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

func (s *Surface) offset(x, y int) int {
	return (y*s.width + x) * BytesPerPixel
}
