package material

import (
	"fmt"
	"image/color"
)

// Color is an 8-bit RGBA color. Channels are always within [0,255].
type Color struct {
	R, G, B, A uint8
}

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

// RGB creates an opaque color
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with explicit alpha
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromFloat creates an opaque color from channels in [0,1]
func FromFloat(r, g, b float32) Color {
	return RGB(uint8(r*255), uint8(g*255), uint8(b*255))
}

// Add returns the per-channel sum, saturating each channel at 255
func (c Color) Add(other Color) Color {
	return RGB(
		addSat(c.R, other.R),
		addSat(c.G, other.G),
		addSat(c.B, other.B),
	)
}

// Scale multiplies the color by s. If any channel would exceed 255, all
// three are rescaled by the same factor so the largest lands on 255 and
// the hue is preserved.
func (c Color) Scale(s float32) Color {
	r := float32(c.R) * s
	g := float32(c.G) * s
	b := float32(c.B) * s

	if peak := max(r, g, b); peak > 255 {
		r = r * 255 / peak
		g = g * 255 / peak
		b = b * 255 / peak
	}

	return RGB(toChannel(r), toChannel(g), toChannel(b))
}

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

func addSat(a, b uint8) uint8 {
	return uint8(min(uint16(a)+uint16(b), 255))
}

// toChannel truncates v into [0,255]; NaN maps to 0
func toChannel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
