// Package palette holds linear RGB colors and the palettes that map a
// color index in [0, 1] to them.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidComponent is returned for a channel outside [0, 1]
	ErrInvalidComponent = errors.New("color component outside [0, 1]")
	// ErrInvalidProportion is returned for a mix proportion outside [0, 1]
	ErrInvalidProportion = errors.New("mix proportion outside [0, 1]")
	// ErrNegativeValue is returned when gamma encoding a negative value
	ErrNegativeValue = errors.New("negative value")
)

// Color is a linear RGB color, each channel in [0, 1].
type Color struct {
	r, g, b float64
}

// Often used colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

// NewColor checks the channels and returns the color.
func NewColor(r, g, b float64) (Color, error) {
	for _, v := range [...]float64{r, g, b} {
		if !(v >= 0 && v <= 1) {
			return Color{}, fmt.Errorf("color (%g, %g, %g): %w", r, g, b, ErrInvalidComponent)
		}
	}
	return Color{r, g, b}, nil
}

// R is the red channel
func (c Color) R() float64 { return c.r }

// G is the green channel
func (c Color) G() float64 { return c.g }

// B is the blue channel
func (c Color) B() float64 { return c.b }

// MixWith returns c*(1-t) + other*t.
func (c Color) MixWith(other Color, t float64) (Color, error) {
	if !(t >= 0 && t <= 1) {
		return Color{}, fmt.Errorf("mix %g: %w", t, ErrInvalidProportion)
	}
	return Color{
		r: clampUnit(c.r*(1-t) + other.r*t),
		g: clampUnit(c.g*(1-t) + other.g*t),
		b: clampUnit(c.b*(1-t) + other.b*t),
	}, nil
}

// SRGBEncode gamma encodes the linear value v into an integer in [0, max],
// rounding to the nearest integer.
func SRGBEncode(v float64, max int) (int, error) {
	if v < 0 || math.IsNaN(v) {
		return 0, fmt.Errorf("encode %g: %w", v, ErrNegativeValue)
	}
	return srgbEncode(v, max), nil
}

func srgbEncode(v float64, max int) int {
	if v <= 0.0031308 {
		return int(math.Round(float64(max) * 12.92 * v))
	}
	return int(math.Round(float64(max) * (1.055*math.Pow(v, 1/2.4) - 0.055)))
}

// PackedRGB packs the gamma encoded 8 bit channels as 0xRRGGBB.
func (c Color) PackedRGB() uint32 {
	return uint32(srgbEncode(c.r, 255))<<16 |
		uint32(srgbEncode(c.g, 255))<<8 |
		uint32(srgbEncode(c.b, 255))
}

// RGBA implements color.Color with gamma encoded, opaque channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(srgbEncode(c.r, 0xffff)),
		uint32(srgbEncode(c.g, 0xffff)),
		uint32(srgbEncode(c.b, 0xffff)),
		0xffff
}

// Colorful converts c for use with go-colorful.
func (c Color) Colorful() colorful.Color {
	return colorful.LinearRgb(c.r, c.g, c.b)
}

// FromColorful converts a (gamma encoded) go-colorful color, clamping it first.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().LinearRgb()
	return Color{clampUnit(r), clampUnit(g), clampUnit(b)}
}

// FromStdColor converts any image color, ignoring alpha.
func FromStdColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return FromColorful(colorful.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
	})
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.PackedRGB())
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
