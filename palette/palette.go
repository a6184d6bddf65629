package palette

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrTooFewColors is returned when building a palette of less than 2 colors
	ErrTooFewColors = errors.New("palette needs at least two colors")
	// ErrInvalidIndex is returned for a color index outside [0, 1]
	ErrInvalidIndex = errors.New("color index outside [0, 1]")
)

// Palette maps a color index in [0, 1] to a color.
type Palette interface {
	ColorForIndex(index float64) (Color, error)
}

// Interpolated spreads its colors evenly over [0, 1] and mixes the two
// nearest ones for indexes in between.
type Interpolated struct {
	colors []Color
}

// NewInterpolated copies colors into a palette.
func NewInterpolated(colors []Color) (*Interpolated, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("%d colors: %w", len(colors), ErrTooFewColors)
	}
	return &Interpolated{colors: append([]Color(nil), colors...)}, nil
}

// Colors returns a copy of the stops
func (p *Interpolated) Colors() []Color {
	return append([]Color(nil), p.colors...)
}

// ColorForIndex implements Palette.
func (p *Interpolated) ColorForIndex(index float64) (Color, error) {
	if !(index >= 0 && index <= 1) {
		return Color{}, fmt.Errorf("index %g: %w", index, ErrInvalidIndex)
	}
	n := len(p.colors)
	switch index {
	case 0:
		return p.colors[0], nil
	case 1:
		return p.colors[n-1], nil
	}
	step := 1 / float64(n-1)
	// colors[i] is the first stop at or above index
	i := 1
	for i < n-1 && float64(i)*step < index {
		i++
	}
	lower := float64(i-1) * step
	return p.colors[i-1].MixWith(p.colors[i], clampUnit((index-lower)*float64(n-1)))
}

// Random is an interpolated palette over colors drawn at construction.
type Random struct {
	Interpolated
}

// NewRandom draws n colors with independent uniform channels from rng.
func NewRandom(n int, rng *rand.Rand) (*Random, error) {
	if n < 2 {
		return nil, fmt.Errorf("%d colors: %w", n, ErrTooFewColors)
	}
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = Color{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	return &Random{Interpolated{colors: colors}}, nil
}

// NewHue draws n colors in HSV space, with a random hue and a saturation
// and value kept high enough to stay visible on black.
func NewHue(n int, rng *rand.Rand) (*Random, error) {
	if n < 2 {
		return nil, fmt.Errorf("%d colors: %w", n, ErrTooFewColors)
	}
	colors := make([]Color, n)
	for i := range colors {
		c := colorful.Hsv(rng.Float64()*360, 0.5+rng.Float64()*0.5, 0.6+rng.Float64()*0.4)
		colors[i] = FromColorful(c)
	}
	return &Random{Interpolated{colors: colors}}, nil
}
