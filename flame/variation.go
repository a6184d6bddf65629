// Package flame computes fractal flames: a chaos game over weighted
// nonlinear transformations, accumulated into a grid of hit counts and
// color indexes that is tone mapped through a palette.
package flame

import (
	"fmt"
	"math"
	"strings"

	"github.com/scottkirkwood/flamemaker/geometry"
)

// Variation is one of the fixed nonlinear functions a transformation
// blends together. Its value is its index in a weight array.
type Variation int

// The variations, in weight order
const (
	Linear Variation = iota
	Sinusoidal
	Spherical
	Swirl
	Horseshoe
	Bubble

	// VariationCount is the number of weights of a transformation
	VariationCount = 6
)

// Variations lists every variation in index order
var Variations = [VariationCount]Variation{Linear, Sinusoidal, Spherical, Swirl, Horseshoe, Bubble}

var variationNames = [VariationCount]string{"Linear", "Sinusoidal", "Spherical", "Swirl", "Horseshoe", "Bubble"}

// Index is the position of v in a weight array
func (v Variation) Index() int { return int(v) }

// Name is the display name
func (v Variation) Name() string {
	if v < 0 || v >= VariationCount {
		return fmt.Sprintf("Variation(%d)", int(v))
	}
	return variationNames[v]
}

func (v Variation) String() string { return v.Name() }

// VariationByName looks up a variation, ignoring case.
func VariationByName(name string) (Variation, bool) {
	for i, n := range variationNames {
		if strings.EqualFold(n, name) {
			return Variation(i), true
		}
	}
	return 0, false
}

// TransformPoint applies the variation to p.
// Spherical and Horseshoe divide by r and are not finite at the origin.
func (v Variation) TransformPoint(p geometry.Point) geometry.Point {
	x, y := p.X, p.Y
	switch v {
	case Linear:
		return p
	case Sinusoidal:
		return geometry.Point{X: math.Sin(x), Y: math.Sin(y)}
	case Spherical:
		r2 := x*x + y*y
		return geometry.Point{X: x / r2, Y: y / r2}
	case Swirl:
		sin, cos := math.Sincos(x*x + y*y)
		return geometry.Point{X: x*sin - y*cos, Y: x*cos + y*sin}
	case Horseshoe:
		r := p.R()
		return geometry.Point{X: (x - y) * (x + y) / r, Y: 2 * x * y / r}
	case Bubble:
		d := 4 / (x*x + y*y + 4)
		return geometry.Point{X: x * d, Y: y * d}
	}
	panic(fmt.Sprintf("flame: unknown variation %d", int(v)))
}
