// Package geometry holds the plane primitives the flame engine works with:
// points, frames and affine maps.
package geometry

import (
	"fmt"
	"math"
)

// Point is a point in the plane
type Point struct {
	X, Y float64
}

// Origin is (0, 0)
var Origin = Point{}

// R returns the distance to the origin
func (p Point) R() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Theta returns the polar angle in radians
func (p Point) Theta() float64 {
	return math.Atan2(p.Y, p.X)
}

// IsFinite is false if either coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Transformation maps the plane onto itself
type Transformation interface {
	TransformPoint(p Point) Point
}
