package geometry

import (
	"fmt"
	"math"
)

// Affine is the map (x, y) -> (a*x + b*y + c, d*x + e*y + f).
//
// The zero value maps everything to the origin; use Identity for a
// transformation that does nothing.
type Affine struct {
	a, b, c, d, e, f float64
}

// Identity leaves points unchanged
var Identity = Affine{1, 0, 0, 0, 1, 0}

// NewAffine returns the affine map with the given coefficients, row by row.
func NewAffine(a, b, c, d, e, f float64) Affine {
	return Affine{a, b, c, d, e, f}
}

// Translation moves points by (dx, dy)
func Translation(dx, dy float64) Affine {
	return Affine{1, 0, dx, 0, 1, dy}
}

// Rotation turns points counterclockwise by theta radians around the origin
func Rotation(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{cos, -sin, 0, sin, cos, 0}
}

// Scaling stretches by sx horizontally and sy vertically
func Scaling(sx, sy float64) Affine {
	return Affine{sx, 0, 0, 0, sy, 0}
}

// ShearX shears parallel to the x axis
func ShearX(s float64) Affine {
	return Affine{1, s, 0, 0, 1, 0}
}

// ShearY shears parallel to the y axis
func ShearY(s float64) Affine {
	return Affine{1, 0, 0, s, 1, 0}
}

// Coefficients returns a, b, c, d, e, f.
func (t Affine) Coefficients() (a, b, c, d, e, f float64) {
	return t.a, t.b, t.c, t.d, t.e, t.f
}

// TranslationX is the c coefficient
func (t Affine) TranslationX() float64 { return t.c }

// TranslationY is the f coefficient
func (t Affine) TranslationY() float64 { return t.f }

// TransformPoint applies t to p.
func (t Affine) TransformPoint(p Point) Point {
	return Point{
		X: t.a*p.X + t.b*p.Y + t.c,
		Y: t.d*p.X + t.e*p.Y + t.f,
	}
}

// Compose returns t∘that: that is applied first, then t.
// t.Compose(that).TransformPoint(p) == t.TransformPoint(that.TransformPoint(p))
func (t Affine) Compose(that Affine) Affine {
	return Affine{
		a: t.a*that.a + t.b*that.d,
		b: t.a*that.b + t.b*that.e,
		c: t.a*that.c + t.b*that.f + t.c,
		d: t.d*that.a + t.e*that.d,
		e: t.d*that.b + t.e*that.e,
		f: t.d*that.c + t.e*that.f + t.f,
	}
}

func (t Affine) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", t.a, t.b, t.c, t.d, t.e, t.f)
}
