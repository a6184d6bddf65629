package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned for a width or height <= 0
	ErrInvalidDimension = errors.New("width and height must be positive")
	// ErrInvalidRatio is returned for an aspect ratio <= 0
	ErrInvalidRatio = errors.New("aspect ratio must be positive")
)

// Rectangle is an axis aligned rectangle given by its center and size.
type Rectangle struct {
	center        Point
	width, height float64
}

// NewRectangle returns the rectangle of the given size around center.
func NewRectangle(center Point, width, height float64) (Rectangle, error) {
	if !(width > 0) || !(height > 0) {
		return Rectangle{}, fmt.Errorf("rectangle %gx%g: %w", width, height, ErrInvalidDimension)
	}
	return Rectangle{center: center, width: width, height: height}, nil
}

// Center of the rectangle
func (r Rectangle) Center() Point { return r.center }

// Width of the rectangle
func (r Rectangle) Width() float64 { return r.width }

// Height of the rectangle
func (r Rectangle) Height() float64 { return r.height }

// Left is the smallest x
func (r Rectangle) Left() float64 { return r.center.X - r.width/2 }

// Right is the largest x
func (r Rectangle) Right() float64 { return r.center.X + r.width/2 }

// Bottom is the smallest y
func (r Rectangle) Bottom() float64 { return r.center.Y - r.height/2 }

// Top is the largest y
func (r Rectangle) Top() float64 { return r.center.Y + r.height/2 }

// AspectRatio is width / height
func (r Rectangle) AspectRatio() float64 {
	return r.width / r.height
}

// Contains reports whether p lies in the rectangle. The left and bottom
// edges are inside, the right and top edges are not.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Left() && p.X < r.Right() &&
		p.Y >= r.Bottom() && p.Y < r.Top()
}

// ExpandToAspectRatio returns the smallest rectangle with the same center
// and the given aspect ratio that contains r. Only one side grows.
func (r Rectangle) ExpandToAspectRatio(ratio float64) (Rectangle, error) {
	if !(ratio > 0) {
		return Rectangle{}, fmt.Errorf("expand to %g: %w", ratio, ErrInvalidRatio)
	}
	switch current := r.AspectRatio(); {
	case current == ratio:
		return r, nil
	case current > ratio:
		return Rectangle{center: r.center, width: r.width, height: r.width / ratio}, nil
	default:
		return Rectangle{center: r.center, width: r.height * ratio, height: r.height}, nil
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%v, %g, %g)", r.center, r.width, r.height)
}
