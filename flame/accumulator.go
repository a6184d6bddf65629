package flame

import (
	"errors"
	"fmt"
	"math"

	"github.com/scottkirkwood/flamemaker/geometry"
	"github.com/scottkirkwood/flamemaker/palette"
)

// ProgressStep is how far one chunk of work advances a builder, in percent.
const ProgressStep = 1

var (
	// ErrInvalidSize is returned for a grid width or height <= 0
	ErrInvalidSize = errors.New("grid width and height must be positive")
	// ErrProgress is returned when progress would go past 100
	ErrProgress = errors.New("progress past 100%")
	// ErrPixelOutOfRange is returned for a cell outside the grid
	ErrPixelOutOfRange = errors.New("pixel out of range")
	// ErrMismatch is returned when merging builders of different grids
	ErrMismatch = errors.New("accumulators do not match")
)

// AccumulatorBuilder collects hits from the chaos game into a grid.
// Row 0 is the top of the frame.
type AccumulatorBuilder struct {
	frame         geometry.Rectangle
	width, height int
	toGrid        geometry.Affine
	hits          []int
	colorSums     []float64
	progress      int
}

// NewAccumulatorBuilder returns an empty width x height grid covering frame.
func NewAccumulatorBuilder(frame geometry.Rectangle, width, height int) (*AccumulatorBuilder, error) {
	b := &AccumulatorBuilder{}
	if err := b.Clear(frame, width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// Clear drops every hit, resizes the grid to cover frame and resets progress.
func (b *AccumulatorBuilder) Clear(frame geometry.Rectangle, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("grid %dx%d: %w", width, height, ErrInvalidSize)
	}
	b.frame = frame
	b.width, b.height = width, height
	b.hits = make([]int, width*height)
	b.colorSums = make([]float64, width*height)
	// move the bottom left corner of the frame to the origin, then scale
	// the frame onto the grid
	c := frame.Center()
	toOrigin := geometry.Translation(frame.Width()/2-c.X, frame.Height()/2-c.Y)
	b.toGrid = geometry.Scaling(float64(width)/frame.Width(), float64(height)/frame.Height()).Compose(toOrigin)
	b.progress = 0
	return nil
}

// Frame is the region of the plane covered by the grid
func (b *AccumulatorBuilder) Frame() geometry.Rectangle { return b.frame }

// Width of the grid
func (b *AccumulatorBuilder) Width() int { return b.width }

// Height of the grid
func (b *AccumulatorBuilder) Height() int { return b.height }

// Hit records p with its color index. Points outside the frame are dropped.
func (b *AccumulatorBuilder) Hit(p geometry.Point, colorIndex float64) {
	if !b.frame.Contains(p) {
		return
	}
	g := b.toGrid.TransformPoint(p)
	x := clampCell(int(math.Floor(g.X)), b.width)
	y := b.height - 1 - clampCell(int(math.Floor(g.Y)), b.height)
	b.hits[y*b.width+x]++
	b.colorSums[y*b.width+x] += colorIndex
}

// Rounding can land a point right under the top or right edge one cell
// too far.
func clampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Progress is the share of the work done, 0 to 100
func (b *AccumulatorBuilder) Progress() int { return b.progress }

// IsComplete is true once progress reaches 100
func (b *AccumulatorBuilder) IsComplete() bool { return b.progress == 100 }

// IncrementProgress advances progress by ProgressStep.
func (b *AccumulatorBuilder) IncrementProgress() error {
	if b.progress > 100-ProgressStep {
		return fmt.Errorf("at %d%%: %w", b.progress, ErrProgress)
	}
	b.progress += ProgressStep
	return nil
}

// Merge adds the hits of other, which must cover the same frame with
// the same grid size.
func (b *AccumulatorBuilder) Merge(other *AccumulatorBuilder) error {
	if other.width != b.width || other.height != b.height || other.frame != b.frame {
		return fmt.Errorf("%dx%d %v into %dx%d %v: %w",
			other.width, other.height, other.frame, b.width, b.height, b.frame, ErrMismatch)
	}
	for i, h := range other.hits {
		b.hits[i] += h
		b.colorSums[i] += other.colorSums[i]
	}
	return nil
}

// Build snapshots the grid.
func (b *AccumulatorBuilder) Build() *Accumulator {
	busiest := 0
	for _, h := range b.hits {
		if h > busiest {
			busiest = h
		}
	}
	return &Accumulator{
		width:       b.width,
		height:      b.height,
		hits:        append([]int(nil), b.hits...),
		colorSums:   append([]float64(nil), b.colorSums...),
		denominator: math.Log(float64(busiest) + 1),
	}
}

// Accumulator is an immutable grid of hit counts and color index sums.
type Accumulator struct {
	width, height int
	hits          []int
	colorSums     []float64
	// ln(max hits + 1)
	denominator float64
}

// Width of the grid
func (a *Accumulator) Width() int { return a.width }

// Height of the grid
func (a *Accumulator) Height() int { return a.height }

func (a *Accumulator) cell(x, y int) (int, error) {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		return 0, fmt.Errorf("(%d, %d) in %dx%d: %w", x, y, a.width, a.height, ErrPixelOutOfRange)
	}
	return y*a.width + x, nil
}

// Hits is the number of points that landed in cell (x, y).
func (a *Accumulator) Hits(x, y int) (int, error) {
	i, err := a.cell(x, y)
	if err != nil {
		return 0, err
	}
	return a.hits[i], nil
}

// ColorIndexSum is the sum of the color indexes that landed in (x, y).
func (a *Accumulator) ColorIndexSum(x, y int) (float64, error) {
	i, err := a.cell(x, y)
	if err != nil {
		return 0, err
	}
	return a.colorSums[i], nil
}

// Color tone maps cell (x, y): background if nothing landed there,
// otherwise background mixed towards the palette color of the mean index,
// more strongly the closer its hit count is to the busiest cell's on a
// log scale.
func (a *Accumulator) Color(p palette.Palette, background palette.Color, x, y int) (palette.Color, error) {
	i, err := a.cell(x, y)
	if err != nil {
		return palette.Color{}, err
	}
	hits := a.hits[i]
	if hits == 0 {
		return background, nil
	}
	mean := a.colorSums[i] / float64(hits)
	c, err := p.ColorForIndex(math.Min(math.Max(mean, 0), 1))
	if err != nil {
		return palette.Color{}, err
	}
	intensity := math.Log(float64(hits)+1) / a.denominator
	return background.MixWith(c, math.Min(intensity, 1))
}
