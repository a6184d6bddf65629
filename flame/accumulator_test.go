package flame

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottkirkwood/flamemaker/geometry"
	"github.com/scottkirkwood/flamemaker/palette"
)

func square(t *testing.T) geometry.Rectangle {
	t.Helper()
	frame, err := geometry.NewRectangle(geometry.Origin, 2, 2)
	require.NoError(t, err)
	return frame
}

func TestBuilderInvalidSize(t *testing.T) {
	for _, wh := range [][2]int{{0, 1}, {1, 0}, {-3, 4}} {
		_, err := NewAccumulatorBuilder(square(t), wh[0], wh[1])
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestHitFlipsRows(t *testing.T) {
	b, err := NewAccumulatorBuilder(square(t), 2, 2)
	require.NoError(t, err)
	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 0.25)
	b.Hit(geometry.Point{X: -0.5, Y: -0.5}, 0.75)
	b.Hit(geometry.Point{X: 1, Y: 0}, 1)          // right edge, dropped
	b.Hit(geometry.Point{X: 0, Y: 5}, 1)          // above, dropped
	b.Hit(geometry.Point{X: math.NaN(), Y: 0}, 1) // dropped
	acc := b.Build()

	// +y is up and row 0 is the top
	tests := []struct {
		x, y, hits int
		sum        float64
	}{
		{1, 0, 1, 0.25},
		{0, 1, 1, 0.75},
		{0, 0, 0, 0},
		{1, 1, 0, 0},
	}
	for _, tt := range tests {
		hits, err := acc.Hits(tt.x, tt.y)
		require.NoError(t, err)
		assert.Equal(t, tt.hits, hits, "cell (%d, %d)", tt.x, tt.y)
		sum, err := acc.ColorIndexSum(tt.x, tt.y)
		require.NoError(t, err)
		assert.Equal(t, tt.sum, sum, "cell (%d, %d)", tt.x, tt.y)
	}
}

func TestHitCorners(t *testing.T) {
	frame, err := geometry.NewRectangle(geometry.Point{X: 0.5, Y: 0.5}, 1, 1)
	require.NoError(t, err)
	b, err := NewAccumulatorBuilder(frame, 300, 300)
	require.NoError(t, err)
	b.Hit(geometry.Point{X: 0, Y: 0}, 0)
	b.Hit(geometry.Point{X: math.Nextafter(1, 0), Y: math.Nextafter(1, 0)}, 0)
	acc := b.Build()
	h, _ := acc.Hits(0, 299)
	assert.Equal(t, 1, h, "bottom left")
	h, _ = acc.Hits(299, 0)
	assert.Equal(t, 1, h, "top right")
}

func TestProgress(t *testing.T) {
	b, err := NewAccumulatorBuilder(square(t), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Progress())
	for i := 0; i < 100; i++ {
		assert.False(t, b.IsComplete())
		require.NoError(t, b.IncrementProgress())
	}
	assert.True(t, b.IsComplete())
	assert.ErrorIs(t, b.IncrementProgress(), ErrProgress)
	assert.Equal(t, 100, b.Progress())

	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 1)
	frame, _ := geometry.NewRectangle(geometry.Point{X: 3, Y: 3}, 4, 4)
	require.NoError(t, b.Clear(frame, 3, 5))
	assert.Equal(t, 0, b.Progress())
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 5, b.Height())
	assert.Equal(t, frame, b.Frame())
	acc := b.Build()
	for x := 0; x < 3; x++ {
		for y := 0; y < 5; y++ {
			h, _ := acc.Hits(x, y)
			assert.Zero(t, h)
		}
	}
	assert.ErrorIs(t, b.Clear(frame, 0, 5), ErrInvalidSize)
}

func TestBuildIsASnapshot(t *testing.T) {
	b, _ := NewAccumulatorBuilder(square(t), 2, 2)
	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 1)
	acc := b.Build()
	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 1)
	h, _ := acc.Hits(1, 0)
	assert.Equal(t, 1, h)
}

func TestMerge(t *testing.T) {
	a, _ := NewAccumulatorBuilder(square(t), 2, 2)
	b, _ := NewAccumulatorBuilder(square(t), 2, 2)
	a.Hit(geometry.Point{X: 0.5, Y: 0.5}, 0.5)
	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 0.25)
	b.Hit(geometry.Point{X: -0.5, Y: 0.5}, 1)
	require.NoError(t, a.Merge(b))
	acc := a.Build()
	h, _ := acc.Hits(1, 0)
	s, _ := acc.ColorIndexSum(1, 0)
	assert.Equal(t, 2, h)
	assert.Equal(t, 0.75, s)
	h, _ = acc.Hits(0, 0)
	assert.Equal(t, 1, h)

	other, _ := NewAccumulatorBuilder(square(t), 3, 2)
	assert.ErrorIs(t, a.Merge(other), ErrMismatch)
}

type failingPalette struct{}

func (failingPalette) ColorForIndex(float64) (palette.Color, error) {
	return palette.Color{}, errors.New("should not be called")
}

func TestColor(t *testing.T) {
	rgb, err := palette.NewInterpolated([]palette.Color{palette.Red, palette.Green, palette.Blue})
	require.NoError(t, err)
	b, _ := NewAccumulatorBuilder(square(t), 2, 2)
	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 0)
	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 0)
	b.Hit(geometry.Point{X: -0.5, Y: -0.5}, 1)
	acc := b.Build()
	assert.Equal(t, 2, acc.Width())
	assert.Equal(t, 2, acc.Height())

	// busiest cell gets the full palette color
	c, err := acc.Color(rgb, palette.Black, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, palette.Red, c)

	c, err = acc.Color(rgb, palette.Black, 0, 1)
	require.NoError(t, err)
	want, _ := palette.Black.MixWith(palette.Blue, math.Log(2)/math.Log(3))
	assert.Equal(t, want, c)

	// empty cells are the background, whatever the palette
	bg, _ := palette.NewColor(0.1, 0.2, 0.3)
	c, err = acc.Color(failingPalette{}, bg, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, bg, c)

	for _, xy := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		_, err := acc.Color(rgb, palette.Black, xy[0], xy[1])
		assert.ErrorIs(t, err, ErrPixelOutOfRange)
	}
}

func TestEmptyAccumulator(t *testing.T) {
	b, _ := NewAccumulatorBuilder(square(t), 4, 3)
	acc := b.Build()
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			c, err := acc.Color(failingPalette{}, palette.White, x, y)
			require.NoError(t, err)
			assert.Equal(t, palette.White, c)
		}
	}
}
