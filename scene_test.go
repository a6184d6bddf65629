package flamemaker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottkirkwood/flamemaker/flame"
	"github.com/scottkirkwood/flamemaker/geometry"
	"github.com/scottkirkwood/flamemaker/palette"
)

func TestDecodeScenePreset(t *testing.T) {
	s, err := DecodeScene(strings.NewReader(`{"preset": "shark-fin"}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, s.Width)
	assert.Equal(t, DefaultHeight, s.Height)
	assert.Equal(t, DefaultDensity, s.Density)
	assert.Equal(t, palette.Black, s.Background)
	assert.Equal(t, flame.SharkFin().Frame, s.Frame)
	assert.Equal(t, 3, s.Flame.TransformationCount())
}

func TestDecodeSceneFull(t *testing.T) {
	s, err := DecodeScene(strings.NewReader(`{
		"transformations": [
			{"affine": [0.5, 0, 0, 0, 0.5, 0], "weights": {"linear": 1}},
			{"affine": [0.5, 0, 0.5, 0, 0.5, 0], "weights": {"Linear": 0.5, "swirl": 0.5}}
		],
		"frame": {"center": [0.5, 0.5], "width": 1, "height": 1},
		"width": 200, "height": 100, "density": 3,
		"palette": ["#ffffff", "#000000"],
		"background": "#ff0000",
		"seed": "2a"
	}`))
	require.NoError(t, err)
	assert.Equal(t, 200, s.Width)
	assert.Equal(t, 100, s.Height)
	assert.Equal(t, 3, s.Density)
	assert.Equal(t, "2a", s.Seed)
	assert.Equal(t, palette.Red, s.Background)

	// widened to the 2:1 grid
	want, _ := geometry.NewRectangle(geometry.Point{X: 0.5, Y: 0.5}, 2, 1)
	assert.Equal(t, want, s.Frame)

	require.Equal(t, 2, s.Flame.TransformationCount())
	tr, _ := s.Flame.Transformation(1)
	assert.Equal(t, 0.5, tr.Weight(flame.Swirl))
	assert.Equal(t, 0.5, tr.Affine().TranslationX())

	c, err := s.Palette.ColorForIndex(0)
	require.NoError(t, err)
	assert.Equal(t, palette.White, c)
}

func TestDecodeSceneRandomPalette(t *testing.T) {
	scene := `{"preset": "triangle", "randomPalette": 4, "seed": "10"}`
	s1, err := DecodeScene(strings.NewReader(scene))
	require.NoError(t, err)
	s2, err := DecodeScene(strings.NewReader(scene))
	require.NoError(t, err)
	c1, _ := s1.Palette.ColorForIndex(0.3)
	c2, _ := s2.Palette.ColorForIndex(0.3)
	assert.Equal(t, c1, c2)
}

func TestDecodeSceneErrors(t *testing.T) {
	tests := []struct {
		name, scene string
		want        error
	}{
		{"no flame", `{"frame": {"center": [0, 0], "width": 1, "height": 1}}`, ErrNoFlame},
		{"variation", `{"preset": "triangle", "transformations": [{"weights": {"julia": 1}}]}`, flame.ErrUnknownVariation},
		{"frame", `{"preset": "triangle", "frame": {"center": [0, 0], "width": 0, "height": 1}}`, geometry.ErrInvalidDimension},
		{"palette", `{"preset": "triangle", "palette": ["#ffffff"]}`, palette.ErrTooFewColors},
		{"density", `{"preset": "triangle", "density": -2}`, flame.ErrInvalidDensity},
	}
	for _, tt := range tests {
		_, err := DecodeScene(strings.NewReader(tt.scene))
		assert.ErrorIs(t, err, tt.want, tt.name)
	}

	for _, scene := range []string{
		`{"preset": "nope"}`,
		`{"preset": "triangle", "unknown": 1}`,
		`{"transformations": [{"weights": {"linear": 1}}]}`,
		`{"preset": "triangle", "background": "red"}`,
	} {
		_, err := DecodeScene(strings.NewReader(scene))
		assert.Error(t, err, scene)
	}
}

func TestPresetScene(t *testing.T) {
	s, err := PresetScene("triangle")
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, s.Width)
	assert.Equal(t, DefaultHeight, s.Height)
	assert.InDelta(t, 1.25, s.Frame.Width(), 1e-12)
	assert.InDelta(t, 1.0, s.Frame.Height(), 1e-12)

	require.NoError(t, s.Resize(100, 200))
	assert.Equal(t, 100, s.Width)
	assert.InDelta(t, 1.25, s.Frame.Width(), 1e-12)
	assert.InDelta(t, 2.5, s.Frame.Height(), 1e-12)

	assert.ErrorIs(t, s.Resize(0, 10), flame.ErrInvalidSize)

	_, err = PresetScene("nope")
	assert.Error(t, err)
}
