package flamemaker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/scottkirkwood/flamemaker/flame"
	"github.com/scottkirkwood/flamemaker/geometry"
	"github.com/scottkirkwood/flamemaker/palette"
)

// Scene defaults, sized for the shark fin preset
const (
	DefaultWidth   = 500
	DefaultHeight  = 400
	DefaultDensity = 50
)

// ErrNoFlame is returned by a scene with neither a preset nor transformations
var ErrNoFlame = errors.New("scene has no preset and no transformations")

// Scene is everything needed to render one flame.
type Scene struct {
	Flame         *flame.Flame
	Frame         geometry.Rectangle
	Width, Height int
	Density       int
	Palette       palette.Palette
	Background    palette.Color
	// Seed is a hex seed, empty for a time based one
	Seed string
}

// Picture pairs acc with the scene's palette and background
func (s *Scene) Picture(acc *flame.Accumulator) Picture {
	return Picture{Acc: acc, Palette: s.Palette, Background: s.Background}
}

type sceneFile struct {
	Preset          string                `json:"preset"`
	Transformations []transformationEntry `json:"transformations"`
	Frame           *frameEntry           `json:"frame"`
	Width           int                   `json:"width"`
	Height          int                   `json:"height"`
	Density         int                   `json:"density"`
	Palette         []string              `json:"palette"`
	RandomPalette   int                   `json:"randomPalette"`
	Background      string                `json:"background"`
	Seed            string                `json:"seed"`
}

type transformationEntry struct {
	Affine  [6]float64         `json:"affine"`
	Weights map[string]float64 `json:"weights"`
}

type frameEntry struct {
	Center [2]float64 `json:"center"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
}

// PresetScene is a scene for a named preset, at the default size and
// with the red, green, blue palette.
func PresetScene(name string) (*Scene, error) {
	p, ok := flame.PresetByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	s := &Scene{
		Flame:      p.Flame,
		Frame:      p.Frame,
		Density:    DefaultDensity,
		Palette:    RGBPalette(),
		Background: palette.Black,
	}
	if err := s.Resize(DefaultWidth, DefaultHeight); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize changes the grid size and widens the frame to its aspect ratio.
// Widening never shrinks the frame, so resizing back and forth may show
// more of the plane than the original frame.
func (s *Scene) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("size %dx%d: %w", width, height, flame.ErrInvalidSize)
	}
	frame, err := s.Frame.ExpandToAspectRatio(float64(width) / float64(height))
	if err != nil {
		return err
	}
	s.Frame = frame
	s.Width, s.Height = width, height
	return nil
}

// LoadScene reads a JSON scene file.
func LoadScene(fname string) (*Scene, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return s, nil
}

// DecodeScene reads a JSON scene such as
//
//	{
//	  "preset": "shark-fin",
//	  "transformations": [{"affine": [0.5, 0, 0, 0, 0.5, 0], "weights": {"linear": 1}}],
//	  "frame": {"center": [0, 0], "width": 4, "height": 4},
//	  "width": 500, "height": 400, "density": 50,
//	  "palette": ["#ff0000", "#00ff00", "#0000ff"],
//	  "background": "#000000",
//	  "seed": "7dd"
//	}
//
// Transformations replace those of the preset, a frame replaces its frame.
// The frame is then widened to the aspect ratio of the grid. randomPalette
// asks for that many random colors instead of a palette list.
func DecodeScene(r io.Reader) (*Scene, error) {
	var sf sceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return nil, err
	}

	s := &Scene{
		Width:      orDefault(sf.Width, DefaultWidth),
		Height:     orDefault(sf.Height, DefaultHeight),
		Density:    orDefault(sf.Density, DefaultDensity),
		Background: palette.Black,
		Seed:       sf.Seed,
	}
	if sf.Width < 0 || sf.Height < 0 {
		return nil, fmt.Errorf("size %dx%d: %w", sf.Width, sf.Height, flame.ErrInvalidSize)
	}
	if sf.Density < 0 {
		return nil, fmt.Errorf("density %d: %w", sf.Density, flame.ErrInvalidDensity)
	}

	var frame *geometry.Rectangle
	if sf.Preset != "" {
		p, ok := flame.PresetByName(sf.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", sf.Preset)
		}
		s.Flame = p.Flame
		frame = &p.Frame
	}
	if len(sf.Transformations) > 0 {
		fl, err := decodeFlame(sf.Transformations)
		if err != nil {
			return nil, err
		}
		s.Flame = fl
	}
	if s.Flame == nil {
		return nil, ErrNoFlame
	}
	if sf.Frame != nil {
		fr, err := geometry.NewRectangle(geometry.Point{X: sf.Frame.Center[0], Y: sf.Frame.Center[1]}, sf.Frame.Width, sf.Frame.Height)
		if err != nil {
			return nil, err
		}
		frame = &fr
	}
	if frame == nil {
		return nil, errors.New("scene has no frame")
	}
	expanded, err := frame.ExpandToAspectRatio(float64(s.Width) / float64(s.Height))
	if err != nil {
		return nil, err
	}
	s.Frame = expanded

	if s.Palette, err = decodePalette(sf); err != nil {
		return nil, err
	}
	if sf.Background != "" {
		if s.Background, err = ParseColor(sf.Background); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeFlame(entries []transformationEntry) (*flame.Flame, error) {
	var b flame.Builder
	for i, e := range entries {
		weights := make([]float64, flame.VariationCount)
		for name, w := range e.Weights {
			v, ok := flame.VariationByName(name)
			if !ok {
				return nil, fmt.Errorf("transformation %d: %q: %w", i, name, flame.ErrUnknownVariation)
			}
			weights[v.Index()] = w
		}
		a := e.Affine
		t, err := flame.NewTransformation(geometry.NewAffine(a[0], a[1], a[2], a[3], a[4], a[5]), weights)
		if err != nil {
			return nil, err
		}
		b.AddTransformation(t)
	}
	return b.Build()
}

func decodePalette(sf sceneFile) (palette.Palette, error) {
	if sf.RandomPalette > 0 {
		seed, err := Init(sf.Seed)
		if err != nil {
			return nil, err
		}
		return palette.NewRandom(sf.RandomPalette, seed.Rand())
	}
	if len(sf.Palette) == 0 {
		return RGBPalette(), nil
	}
	colors := make([]palette.Color, len(sf.Palette))
	for i, hex := range sf.Palette {
		c, err := ParseColor(hex)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return palette.NewInterpolated(colors)
}

// RGBPalette runs from red through green to blue
func RGBPalette() *palette.Interpolated {
	p, _ := palette.NewInterpolated([]palette.Color{palette.Red, palette.Green, palette.Blue})
	return p
}

// ParseColor reads a "#rrggbb" sRGB color.
func ParseColor(hex string) (palette.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return palette.Color{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return palette.FromColorful(c), nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
