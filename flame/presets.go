package flame

import (
	"sort"

	"github.com/scottkirkwood/flamemaker/geometry"
)

// Preset is a known flame together with a frame that shows it whole.
type Preset struct {
	Name  string
	Flame *Flame
	Frame geometry.Rectangle
}

func mustTransformation(a, b, c, d, e, f float64, weights ...float64) Transformation {
	t, err := NewTransformation(geometry.NewAffine(a, b, c, d, e, f), weights)
	if err != nil {
		panic(err)
	}
	return t
}

func mustPreset(name string, center geometry.Point, w, h float64, ts ...Transformation) Preset {
	fl, err := New(ts)
	if err != nil {
		panic(err)
	}
	frame, err := geometry.NewRectangle(center, w, h)
	if err != nil {
		panic(err)
	}
	return Preset{Name: name, Flame: fl, Frame: frame}
}

// SharkFin is a fin shaped flame mixing linear, sinusoidal, horseshoe and
// bubble variations.
func SharkFin() Preset {
	return mustPreset("shark-fin", geometry.Point{X: -0.25, Y: 0}, 5, 4,
		mustTransformation(-0.4113504, -0.7124804, -0.4, 0.7124795, -0.4113508, 0.8, 1, 0.1, 0, 0, 0, 0),
		mustTransformation(-0.3957339, 0, -1.6, 0, -0.3957337, 0.2, 0, 0, 0, 0, 0.8, 1),
		mustTransformation(0.4810169, 0, 1, 0, 0.4810169, 0.9, 1, 0, 0, 0, 0, 0),
	)
}

// Turbulence swirls three rotations together.
func Turbulence() Preset {
	return mustPreset("turbulence", geometry.Point{X: 0.1, Y: 0.1}, 3, 3,
		mustTransformation(0.7124807, -0.4113509, -0.3, 0.4113513, 0.7124808, -0.7, 0.5, 0, 0, 0.4, 0, 0),
		mustTransformation(0.3731079, -0.6462417, 0.4, 0.6462414, 0.3731076, 0.3, 1, 0, 0.1, 0, 0, 0),
		mustTransformation(0.0842641, -0.314478, -0.1, 0.314478, 0.0842641, 0.3, 1, 0, 0, 0, 0, 0),
	)
}

// Triangle is the Sierpinski triangle: three half scale copies.
func Triangle() Preset {
	return mustPreset("triangle", geometry.Point{X: 0.5, Y: 0.5}, 1, 1,
		mustTransformation(0.5, 0, 0, 0, 0.5, 0, 1, 0, 0, 0, 0, 0),
		mustTransformation(0.5, 0, 0.5, 0, 0.5, 0, 1, 0, 0, 0, 0, 0),
		mustTransformation(0.5, 0, 0.25, 0, 0.5, 0.5, 1, 0, 0, 0, 0, 0),
	)
}

var presets = map[string]func() Preset{
	"shark-fin":  SharkFin,
	"turbulence": Turbulence,
	"triangle":   Triangle,
}

// PresetByName returns one of the presets above.
func PresetByName(name string) (Preset, bool) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, false
	}
	return p(), true
}

// PresetNames lists the presets, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
