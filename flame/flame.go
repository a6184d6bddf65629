package flame

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/scottkirkwood/flamemaker/geometry"
)

var (
	// ErrEmptyFlame is returned when building a flame with no transformations
	ErrEmptyFlame = errors.New("flame needs at least one transformation")
	// ErrIndexOutOfRange is returned for a transformation index outside [0, count)
	ErrIndexOutOfRange = errors.New("transformation index out of range")
	// ErrUnknownVariation is returned for a variation outside the fixed set
	ErrUnknownVariation = errors.New("unknown variation")
)

// Flame is an immutable, non-empty list of transformations.
type Flame struct {
	transformations []Transformation
}

// New copies ts into a flame.
func New(ts []Transformation) (*Flame, error) {
	if len(ts) == 0 {
		return nil, ErrEmptyFlame
	}
	return &Flame{transformations: append([]Transformation(nil), ts...)}, nil
}

// TransformationCount is the number of transformations
func (f *Flame) TransformationCount() int { return len(f.transformations) }

// Transformation returns the i-th transformation.
func (f *Flame) Transformation(i int) (Transformation, error) {
	if i < 0 || i >= len(f.transformations) {
		return Transformation{}, fmt.Errorf("index %d of %d: %w", i, len(f.transformations), ErrIndexOutOfRange)
	}
	return f.transformations[i], nil
}

// ColorIndex is the color index given to the transformation at position i.
// Positions 0 and 1 get the ends of [0, 1]; later ones bisect the gaps
// left by earlier ones: 1/2, then 1/4 and 3/4, then 1/8, 3/8, 5/8, 7/8...
func ColorIndex(i int) float64 {
	switch {
	case i <= 0:
		return 0
	case i == 1:
		return 1
	}
	level := bits.Len(uint(i - 1)) // ceil(log2(i)) for i >= 2
	base := math.Ldexp(1, -level)
	return base + float64(i-(1<<(level-1))-1)*2*base
}

// Builder is a mutable flame. The zero value is an empty builder.
type Builder struct {
	transformations []*TransformationBuilder
}

// NewBuilder starts from the transformations of f.
func NewBuilder(f *Flame) *Builder {
	b := &Builder{}
	for _, t := range f.transformations {
		b.AddTransformation(t)
	}
	return b
}

// TransformationCount is the current number of transformations
func (b *Builder) TransformationCount() int { return len(b.transformations) }

func (b *Builder) check(i int) error {
	if i < 0 || i >= len(b.transformations) {
		return fmt.Errorf("index %d of %d: %w", i, len(b.transformations), ErrIndexOutOfRange)
	}
	return nil
}

func checkVariation(v Variation) error {
	if v < 0 || v >= VariationCount {
		return fmt.Errorf("variation %d: %w", int(v), ErrUnknownVariation)
	}
	return nil
}

// AddTransformation appends t
func (b *Builder) AddTransformation(t Transformation) {
	b.transformations = append(b.transformations, NewTransformationBuilder(t))
}

// RemoveTransformation drops the i-th transformation.
func (b *Builder) RemoveTransformation(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.transformations = append(b.transformations[:i], b.transformations[i+1:]...)
	return nil
}

// Transformation returns the current state of the i-th transformation.
func (b *Builder) Transformation(i int) (Transformation, error) {
	if err := b.check(i); err != nil {
		return Transformation{}, err
	}
	return b.transformations[i].Build(), nil
}

// SetTransformation replaces the i-th transformation.
func (b *Builder) SetTransformation(i int, t Transformation) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.transformations[i] = NewTransformationBuilder(t)
	return nil
}

// Affine returns the affine part of the i-th transformation.
func (b *Builder) Affine(i int) (geometry.Affine, error) {
	if err := b.check(i); err != nil {
		return geometry.Affine{}, err
	}
	return b.transformations[i].Affine(), nil
}

// SetAffine replaces the affine part of the i-th transformation.
func (b *Builder) SetAffine(i int, a geometry.Affine) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.transformations[i].SetAffine(a)
	return nil
}

// Weight returns the weight of v in the i-th transformation.
func (b *Builder) Weight(i int, v Variation) (float64, error) {
	if err := b.check(i); err != nil {
		return 0, err
	}
	if err := checkVariation(v); err != nil {
		return 0, err
	}
	return b.transformations[i].Weight(v), nil
}

// SetWeight changes the weight of v in the i-th transformation.
func (b *Builder) SetWeight(i int, v Variation, w float64) error {
	if err := b.check(i); err != nil {
		return err
	}
	if err := checkVariation(v); err != nil {
		return err
	}
	b.transformations[i].SetWeight(v, w)
	return nil
}

// Build snapshots the builder into a Flame.
func (b *Builder) Build() (*Flame, error) {
	ts := make([]Transformation, len(b.transformations))
	for i, t := range b.transformations {
		ts[i] = t.Build()
	}
	return New(ts)
}
