package flame

import (
	"errors"
	"fmt"

	"github.com/scottkirkwood/flamemaker/geometry"
)

// ErrWeightCount is returned when a weight slice is not VariationCount long
var ErrWeightCount = errors.New("wrong number of variation weights")

// Transformation is an affine map followed by a weighted sum of variations.
type Transformation struct {
	affine  geometry.Affine
	weights [VariationCount]float64
}

// NewTransformation needs exactly one weight per variation.
func NewTransformation(affine geometry.Affine, weights []float64) (Transformation, error) {
	if len(weights) != VariationCount {
		return Transformation{}, fmt.Errorf("%d weights: %w", len(weights), ErrWeightCount)
	}
	t := Transformation{affine: affine}
	copy(t.weights[:], weights)
	return t, nil
}

// Affine is the affine part
func (t Transformation) Affine() geometry.Affine { return t.affine }

// Weight of variation v
func (t Transformation) Weight(v Variation) float64 { return t.weights[v] }

// Weights returns a copy of all weights
func (t Transformation) Weights() []float64 {
	return append([]float64(nil), t.weights[:]...)
}

// TransformPoint applies the affine part, then sums each variation scaled
// by its weight. Only weights above zero take part: zero and negative
// weights switch their variation off.
func (t Transformation) TransformPoint(p geometry.Point) geometry.Point {
	p1 := t.affine.TransformPoint(p)
	var sum geometry.Point
	for i, w := range t.weights {
		if w > 0 {
			q := Variation(i).TransformPoint(p1)
			sum.X += w * q.X
			sum.Y += w * q.Y
		}
	}
	return sum
}

// TransformationBuilder is a mutable Transformation.
type TransformationBuilder struct {
	affine  geometry.Affine
	weights [VariationCount]float64
}

// NewTransformationBuilder starts from t.
func NewTransformationBuilder(t Transformation) *TransformationBuilder {
	return &TransformationBuilder{affine: t.affine, weights: t.weights}
}

// Affine is the current affine part
func (b *TransformationBuilder) Affine() geometry.Affine { return b.affine }

// SetAffine replaces the affine part
func (b *TransformationBuilder) SetAffine(a geometry.Affine) { b.affine = a }

// Weight is the current weight of v
func (b *TransformationBuilder) Weight(v Variation) float64 { return b.weights[v] }

// SetWeight changes the weight of v
func (b *TransformationBuilder) SetWeight(v Variation, w float64) { b.weights[v] = w }

// Build snapshots the builder.
func (b *TransformationBuilder) Build() Transformation {
	return Transformation{affine: b.affine, weights: b.weights}
}
