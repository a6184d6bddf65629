package flame

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/scottkirkwood/flamemaker/geometry"
)

// FuseIterations is how many steps a chain takes before its points are
// recorded, to let it settle onto the attractor.
const FuseIterations = 20

// how many steps run between two looks at the context
const ctxCheckEvery = 1 << 16

// ErrInvalidDensity is returned for a density < 1
var ErrInvalidDensity = errors.New("density must be at least 1")

// Chain is the running state of one chaos game over a flame: the current
// point, the current color index and the random source picking the next
// transformation. A Chain is not safe for concurrent use.
type Chain struct {
	flame      *Flame
	colors     []float64
	rng        *rand.Rand
	point      geometry.Point
	colorIndex float64
	steps      int
}

// NewChain starts a chain at the origin with color index 0.
func (f *Flame) NewChain(rng *rand.Rand) *Chain {
	colors := make([]float64, len(f.transformations))
	for i := range colors {
		colors[i] = ColorIndex(i)
	}
	return &Chain{flame: f, colors: colors, rng: rng}
}

// Point is the current point
func (c *Chain) Point() geometry.Point { return c.point }

// ColorIndex is the current color index
func (c *Chain) ColorIndex() float64 { return c.colorIndex }

// Steps is the number of steps taken so far
func (c *Chain) Steps() int { return c.steps }

// Step applies one randomly picked transformation and returns the new
// point and color index.
func (c *Chain) Step() (geometry.Point, float64) {
	j := c.rng.Intn(len(c.flame.transformations))
	c.point = c.flame.transformations[j].TransformPoint(c.point)
	c.colorIndex = 0.5 * (c.colors[j] + c.colorIndex)
	c.steps++
	return c.point, c.colorIndex
}

// Run takes n steps, hitting b with every point past the fuse.
func (c *Chain) Run(b *AccumulatorBuilder, n int) {
	for i := 0; i < n; i++ {
		p, ci := c.Step()
		if c.steps > FuseIterations {
			b.Hit(p, ci)
		}
	}
}

func (c *Chain) runContext(ctx context.Context, b *AccumulatorBuilder, n int) error {
	for n > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := n
		if chunk > ctxCheckEvery {
			chunk = ctxCheckEvery
		}
		c.Run(b, chunk)
		n -= chunk
	}
	return nil
}

// ComputeStep runs one ProgressStep worth of the width*height*density
// steps needed to fill b, then advances b's progress. It reports whether
// b is complete; once it is, further calls do nothing.
func (c *Chain) ComputeStep(b *AccumulatorBuilder, density int) (bool, error) {
	if density < 1 {
		return false, fmt.Errorf("density %d: %w", density, ErrInvalidDensity)
	}
	if b.IsComplete() {
		return true, nil
	}
	total := float64(b.Width()) * float64(b.Height()) * float64(density)
	c.Run(b, int(math.Round(total*ProgressStep/100)))
	if err := b.IncrementProgress(); err != nil {
		return false, err
	}
	return b.IsComplete(), nil
}

// Compute plays width*height*density steps of a single chain, fuse
// included, into a fresh grid covering frame.
func (f *Flame) Compute(ctx context.Context, frame geometry.Rectangle, width, height, density int, rng *rand.Rand) (*Accumulator, error) {
	if density < 1 {
		return nil, fmt.Errorf("density %d: %w", density, ErrInvalidDensity)
	}
	b, err := NewAccumulatorBuilder(frame, width, height)
	if err != nil {
		return nil, err
	}
	if err := f.NewChain(rng).runContext(ctx, b, width*height*density); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// ComputeParallel splits the width*height*density steps between workers
// independent chains, the k-th seeded with seed+k, each fused on its own
// and filling its own grid. The grids are summed in worker order, so the
// result only depends on seed and workers. workers <= 0 uses one per CPU.
func (f *Flame) ComputeParallel(ctx context.Context, frame geometry.Rectangle, width, height, density int, seed int64, workers int) (*Accumulator, error) {
	if density < 1 {
		return nil, fmt.Errorf("density %d: %w", density, ErrInvalidDensity)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	total := width * height * density
	builders := make([]*AccumulatorBuilder, workers)
	for k := range builders {
		b, err := NewAccumulatorBuilder(frame, width, height)
		if err != nil {
			return nil, err
		}
		builders[k] = b
	}

	errs := make([]error, workers)
	var wg sync.WaitGroup
	for k := 0; k < workers; k++ {
		n := total / workers
		if k < total%workers {
			n++
		}
		wg.Add(1)
		go func(k, n int) {
			defer wg.Done()
			chain := f.NewChain(rand.New(rand.NewSource(seed + int64(k))))
			errs[k] = chain.runContext(ctx, builders[k], n)
		}(k, n)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	for _, b := range builders[1:] {
		if err := builders[0].Merge(b); err != nil {
			return nil, err
		}
	}
	return builders[0].Build(), nil
}
