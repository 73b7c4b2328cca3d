package calc

import (
	"errors"
	"math"
)

// SampleStep is the distance between consecutive x values in Sample.
const SampleStep = 0.1

// MaxSamples is the largest number of points Sample evaluates.
const MaxSamples = 1 << 20

// ErrSampleRange is returned from Sample when the range is not finite or
// would need more than MaxSamples points.
var ErrSampleRange = errors.New("calc: sample range too large")

// Point is a sampled point of a function of x.
type Point struct {
	X, Y float64
}

// Sample evaluates an expression of x at min, min+SampleStep, and so on up
// to max, for plotting. Points where evaluation fails are omitted rather than
// reported. Both coordinates pass through Round. A malformed expression is
// an error, as is a range needing more than MaxSamples points. If max < min,
// there are no points.
func Sample(src string, min, max float64, opts ...ContextOption) ([]Point, error) {
	return NewContext(opts...).Sample(src, min, max)
}

// Sample samples an expression like the package-level Sample, using the names
// and angle unit of ctx. ctx itself is not modified.
func (ctx *Context) Sample(src string, min, max float64) ([]Point, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, ErrSampleRange
	}
	if max < min {
		return nil, nil
	}
	// Allow for the step not being exact in binary.
	n := math.Floor((max-min)/SampleStep + 1e-9)
	if n >= MaxSamples {
		return nil, ErrSampleRange
	}
	ctx = ctx.Clone()
	pts := make([]Point, 0, int(n)+1)
	for i := 0; i <= int(n); i++ {
		x := Round(min + float64(i)*SampleStep)
		ctx.Set(Var, x)
		y, err := ctx.Eval(e)
		if err != nil {
			continue
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}
