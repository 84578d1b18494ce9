package strided

import (
	"math"

	"github.com/amikos-tech/pure-strided/summation"
)

// Sum returns the balanced sum of all elements. Contiguous arrays are summed
// as one dense run; otherwise each leaf is summed and the leaf sums are
// combined with balanced summation.
func (a *Array) Sum() float64 {
	if a.IsContiguous() {
		return sumDispatcher().Sum(a.data, a.layout.offset, a.Size())
	}
	partial := make([]float64, 0, a.Size()/a.layout.shape[a.Rank()-1])
	a.leaves(func(v *Vector) { partial = append(partial, v.Sum()) })
	return summation.Balanced(partial, 0, 1, len(partial))
}

// Mean returns the arithmetic mean of all elements.
func (a *Array) Mean() float64 {
	return a.Sum() / float64(a.Size())
}

// Min returns the smallest element, or NaN if any element is NaN.
func (a *Array) Min() float64 {
	best := math.Inf(1)
	a.leaves(func(v *Vector) { best = min(best, v.Min()) })
	return best
}

// Max returns the largest element, or NaN if any element is NaN.
func (a *Array) Max() float64 {
	best := math.Inf(-1)
	a.leaves(func(v *Vector) { best = max(best, v.Max()) })
	return best
}

// TransformInPlace replaces every element x with op(x).
func (a *Array) TransformInPlace(op func(float64) float64) {
	a.leaves(func(v *Vector) { v.TransformInPlace(op) })
}

// Transform returns a new dense array of op applied to every element.
func (a *Array) Transform(op func(float64) float64) *Array {
	out := a.Copy()
	out.TransformInPlace(op)
	return out
}

func (a *Array) Exp() *Array { return a.Transform(math.Exp) }
func (a *Array) ExpInPlace() { a.TransformInPlace(math.Exp) }
func (a *Array) Expm1() *Array { return a.Transform(math.Expm1) }
func (a *Array) Expm1InPlace() { a.TransformInPlace(math.Expm1) }
func (a *Array) Log() *Array { return a.Transform(math.Log) }
func (a *Array) LogInPlace() { a.TransformInPlace(math.Log) }
func (a *Array) Log1p() *Array { return a.Transform(math.Log1p) }
func (a *Array) Log1pInPlace() { a.TransformInPlace(math.Log1p) }

// zipInPlace checks the full shapes before touching any element, then
// applies op leaf by leaf along axis 0.
func (a *Array) zipInPlace(other *Array, op func(x, y float64) float64) error {
	if err := checkShape(a.layout.shape, other.layout.shape); err != nil {
		return err
	}
	zipLeaves(a, other, func(x, y *Vector) {
		_ = x.zipInPlace(y, op)
	})
	return nil
}

func (a *Array) zip(other *Array, op func(x, y float64) float64) (*Array, error) {
	if err := checkShape(a.layout.shape, other.layout.shape); err != nil {
		return nil, err
	}
	out := a.Copy()
	_ = out.zipInPlace(other, op)
	return out, nil
}

func (a *Array) Add(other *Array) (*Array, error) { return a.zip(other, add) }
func (a *Array) Sub(other *Array) (*Array, error) { return a.zip(other, sub) }
func (a *Array) Mul(other *Array) (*Array, error) { return a.zip(other, mul) }
func (a *Array) Div(other *Array) (*Array, error) { return a.zip(other, div) }

// LogAddExp returns the elementwise LogAddExp of a and other.
func (a *Array) LogAddExp(other *Array) (*Array, error) { return a.zip(other, LogAddExp) }

func (a *Array) AddInPlace(other *Array) error { return a.zipInPlace(other, add) }
func (a *Array) SubInPlace(other *Array) error { return a.zipInPlace(other, sub) }
func (a *Array) MulInPlace(other *Array) error { return a.zipInPlace(other, mul) }
func (a *Array) DivInPlace(other *Array) error { return a.zipInPlace(other, div) }
func (a *Array) LogAddExpInPlace(other *Array) error { return a.zipInPlace(other, LogAddExp) }

func (a *Array) AddScalarInPlace(x float64) { a.TransformInPlace(func(v float64) float64 { return v + x }) }
func (a *Array) SubScalarInPlace(x float64) { a.TransformInPlace(func(v float64) float64 { return v - x }) }
func (a *Array) MulScalarInPlace(x float64) { a.TransformInPlace(func(v float64) float64 { return v * x }) }
func (a *Array) DivScalarInPlace(x float64) { a.TransformInPlace(func(v float64) float64 { return v / x }) }

func (a *Array) AddScalar(x float64) *Array { return a.Transform(func(v float64) float64 { return v + x }) }
func (a *Array) SubScalar(x float64) *Array { return a.Transform(func(v float64) float64 { return v - x }) }
func (a *Array) MulScalar(x float64) *Array { return a.Transform(func(v float64) float64 { return v * x }) }
func (a *Array) DivScalar(x float64) *Array { return a.Transform(func(v float64) float64 { return v / x }) }
