package strided

import (
	"math"

	"github.com/amikos-tech/pure-strided/summation"
)

// Integer is the set of integer element types accepted by DotValues.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Sum returns the balanced sum of the elements. Dense vectors are routed
// through the native dispatcher.
func (v *Vector) Sum() float64 {
	if v.kind == denseKind {
		return sumDispatcher().Sum(v.data, v.offset, v.size)
	}
	return summation.Balanced(v.data, v.offset, v.stride, v.size)
}

// Mean returns the arithmetic mean of the elements.
func (v *Vector) Mean() float64 {
	return v.Sum() / float64(v.size)
}

// Dot returns the balanced sum of the elementwise products of v and other.
func (v *Vector) Dot(other *Vector) (float64, error) {
	if err := checkShape(v.Shape(), other.Shape()); err != nil {
		return 0, err
	}
	return summation.BalancedBy(v.size, func(i int) float64 {
		return v.at(i) * other.at(i)
	}), nil
}

// DotValues returns the balanced sum of v[i]*values[i].
func DotValues[T Integer](v *Vector, values []T) (float64, error) {
	if err := checkShape(v.Shape(), []int{len(values)}); err != nil {
		return 0, err
	}
	return summation.BalancedBy(v.size, func(i int) float64 {
		return v.at(i) * float64(values[i])
	}), nil
}

// ArgMin returns the index of the minimum. On ties the rightmost index wins.
// NaN propagates: the index of the first NaN is returned if there is one.
func (v *Vector) ArgMin() int {
	best, pos := v.at(0), 0
	if math.IsNaN(best) {
		return 0
	}
	for i := 1; i < v.size; i++ {
		x := v.at(i)
		if math.IsNaN(x) {
			return i
		}
		if x <= best {
			best, pos = x, i
		}
	}
	return pos
}

// ArgMax returns the index of the maximum. On ties the rightmost index wins.
// NaN propagates as in ArgMin.
func (v *Vector) ArgMax() int {
	best, pos := v.at(0), 0
	if math.IsNaN(best) {
		return 0
	}
	for i := 1; i < v.size; i++ {
		x := v.at(i)
		if math.IsNaN(x) {
			return i
		}
		if x >= best {
			best, pos = x, i
		}
	}
	return pos
}

// Min returns the smallest element, or NaN if any element is NaN.
func (v *Vector) Min() float64 { return v.at(v.ArgMin()) }

// Max returns the largest element, or NaN if any element is NaN.
func (v *Vector) Max() float64 { return v.at(v.ArgMax()) }

// CumSum replaces each element with the Kahan-compensated running total up
// to and including it.
func (v *Vector) CumSum() {
	var acc summation.Kahan
	for i := 0; i < v.size; i++ {
		p := v.pos(i)
		acc.Add(v.data[p])
		v.data[p] = acc.Sum()
	}
}

// LogSumExp returns log(Σ exp(x)) computed as max + log(Σ exp(x - max)).
func (v *Vector) LogSumExp() float64 {
	offset := v.Max()
	if math.IsInf(offset, 0) {
		return offset
	}
	var acc summation.Kahan
	for i := 0; i < v.size; i++ {
		acc.Add(math.Exp(v.at(i) - offset))
	}
	return offset + math.Log(acc.Sum())
}

// Rescale divides every element by the sum so that the elements sum to one.
func (v *Vector) Rescale() {
	v.DivScalarInPlace(v.Sum())
}

// LogRescale subtracts LogSumExp so that exp of the elements sums to one.
func (v *Vector) LogRescale() {
	v.SubScalarInPlace(v.LogSumExp())
}

// Fold accumulates the elements left to right starting from initial.
func (v *Vector) Fold(initial float64, op func(acc, x float64) float64) float64 {
	acc := initial
	for i := 0; i < v.size; i++ {
		acc = op(acc, v.at(i))
	}
	return acc
}

// Reduce folds the elements using the first one as the seed.
func (v *Vector) Reduce(op func(acc, x float64) float64) float64 {
	acc := v.at(0)
	for i := 1; i < v.size; i++ {
		acc = op(acc, v.at(i))
	}
	return acc
}

// TransformInPlace replaces every element x with op(x).
func (v *Vector) TransformInPlace(op func(float64) float64) {
	if v.kind == denseKind {
		w := v.window()
		for i, x := range w {
			w[i] = op(x)
		}
		return
	}
	for i := 0; i < v.size; i++ {
		p := v.pos(i)
		v.data[p] = op(v.data[p])
	}
}

// Transform returns a new dense vector of op applied to every element.
func (v *Vector) Transform(op func(float64) float64) *Vector {
	out := v.Copy()
	out.TransformInPlace(op)
	return out
}

func (v *Vector) Exp() *Vector { return v.Transform(math.Exp) }
func (v *Vector) ExpInPlace() { v.TransformInPlace(math.Exp) }
func (v *Vector) Expm1() *Vector { return v.Transform(math.Expm1) }
func (v *Vector) Expm1InPlace() { v.TransformInPlace(math.Expm1) }
func (v *Vector) Log() *Vector { return v.Transform(math.Log) }
func (v *Vector) LogInPlace() { v.TransformInPlace(math.Log) }
func (v *Vector) Log1p() *Vector { return v.Transform(math.Log1p) }
func (v *Vector) Log1pInPlace() { v.TransformInPlace(math.Log1p) }

// zipInPlace sets v[i] = op(v[i], other[i]) after checking shapes.
func (v *Vector) zipInPlace(other *Vector, op func(a, b float64) float64) error {
	if err := checkShape(v.Shape(), other.Shape()); err != nil {
		return err
	}
	if v.kind == denseKind && other.kind == denseKind {
		a, b := v.window(), other.window()
		for i := range a {
			a[i] = op(a[i], b[i])
		}
		return nil
	}
	for i := 0; i < v.size; i++ {
		p := v.pos(i)
		v.data[p] = op(v.data[p], other.at(i))
	}
	return nil
}

func (v *Vector) zip(other *Vector, op func(a, b float64) float64) (*Vector, error) {
	out := v.Copy()
	if err := out.zipInPlace(other, op); err != nil {
		return nil, err
	}
	return out, nil
}

func add(a, b float64) float64 { return a + b }
func sub(a, b float64) float64 { return a - b }
func mul(a, b float64) float64 { return a * b }
func div(a, b float64) float64 { return a / b }

// LogAddExp returns log(exp(a) + exp(b)) without overflow by factoring out
// the larger operand.
func LogAddExp(a, b float64) float64 {
	switch {
	case a == b:
		return a + math.Ln2
	case a > b:
		return a + math.Log1p(math.Exp(b-a))
	default:
		return b + math.Log1p(math.Exp(a-b))
	}
}

func (v *Vector) Add(other *Vector) (*Vector, error) { return v.zip(other, add) }
func (v *Vector) Sub(other *Vector) (*Vector, error) { return v.zip(other, sub) }
func (v *Vector) Mul(other *Vector) (*Vector, error) { return v.zip(other, mul) }
func (v *Vector) Div(other *Vector) (*Vector, error) { return v.zip(other, div) }

// LogAddExp returns the elementwise LogAddExp of v and other.
func (v *Vector) LogAddExp(other *Vector) (*Vector, error) { return v.zip(other, LogAddExp) }

func (v *Vector) AddInPlace(other *Vector) error { return v.zipInPlace(other, add) }
func (v *Vector) SubInPlace(other *Vector) error { return v.zipInPlace(other, sub) }
func (v *Vector) MulInPlace(other *Vector) error { return v.zipInPlace(other, mul) }
func (v *Vector) DivInPlace(other *Vector) error { return v.zipInPlace(other, div) }
func (v *Vector) LogAddExpInPlace(other *Vector) error { return v.zipInPlace(other, LogAddExp) }

func (v *Vector) AddScalarInPlace(x float64) { v.TransformInPlace(func(a float64) float64 { return a + x }) }
func (v *Vector) SubScalarInPlace(x float64) { v.TransformInPlace(func(a float64) float64 { return a - x }) }
func (v *Vector) MulScalarInPlace(x float64) { v.TransformInPlace(func(a float64) float64 { return a * x }) }
func (v *Vector) DivScalarInPlace(x float64) { v.TransformInPlace(func(a float64) float64 { return a / x }) }

func (v *Vector) AddScalar(x float64) *Vector { return v.Transform(func(a float64) float64 { return a + x }) }
func (v *Vector) SubScalar(x float64) *Vector { return v.Transform(func(a float64) float64 { return a - x }) }
func (v *Vector) MulScalar(x float64) *Vector { return v.Transform(func(a float64) float64 { return a * x }) }
func (v *Vector) DivScalar(x float64) *Vector { return v.Transform(func(a float64) float64 { return a / x }) }
