package strided

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func dense(t *testing.T, values ...float64) *Vector {
	t.Helper()
	v, err := NewDense(values)
	require.NoError(t, err)
	return v
}

func TestVectorConstruction(t *testing.T) {
	t.Run("empty dense", func(t *testing.T) {
		_, err := NewDense(nil)
		assert.ErrorIs(t, err, ErrEmptyArray)
	})

	t.Run("empty strided", func(t *testing.T) {
		_, err := NewStrided([]float64{1, 2}, 0, 1, 0)
		assert.ErrorIs(t, err, ErrEmptyArray)
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := NewStrided([]float64{1, 2}, 0, 1, -1)
		assert.ErrorIs(t, err, ErrInvalidShape)
		_, err = NewVector(-3)
		assert.ErrorIs(t, err, ErrInvalidShape)
	})

	t.Run("past buffer end", func(t *testing.T) {
		_, err := NewStrided([]float64{1, 2, 3}, 1, 2, 2)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("kind follows stride", func(t *testing.T) {
		d := dense(t, 1, 2, 3)
		assert.True(t, d.IsDense())

		s, err := NewStrided([]float64{0, 1, 2, 3, 4, 5}, 1, 2, 3)
		require.NoError(t, err)
		assert.False(t, s.IsDense())
		assert.Equal(t, []float64{1, 3, 5}, s.ToSlice())

		unit, err := NewStrided([]float64{0, 1, 2, 3}, 1, 1, 2)
		require.NoError(t, err)
		assert.True(t, unit.IsDense())
		assert.Equal(t, []float64{1, 2}, unit.ToSlice())
	})

	t.Run("negative stride", func(t *testing.T) {
		s, err := NewStrided([]float64{0, 1, 2, 3, 4}, 4, -2, 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{4, 2, 0}, s.ToSlice())
		assert.Equal(t, 6.0, s.Sum())
	})

	t.Run("full", func(t *testing.T) {
		v, err := FullVector(4, 2.5)
		require.NoError(t, err)
		assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, v.ToSlice())
	})
}

func TestVectorGetSet(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5}
	v, err := NewStrided(data, 1, 2, 3)
	require.NoError(t, err)

	got, err := v.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	require.NoError(t, v.Set(1, 30))
	assert.Equal(t, 30.0, data[3], "views share the backing buffer")

	_, err = v.Get(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, v.Set(-1, 0), ErrIndexOutOfRange)
}

func TestVectorCopyDoesNotAlias(t *testing.T) {
	data := []float64{1, 2, 3}
	v := dense(t, data...)
	c := v.Copy()

	require.NoError(t, c.Set(0, 100))
	assert.Equal(t, 1.0, data[0])
	assert.True(t, v.Equal(v.Copy()))

	rebuilt := dense(t, v.ToSlice()...)
	assert.True(t, v.Equal(rebuilt))
}

func TestVectorCopyTo(t *testing.T) {
	src := dense(t, 1, 2, 3)
	buf := make([]float64, 6)
	dst, err := NewStrided(buf, 0, 2, 3)
	require.NoError(t, err)

	require.NoError(t, src.CopyTo(dst))
	assert.Equal(t, []float64{1, 0, 2, 0, 3, 0}, buf)

	short := dense(t, 0, 0)
	assert.ErrorIs(t, src.CopyTo(short), ErrShapeMismatch)
	assert.Equal(t, []float64{0, 0}, short.ToSlice())
}

func TestVectorReorder(t *testing.T) {
	v := dense(t, 10, 20, 30)
	require.NoError(t, v.Reorder([]int{2, 0, 1}, 0))
	assert.Equal(t, []float64{30, 10, 20}, v.ToSlice())

	tests := []struct {
		name    string
		indices []int
		axis    int
		wantErr error
	}{
		{name: "axis one", indices: []int{0, 1, 2}, axis: 1, wantErr: ErrUnsupportedAxis},
		{name: "length", indices: []int{0, 1}, wantErr: ErrShapeMismatch},
		{name: "out of range", indices: []int{0, 1, 3}, wantErr: ErrIndexOutOfRange},
		{name: "repeat", indices: []int{0, 0, 1}, wantErr: ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, v.Reorder(tt.indices, tt.axis), tt.wantErr)
			assert.Equal(t, []float64{30, 10, 20}, v.ToSlice(), "failed reorder must not mutate")
		})
	}
}

func TestVectorArgExtremaPreferRightmost(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantMin int
		wantMax int
	}{
		{name: "duplicate minimum", values: []float64{3, 1, 1, 5}, wantMin: 2, wantMax: 3},
		{name: "duplicate maximum", values: []float64{5, 1, 5, 0}, wantMin: 3, wantMax: 2},
		{name: "all equal", values: []float64{7, 7, 7}, wantMin: 2, wantMax: 2},
		{name: "single", values: []float64{4}, wantMin: 0, wantMax: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := dense(t, tt.values...)
			assert.Equal(t, tt.wantMin, v.ArgMin())
			assert.Equal(t, tt.wantMax, v.ArgMax())
		})
	}

	v := dense(t, 3, -2, 8, 1)
	assert.Equal(t, -2.0, v.Min())
	assert.Equal(t, 8.0, v.Max())
}

func TestVectorCumSum(t *testing.T) {
	v := dense(t, 1, 2, 3, 4)
	v.CumSum()
	assert.Equal(t, []float64{1, 3, 6, 10}, v.ToSlice())

	data := []float64{1, -1, 2, -1, 3, -1}
	s, err := NewStrided(data, 0, 2, 3)
	require.NoError(t, err)
	s.CumSum()
	assert.Equal(t, []float64{1, -1, 3, -1, 6, -1}, data)
}

func TestVectorCumSumCompensates(t *testing.T) {
	values := make([]float64, 10001)
	values[0] = 1
	for i := 1; i < len(values); i++ {
		values[i] = 1e-16
	}
	v := dense(t, values...)
	v.CumSum()

	last, err := v.Get(v.Size() - 1)
	require.NoError(t, err)
	assert.InDelta(t, 1+1e-12, last, 1e-15)
}

func TestVectorLogSumExp(t *testing.T) {
	assert.InDelta(t, math.Ln2, dense(t, 0, 0).LogSumExp(), 1e-15)

	large := dense(t, 1000, 1000, 0).LogSumExp()
	assert.False(t, math.IsInf(large, 0))
	assert.InDelta(t, 1000+math.Ln2, large, 1e-12)

	assert.True(t, math.IsInf(dense(t, math.Inf(-1), math.Inf(-1)).LogSumExp(), -1))
	assert.True(t, math.IsInf(dense(t, 1, math.Inf(1)).LogSumExp(), 1))
}

func TestVectorRescale(t *testing.T) {
	v := dense(t, 1, 1, 2)
	v.Rescale()
	assert.Equal(t, []float64{0.25, 0.25, 0.5}, v.ToSlice())

	l := dense(t, math.Log(1), math.Log(3))
	l.LogRescale()
	if diff := cmp.Diff([]float64{math.Log(0.25), math.Log(0.75)}, l.ToSlice(), approx); diff != "" {
		t.Errorf("LogRescale mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 0, l.LogSumExp(), 1e-15)
}

func TestVectorDot(t *testing.T) {
	a := dense(t, 1, 2, 3)
	b := dense(t, 4, 5, 6)

	got, err := a.Dot(b)
	require.NoError(t, err)
	assert.Equal(t, 32.0, got)

	ints, err := DotValues(a, []int32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 14.0, ints)

	shorts, err := DotValues(a, []int16{-1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, shorts)

	_, err = a.Dot(dense(t, 1, 2))
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = DotValues(a, []int{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestVectorFoldReduce(t *testing.T) {
	v := dense(t, 1, 2, 3, 4)
	assert.Equal(t, 34.0, v.Fold(24, func(acc, x float64) float64 { return acc + x }))
	assert.Equal(t, 24.0, v.Reduce(func(acc, x float64) float64 { return acc * x }))
	assert.Equal(t, 5.0, dense(t, 5).Reduce(func(acc, x float64) float64 { return acc - x }))
}

func TestVectorTransforms(t *testing.T) {
	v := dense(t, 0, 1, 2)

	exp := v.Exp()
	if diff := cmp.Diff([]float64{1, math.E, math.E * math.E}, exp.ToSlice(), approx); diff != "" {
		t.Errorf("Exp mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []float64{0, 1, 2}, v.ToSlice(), "out-of-place transform must not mutate")

	exp.LogInPlace()
	if diff := cmp.Diff(v.ToSlice(), exp.ToSlice(), approx); diff != "" {
		t.Errorf("Log(Exp(x)) mismatch (-want +got):\n%s", diff)
	}

	tiny := dense(t, 1e-20)
	assert.Equal(t, 1e-20, tiny.Expm1().ToSlice()[0])
	assert.Equal(t, 1e-20, tiny.Log1p().ToSlice()[0])

	v.TransformInPlace(func(x float64) float64 { return x * x })
	assert.Equal(t, []float64{0, 1, 4}, v.ToSlice())
}

func TestVectorArithmetic(t *testing.T) {
	a := dense(t, 1, 2, 3)
	b := dense(t, 4, 5, 6)

	tests := []struct {
		name string
		op   func(*Vector, *Vector) (*Vector, error)
		want []float64
	}{
		{name: "add", op: (*Vector).Add, want: []float64{5, 7, 9}},
		{name: "sub", op: (*Vector).Sub, want: []float64{-3, -3, -3}},
		{name: "mul", op: (*Vector).Mul, want: []float64{4, 10, 18}},
		{name: "div", op: (*Vector).Div, want: []float64{0.25, 0.4, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ToSlice())
			assert.Equal(t, []float64{1, 2, 3}, a.ToSlice())
		})
	}

	require.NoError(t, a.AddInPlace(b))
	assert.Equal(t, []float64{5, 7, 9}, a.ToSlice())
	require.NoError(t, a.SubInPlace(b))
	require.NoError(t, a.MulInPlace(b))
	require.NoError(t, a.DivInPlace(b))
	assert.Equal(t, []float64{1, 2, 3}, a.ToSlice())

	assert.Equal(t, []float64{3, 4, 5}, a.AddScalar(2).ToSlice())
	assert.Equal(t, []float64{-1, 0, 1}, a.SubScalar(2).ToSlice())
	assert.Equal(t, []float64{2, 4, 6}, a.MulScalar(2).ToSlice())
	assert.Equal(t, []float64{0.5, 1, 1.5}, a.DivScalar(2).ToSlice())
}

func TestVectorMixedStrideArithmetic(t *testing.T) {
	data := []float64{1, 0, 2, 0, 3, 0}
	s, err := NewStrided(data, 0, 2, 3)
	require.NoError(t, err)

	require.NoError(t, s.AddInPlace(dense(t, 10, 20, 30)))
	assert.Equal(t, []float64{11, 0, 22, 0, 33, 0}, data)

	got, err := dense(t, 1, 1, 1).Mul(s)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33}, got.ToSlice())
}

func TestVectorShapeMismatch(t *testing.T) {
	a := dense(t, 1, 2, 3)
	b := dense(t, 1, 2, 3, 4)

	_, err := a.Add(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	var mismatch *ShapeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []int{3}, mismatch.Left)
	assert.Equal(t, []int{4}, mismatch.Right)
	assert.Contains(t, err.Error(), "[3] vs [4]")

	assert.ErrorIs(t, a.AddInPlace(b), ErrShapeMismatch)
	assert.Equal(t, []float64{1, 2, 3}, a.ToSlice(), "failed in-place op must not mutate")
}

func TestLogAddExp(t *testing.T) {
	assert.InDelta(t, math.Ln2, LogAddExp(0, 0), 1e-15)
	assert.InDelta(t, 1000, LogAddExp(1000, 0), 1e-12)
	assert.InDelta(t, 1000, LogAddExp(0, 1000), 1e-12)
	assert.True(t, math.IsInf(LogAddExp(math.Inf(-1), math.Inf(-1)), -1))
	assert.Equal(t, 3.0, LogAddExp(3, math.Inf(-1)))

	got, err := dense(t, 0, 1000).LogAddExp(dense(t, 0, 1000))
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{math.Ln2, 1000 + math.Ln2}, got.ToSlice(), approx); diff != "" {
		t.Errorf("LogAddExp mismatch (-want +got):\n%s", diff)
	}
}

func TestVectorSlice(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	v := dense(t, data...)

	s, err := v.Slice(1, 8, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 7}, s.ToSlice())
	assert.False(t, s.IsDense())

	require.NoError(t, s.Set(1, 40))
	assert.Equal(t, 40.0, data[4])

	_, err = v.Slice(2, 2, 1)
	assert.ErrorIs(t, err, ErrEmptyArray)
}

func TestVectorReshape(t *testing.T) {
	v := dense(t, 1, 2, 3, 4, 5, 6)
	a, err := v.Reshape(2, 3)
	require.NoError(t, err)

	got, err := a.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)

	s, err := v.Slice(0, 6, 2)
	require.NoError(t, err)
	_, err = s.Reshape(3, 1)
	assert.ErrorIs(t, err, ErrUnsupportedReshape)

	same, err := s.Reshape(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5}, same.ToSlice())
}

func TestVectorExtremaPropagateNaN(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name    string
		values  []float64
		wantArg int
	}{
		{name: "leading", values: []float64{nan, 1, 0}, wantArg: 0},
		{name: "interior", values: []float64{1, nan, 0}, wantArg: 1},
		{name: "trailing", values: []float64{1, 0, nan}, wantArg: 2},
		{name: "first of several", values: []float64{1, nan, 0, nan}, wantArg: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := dense(t, tt.values...)
			assert.Equal(t, tt.wantArg, v.ArgMin())
			assert.Equal(t, tt.wantArg, v.ArgMax())
			assert.True(t, math.IsNaN(v.Min()))
			assert.True(t, math.IsNaN(v.Max()))
		})
	}
}
