package strided

import (
	"fmt"
	"iter"
	"slices"
)

// Array is an N-dimensional strided view of a float64 buffer.
// Views derived from an Array share its buffer.
type Array struct {
	data   []float64
	layout Layout
}

// NewArray wraps data in a dense row-major array of the given shape.
// Without a shape the array is rank 1. The slice is shared, not copied.
func NewArray(data []float64, shape ...int) (*Array, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: array needs at least one element", ErrEmptyArray)
	}
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	size, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, data has %d", ErrInvalidShape, shape, size, len(data))
	}
	layout, err := NewLayout(shape, DefaultStrides(shape), 0)
	if err != nil {
		return nil, err
	}
	return &Array{data: data, layout: layout}, nil
}

// NewArrayStrided wraps data with an explicit layout. The slice is shared.
func NewArrayStrided(data []float64, offset int, shape, strides []int) (*Array, error) {
	layout, err := NewLayout(shape, strides, offset)
	if err != nil {
		return nil, err
	}
	if err := layout.checkBuffer(len(data)); err != nil {
		return nil, err
	}
	return &Array{data: data, layout: layout}, nil
}

// Full returns a dense array of the given shape with every element set to value.
func Full(shape []int, value float64) (*Array, error) {
	a, err := Zeros(shape...)
	if err != nil {
		return nil, err
	}
	a.Fill(value)
	return a, nil
}

// Zeros returns a dense array of the given shape filled with zeros.
func Zeros(shape ...int) (*Array, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: rank must be at least 1", ErrInvalidShape)
	}
	size, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}
	return NewArray(make([]float64, size), shape...)
}

// Shape returns a copy of the per-axis element counts.
func (a *Array) Shape() []int { return a.layout.Shape() }

// Strides returns a copy of the per-axis buffer steps.
func (a *Array) Strides() []int { return a.layout.Strides() }

// Offset returns the buffer position of the first element.
func (a *Array) Offset() int { return a.layout.offset }

// Rank returns the number of axes.
func (a *Array) Rank() int { return a.layout.Rank() }

// Size returns the number of elements.
func (a *Array) Size() int { return a.layout.Size() }

// Layout returns the array's shape, strides and offset.
func (a *Array) Layout() Layout { return a.layout }

// IsContiguous reports whether the array has default row-major strides.
func (a *Array) IsContiguous() bool { return a.layout.IsContiguous() }

// Data returns the shared backing buffer.
func (a *Array) Data() []float64 { return a.data }

// At returns the element at the given multi-index.
func (a *Array) At(index ...int) (float64, error) {
	pos, err := a.layout.Position(index...)
	if err != nil {
		return 0, err
	}
	return a.data[pos], nil
}

// SetAt stores value at the given multi-index.
func (a *Array) SetAt(value float64, index ...int) error {
	pos, err := a.layout.Position(index...)
	if err != nil {
		return err
	}
	a.data[pos] = value
	return nil
}

// leaf returns a rank-1 array as a Vector over the same buffer.
func (a *Array) leaf() *Vector {
	return newVector(a.data, a.layout.offset, a.layout.strides[0], a.layout.shape[0])
}

// Vector returns a rank-1 array as a Vector sharing its buffer.
func (a *Array) Vector() (*Vector, error) {
	if a.Rank() != 1 {
		return nil, fmt.Errorf("%w: rank-%d array is not a vector", ErrUnsupportedOperation, a.Rank())
	}
	return a.leaf(), nil
}

// View returns the rank-(N-1) view with index fixed along axis.
func (a *Array) View(index, axis int) (*Array, error) {
	if a.Rank() == 1 {
		return nil, fmt.Errorf("%w: cannot view a rank-1 array along an axis", ErrUnsupportedOperation)
	}
	layout, err := a.layout.view(index, axis)
	if err != nil {
		return nil, err
	}
	return &Array{data: a.data, layout: layout}, nil
}

// view skips validation for indices known to be in range.
func (a *Array) view(index, axis int) *Array {
	layout, _ := a.layout.view(index, axis)
	return &Array{data: a.data, layout: layout}
}

// Along returns a sequence of the views along axis in index order.
// The sequence is lazy and can be iterated any number of times.
func (a *Array) Along(axis int) (iter.Seq2[int, *Array], error) {
	if a.Rank() == 1 {
		return nil, fmt.Errorf("%w: cannot iterate a rank-1 array along an axis", ErrUnsupportedOperation)
	}
	if err := a.layout.checkAxis(axis); err != nil {
		return nil, err
	}
	n := a.layout.shape[axis]
	return func(yield func(int, *Array) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, a.view(i, axis)) {
				return
			}
		}
	}, nil
}

// Slice returns a view keeping every step-th index in [from, to) along axis.
func (a *Array) Slice(from, to, step, axis int) (*Array, error) {
	layout, err := a.layout.slice(from, to, step, axis)
	if err != nil {
		return nil, err
	}
	return &Array{data: a.data, layout: layout}, nil
}

// Reshape returns a view with the given shape.
//
// Reshaping to the current shape returns a itself, even for non-contiguous
// arrays. Any other shape requires a contiguous array and fails with
// ErrUnsupportedReshape otherwise.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	layout, err := a.layout.Reshape(shape...)
	if err != nil {
		return nil, err
	}
	if slices.Equal(shape, a.layout.shape) {
		return a, nil
	}
	return &Array{data: a.data, layout: layout}, nil
}

// Flatten returns the elements as a Vector in row-major order. Contiguous
// arrays are flattened without copying.
func (a *Array) Flatten() *Vector {
	if a.IsContiguous() {
		return newVector(a.data, a.layout.offset, 1, a.Size())
	}
	return newVector(a.ToSlice(), 0, 1, a.Size())
}

// leaves calls fn with every rank-1 view of a in row-major order.
func (a *Array) leaves(fn func(v *Vector)) {
	if a.Rank() == 1 {
		fn(a.leaf())
		return
	}
	for i := 0; i < a.layout.shape[0]; i++ {
		a.view(i, 0).leaves(fn)
	}
}

// zipLeaves calls fn with matching rank-1 views of a and b.
// The caller guarantees equal shapes.
func zipLeaves(a, b *Array, fn func(x, y *Vector)) {
	if a.Rank() == 1 {
		fn(a.leaf(), b.leaf())
		return
	}
	for i := 0; i < a.layout.shape[0]; i++ {
		zipLeaves(a.view(i, 0), b.view(i, 0), fn)
	}
}

// ToSlice returns the elements in row-major order in a new slice.
func (a *Array) ToSlice() []float64 {
	out := make([]float64, 0, a.Size())
	a.leaves(func(v *Vector) {
		if v.kind == denseKind {
			out = append(out, v.window()...)
			return
		}
		for i := 0; i < v.size; i++ {
			out = append(out, v.at(i))
		}
	})
	return out
}

// Copy returns a dense row-major array with the same elements and a new buffer.
func (a *Array) Copy() *Array {
	shape := a.Shape()
	return &Array{
		data:   a.ToSlice(),
		layout: Layout{shape: shape, strides: DefaultStrides(shape), offset: 0},
	}
}

// CopyTo copies the elements of a into dst.
func (a *Array) CopyTo(dst *Array) error {
	if err := checkShape(a.layout.shape, dst.layout.shape); err != nil {
		return err
	}
	zipLeaves(a, dst, func(x, y *Vector) {
		_ = x.CopyTo(y)
	})
	return nil
}

// Fill sets every element to value.
func (a *Array) Fill(value float64) {
	a.leaves(func(v *Vector) { v.Fill(value) })
}
