// Package strided implements dense, strided N-dimensional float64 arrays.
//
// A Vector is a rank-1 view over a shared backing buffer; an Array
// generalizes it to any rank through a Layout. Views never copy: they share
// the buffer of the array they were derived from. Arrays are not
// synchronized, so concurrent mutation of a shared buffer must be serialized
// by the caller.
package strided

import (
	"fmt"
)

type vectorKind uint8

const (
	// denseKind vectors have stride 1 and take the contiguous fast paths,
	// including native summation.
	denseKind vectorKind = iota
	stridedKind
)

// Vector is a rank-1 strided view of a float64 buffer.
type Vector struct {
	data   []float64
	offset int
	stride int
	size   int
	kind   vectorKind
}

func newVector(data []float64, offset, stride, size int) *Vector {
	kind := stridedKind
	if stride == 1 {
		kind = denseKind
	}
	return &Vector{data: data, offset: offset, stride: stride, size: size, kind: kind}
}

// NewDense wraps data in a dense vector. The slice is shared, not copied.
func NewDense(data []float64) (*Vector, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: dense vector needs at least one element", ErrEmptyArray)
	}
	return newVector(data, 0, 1, len(data)), nil
}

// NewStrided returns a vector of size elements of data, starting at offset
// and stepping by stride. The slice is shared, not copied.
func NewStrided(data []float64, offset, stride, size int) (*Vector, error) {
	if size == 0 {
		return nil, fmt.Errorf("%w: strided vector needs at least one element", ErrEmptyArray)
	}
	layout, err := NewLayout([]int{size}, []int{stride}, offset)
	if err != nil {
		return nil, err
	}
	if err := layout.checkBuffer(len(data)); err != nil {
		return nil, err
	}
	return newVector(data, offset, stride, size), nil
}

// NewVector returns a dense vector of size zeros.
func NewVector(size int) (*Vector, error) {
	if size == 0 {
		return nil, fmt.Errorf("%w: vector needs at least one element", ErrEmptyArray)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidShape, size)
	}
	return newVector(make([]float64, size), 0, 1, size), nil
}

// FullVector returns a dense vector of size elements set to value.
func FullVector(size int, value float64) (*Vector, error) {
	v, err := NewVector(size)
	if err != nil {
		return nil, err
	}
	v.Fill(value)
	return v, nil
}

// Size returns the number of elements.
func (v *Vector) Size() int { return v.size }

// Offset returns the buffer position of the first element.
func (v *Vector) Offset() int { return v.offset }

// Stride returns the buffer step between consecutive elements.
func (v *Vector) Stride() int { return v.stride }

// IsDense reports whether the vector has stride 1.
func (v *Vector) IsDense() bool { return v.kind == denseKind }

// Shape returns the one-element shape of the vector.
func (v *Vector) Shape() []int { return []int{v.size} }

// Data returns the shared backing buffer.
func (v *Vector) Data() []float64 { return v.data }

func (v *Vector) pos(i int) int { return v.offset + i*v.stride }

func (v *Vector) at(i int) float64 { return v.data[v.offset+i*v.stride] }

// window returns the logical elements of a dense vector as a subslice.
func (v *Vector) window() []float64 { return v.data[v.offset : v.offset+v.size] }

// Get returns the element at pos.
func (v *Vector) Get(pos int) (float64, error) {
	if err := checkIndex("pos", pos, v.size); err != nil {
		return 0, err
	}
	return v.at(pos), nil
}

// Set stores value at pos.
func (v *Vector) Set(pos int, value float64) error {
	if err := checkIndex("pos", pos, v.size); err != nil {
		return err
	}
	v.data[v.pos(pos)] = value
	return nil
}

// Fill sets every element to value.
func (v *Vector) Fill(value float64) {
	if v.kind == denseKind {
		w := v.window()
		for i := range w {
			w[i] = value
		}
		return
	}
	for i := 0; i < v.size; i++ {
		v.data[v.pos(i)] = value
	}
}

// ToSlice returns the elements in a new slice.
func (v *Vector) ToSlice() []float64 {
	out := make([]float64, v.size)
	if v.kind == denseKind {
		copy(out, v.window())
		return out
	}
	for i := range out {
		out[i] = v.at(i)
	}
	return out
}

// Copy returns a dense vector with the same elements and a new buffer.
func (v *Vector) Copy() *Vector {
	return newVector(v.ToSlice(), 0, 1, v.size)
}

// CopyTo copies the elements of v into dst.
func (v *Vector) CopyTo(dst *Vector) error {
	if err := checkShape(v.Shape(), dst.Shape()); err != nil {
		return err
	}
	if v.kind == denseKind && dst.kind == denseKind {
		copy(dst.window(), v.window())
		return nil
	}
	for i := 0; i < v.size; i++ {
		dst.data[dst.pos(i)] = v.at(i)
	}
	return nil
}

// Reorder permutes the elements in place so that element i becomes the
// former element indices[i]. Only axis 0 is supported.
func (v *Vector) Reorder(indices []int, axis int) error {
	if axis != 0 {
		return fmt.Errorf("%w: vectors can only be reordered along axis 0, got %d", ErrUnsupportedAxis, axis)
	}
	if len(indices) != v.size {
		return &ShapeMismatchError{Left: []int{len(indices)}, Right: v.Shape()}
	}
	seen := make([]bool, v.size)
	for _, idx := range indices {
		if err := checkIndex("reorder index", idx, v.size); err != nil {
			return err
		}
		if seen[idx] {
			return fmt.Errorf("%w: reorder index %d repeats, indices must be a permutation", ErrIndexOutOfRange, idx)
		}
		seen[idx] = true
	}

	original := v.ToSlice()
	for i, idx := range indices {
		v.data[v.pos(i)] = original[idx]
	}
	return nil
}

// Slice returns a view of every step-th element in [from, to).
func (v *Vector) Slice(from, to, step int) (*Vector, error) {
	sliced, err := v.Array().Slice(from, to, step, 0)
	if err != nil {
		return nil, err
	}
	return sliced.leaf(), nil
}

// Array returns v as a rank-1 Array sharing the same buffer.
func (v *Vector) Array() *Array {
	return &Array{
		data:   v.data,
		layout: Layout{shape: []int{v.size}, strides: []int{v.stride}, offset: v.offset},
	}
}

// Reshape returns an Array view with the given shape. See Array.Reshape.
func (v *Vector) Reshape(shape ...int) (*Array, error) {
	return v.Array().Reshape(shape...)
}
