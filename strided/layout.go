package strided

import (
	"fmt"
	"slices"
)

// Layout maps multi-indices onto positions in a flat backing buffer.
//
// The position of index (i0, ..., iN-1) is offset + Σ ik*strides[k].
// A Layout is immutable; accessors return copies.
type Layout struct {
	shape   []int
	strides []int
	offset  int
}

// NewLayout validates shape, strides and offset and returns a Layout.
// Every dimension must be positive and strides must have the same rank as shape.
func NewLayout(shape, strides []int, offset int) (Layout, error) {
	if len(shape) == 0 {
		return Layout{}, fmt.Errorf("%w: rank must be at least 1", ErrInvalidShape)
	}
	if len(strides) != len(shape) {
		return Layout{}, fmt.Errorf("%w: %d strides for a rank-%d shape", ErrInvalidShape, len(strides), len(shape))
	}
	if offset < 0 {
		return Layout{}, fmt.Errorf("%w: offset must be non-negative, got %d", ErrIndexOutOfRange, offset)
	}
	if _, err := shapeSize(shape); err != nil {
		return Layout{}, err
	}
	return Layout{
		shape:   slices.Clone(shape),
		strides: slices.Clone(strides),
		offset:  offset,
	}, nil
}

// DefaultStrides returns the row-major strides of a dense array of the given shape.
func DefaultStrides(shape []int) []int {
	strides := make([]int, len(shape))
	if len(shape) == 0 {
		return strides
	}
	strides[len(shape)-1] = 1
	for i := len(shape) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * shape[i+1]
	}
	return strides
}

func shapeSize(shape []int) (int, error) {
	maxInt := int(^uint(0) >> 1)
	size := 1
	for i, dim := range shape {
		if dim <= 0 {
			return 0, fmt.Errorf("%w: dimension %d must be positive, got %d", ErrInvalidShape, i, dim)
		}
		if size > maxInt/dim {
			return 0, fmt.Errorf("%w: shape %v exceeds maximum supported element count", ErrInvalidShape, shape)
		}
		size *= dim
	}
	return size, nil
}

// Shape returns a copy of the per-axis element counts.
func (l Layout) Shape() []int { return slices.Clone(l.shape) }

// Strides returns a copy of the per-axis buffer steps.
func (l Layout) Strides() []int { return slices.Clone(l.strides) }

// Offset returns the buffer position of the first element.
func (l Layout) Offset() int { return l.offset }

// Rank returns the number of axes.
func (l Layout) Rank() int { return len(l.shape) }

// Size returns the number of elements.
func (l Layout) Size() int {
	size := 1
	for _, dim := range l.shape {
		size *= dim
	}
	return size
}

// IsContiguous reports whether the layout has default row-major strides.
// Strides of axes with a single element are ignored since they are never
// stepped along.
func (l Layout) IsContiguous() bool {
	want := DefaultStrides(l.shape)
	for axis, dim := range l.shape {
		if dim != 1 && l.strides[axis] != want[axis] {
			return false
		}
	}
	return true
}

// Position returns the buffer position of a multi-index.
func (l Layout) Position(index ...int) (int, error) {
	if len(index) != len(l.shape) {
		return 0, fmt.Errorf("%w: expected %d indices, got %d", ErrIndexOutOfRange, len(l.shape), len(index))
	}
	pos := l.offset
	for axis, i := range index {
		if err := checkIndex(fmt.Sprintf("index along axis %d", axis), i, l.shape[axis]); err != nil {
			return 0, err
		}
		pos += i * l.strides[axis]
	}
	return pos, nil
}

// span returns the lowest and highest buffer positions the layout touches.
func (l Layout) span() (lo, hi int) {
	lo, hi = l.offset, l.offset
	for axis, dim := range l.shape {
		step := (dim - 1) * l.strides[axis]
		if step < 0 {
			lo += step
		} else {
			hi += step
		}
	}
	return lo, hi
}

func (l Layout) checkBuffer(n int) error {
	lo, hi := l.span()
	if lo < 0 || hi >= n {
		return fmt.Errorf("%w: layout spans buffer positions [%d, %d] but buffer has %d elements", ErrIndexOutOfRange, lo, hi, n)
	}
	return nil
}

// Reshape returns a layout with the given shape over the same elements.
//
// Requesting the current shape returns l unchanged, whatever its strides.
// A different shape requires a contiguous layout and gets default row-major
// strides at the same offset.
func (l Layout) Reshape(shape ...int) (Layout, error) {
	size, err := shapeSize(shape)
	if err != nil {
		return Layout{}, err
	}
	if size != l.Size() {
		return Layout{}, fmt.Errorf("%w: cannot reshape %v (%d elements) to %v (%d elements)", ErrInvalidShape, l.shape, l.Size(), shape, size)
	}
	if slices.Equal(shape, l.shape) {
		return l, nil
	}
	if !l.IsContiguous() {
		return Layout{}, fmt.Errorf("%w: layout with shape %v and strides %v is not contiguous", ErrUnsupportedReshape, l.shape, l.strides)
	}

	return Layout{shape: slices.Clone(shape), strides: DefaultStrides(shape), offset: l.offset}, nil
}

func (l Layout) checkAxis(axis int) error {
	if axis < 0 || axis >= len(l.shape) {
		return fmt.Errorf("%w: axis %d for a rank-%d array", ErrIndexOutOfRange, axis, len(l.shape))
	}
	return nil
}

// view fixes index along axis and drops that axis. The caller guarantees rank > 1.
func (l Layout) view(index, axis int) (Layout, error) {
	if err := l.checkAxis(axis); err != nil {
		return Layout{}, err
	}
	if err := checkIndex("index", index, l.shape[axis]); err != nil {
		return Layout{}, err
	}
	return Layout{
		shape:   slices.Delete(slices.Clone(l.shape), axis, axis+1),
		strides: slices.Delete(slices.Clone(l.strides), axis, axis+1),
		offset:  l.offset + index*l.strides[axis],
	}, nil
}

// slice keeps every step-th index in [from, to) along axis.
func (l Layout) slice(from, to, step, axis int) (Layout, error) {
	if err := l.checkAxis(axis); err != nil {
		return Layout{}, err
	}
	if step <= 0 {
		return Layout{}, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidShape, step)
	}
	if from < 0 || to > l.shape[axis] || from > to {
		return Layout{}, fmt.Errorf("%w: slice [%d, %d) of axis %d with %d elements", ErrIndexOutOfRange, from, to, axis, l.shape[axis])
	}
	if from == to {
		return Layout{}, fmt.Errorf("%w: slice [%d, %d) is empty", ErrEmptyArray, from, to)
	}

	shape := slices.Clone(l.shape)
	strides := slices.Clone(l.strides)
	shape[axis] = (to - from + step - 1) / step
	strides[axis] *= step
	return Layout{shape: shape, strides: strides, offset: l.offset + from*l.strides[axis]}, nil
}
