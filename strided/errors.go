package strided

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidShape is returned for non-positive dimensions or shapes that
	// do not match the data they describe.
	ErrInvalidShape = errors.New("strided: invalid shape")

	// ErrEmptyArray is returned when an array would contain no elements.
	ErrEmptyArray = errors.New("strided: empty array")

	// ErrIndexOutOfRange is returned for out-of-bounds element or axis access.
	ErrIndexOutOfRange = errors.New("strided: index out of range")

	// ErrShapeMismatch is returned when two arrays of different shapes are
	// combined. The concrete error is a *ShapeMismatchError.
	ErrShapeMismatch = errors.New("strided: shape mismatch")

	// ErrUnsupportedAxis is returned for operations defined only along some axes.
	ErrUnsupportedAxis = errors.New("strided: unsupported axis")

	// ErrUnsupportedReshape is returned when reshaping a non-contiguous array
	// to a different shape.
	ErrUnsupportedReshape = errors.New("strided: unsupported reshape")

	// ErrUnsupportedOperation is returned for operations not defined for the
	// array's rank or layout.
	ErrUnsupportedOperation = errors.New("strided: unsupported operation")
)

// ShapeMismatchError reports the two incompatible shapes of a binary operation.
type ShapeMismatchError struct {
	Left  []int
	Right []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("strided: shape mismatch: %v vs %v", e.Left, e.Right)
}

// Is makes errors.Is(err, ErrShapeMismatch) match.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

func checkShape(left, right []int) error {
	if !slices.Equal(left, right) {
		return &ShapeMismatchError{Left: slices.Clone(left), Right: slices.Clone(right)}
	}
	return nil
}

func checkIndex(name string, pos, bound int) error {
	if pos < 0 || pos >= bound {
		return fmt.Errorf("%w: %s must be in [0, %d), got %d", ErrIndexOutOfRange, name, bound, pos)
	}
	return nil
}
