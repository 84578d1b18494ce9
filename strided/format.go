package strided

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultDisplayCap is the number of elements String renders before eliding
// the middle of a vector.
const DefaultDisplayCap = 1000

// equalULP is the per-element tolerance of Equal in units in the last place.
const equalULP = 4

func formatElement(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// writeTo renders v into b, eliding the middle when the vector has more than
// limit elements. A non-positive limit renders every element.
func (v *Vector) writeTo(b *strings.Builder, limit int) {
	b.WriteByte('[')
	if limit <= 0 || v.size <= limit {
		for i := 0; i < v.size; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatElement(v.at(i)))
		}
		b.WriteByte(']')
		return
	}

	head := limit / 2
	for i := 0; i < head; i++ {
		b.WriteString(formatElement(v.at(i)))
		b.WriteString(", ")
	}
	b.WriteString("...")
	for i := v.size - (limit - head); i < v.size; i++ {
		b.WriteString(", ")
		b.WriteString(formatElement(v.at(i)))
	}
	b.WriteByte(']')
}

// Format renders at most limit elements: the first limit/2, an ellipsis, and
// the remaining limit-limit/2 from the end.
func (v *Vector) Format(limit int) string {
	var b strings.Builder
	v.writeTo(&b, limit)
	return b.String()
}

func (v *Vector) String() string { return v.Format(DefaultDisplayCap) }

// Format renders a with one bracket level per axis. Every axis longer than
// limit is elided like Vector.Format, the outer ones by whole sub-arrays.
func (a *Array) Format(limit int) string {
	var b strings.Builder
	a.writeTo(&b, limit)
	return b.String()
}

func (a *Array) writeTo(b *strings.Builder, limit int) {
	if a.Rank() == 1 {
		a.leaf().writeTo(b, limit)
		return
	}
	n := a.layout.shape[0]
	b.WriteByte('[')
	if limit <= 0 || n <= limit {
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			a.view(i, 0).writeTo(b, limit)
		}
		b.WriteByte(']')
		return
	}

	head := limit / 2
	for i := 0; i < head; i++ {
		a.view(i, 0).writeTo(b, limit)
		b.WriteString(", ")
	}
	b.WriteString("...")
	for i := n - (limit - head); i < n; i++ {
		b.WriteString(", ")
		a.view(i, 0).writeTo(b, limit)
	}
	b.WriteByte(']')
}

func (a *Array) String() string { return a.Format(DefaultDisplayCap) }

func elementsEqual(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return scalar.EqualWithinULP(x, y, equalULP)
}

// Equal reports whether v and other have the same size and elements that
// agree to within a few units in the last place. NaNs compare equal to each
// other.
func (v *Vector) Equal(other *Vector) bool {
	if v.size != other.size {
		return false
	}
	for i := 0; i < v.size; i++ {
		if !elementsEqual(v.at(i), other.at(i)) {
			return false
		}
	}
	return true
}

// Equal reports whether a and other have the same shape and elements that
// agree as in Vector.Equal. Arrays of different rank are never equal.
func (a *Array) Equal(other *Array) bool {
	if checkShape(a.layout.shape, other.layout.shape) != nil {
		return false
	}
	equal := true
	zipLeaves(a, other, func(x, y *Vector) {
		equal = equal && x.Equal(y)
	})
	return equal
}

// canonicalBits maps -0 to 0 and every NaN to a single payload.
func canonicalBits(x float64) uint64 {
	switch {
	case x == 0:
		return 0
	case math.IsNaN(x):
		return 0x7ff8000000000001
	}
	return math.Float64bits(x)
}

// Hash returns an order-sensitive FNV-1a hash of the elements. Vectors with
// identical elements hash the same regardless of stride or offset.
func (v *Vector) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < v.size; i++ {
		binary.LittleEndian.PutUint64(buf[:], canonicalBits(v.at(i)))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// Hash returns an order-sensitive hash of the shape and the elements in
// row-major order.
func (a *Array) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, dim := range a.layout.shape {
		binary.LittleEndian.PutUint64(buf[:], uint64(dim))
		_, _ = h.Write(buf[:])
	}
	a.leaves(func(v *Vector) {
		for i := 0; i < v.size; i++ {
			binary.LittleEndian.PutUint64(buf[:], canonicalBits(v.at(i)))
			_, _ = h.Write(buf[:])
		}
	})
	return h.Sum64()
}
