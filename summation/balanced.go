// Package summation implements the reductions shared by the array engine and
// the native kernel: balanced (pairwise) summation and Kahan compensation.
package summation

// stackSize is sized for the largest block-count exponent of a 31-bit length.
const stackSize = 31 - 2

// maxChunk keeps the number of 4-element blocks below 1<<stackSize so the
// merge stack cannot overflow.
const maxChunk = 1 << 30

// Balanced returns the sum of size elements of values starting at offset and
// stepping by stride.
func Balanced(values []float64, offset, stride, size int) float64 {
	return BalancedBy(size, func(i int) float64 {
		return values[offset+i*stride]
	})
}

// BalancedBy returns the sum of at(0), ..., at(size-1).
//
// Trailing terms that do not fill a block of four are added first into an
// unaligned accumulator. The rest are summed four at a time as (a+b)+(c+d)
// and merged through a fixed stack the way a binary counter propagates
// carries, which yields a pairwise tree without recursion.
func BalancedBy(size int, at func(i int) float64) float64 {
	if size <= maxChunk {
		return balancedChunk(0, size, at)
	}

	var acc float64
	for start := 0; start < size; start += maxChunk {
		acc += balancedChunk(start, min(maxChunk, size-start), at)
	}
	return acc
}

func balancedChunk(start, size int, at func(i int) float64) float64 {
	var accUnaligned float64
	remaining := size
	for remaining%4 != 0 {
		remaining--
		accUnaligned += at(start + remaining)
	}

	var stack [stackSize]float64
	p := 0
	for i := 0; i < remaining; i += 4 {
		j := start + i
		v := at(j) + at(j+1)
		w := at(j+2) + at(j+3)
		v += w

		for bitmask := 4; i&bitmask != 0; bitmask <<= 1 {
			p--
			v += stack[p]
		}
		stack[p] = v
		p++
	}

	var acc float64
	for p > 0 {
		p--
		acc += stack[p]
	}
	return acc + accUnaligned
}

// Naive adds values left to right. It exists as the accuracy baseline.
func Naive(values []float64) float64 {
	var acc float64
	for _, v := range values {
		acc += v
	}
	return acc
}
