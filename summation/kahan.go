package summation

// Kahan is a compensated running sum. The zero value is an empty sum.
type Kahan struct {
	sum float64
	c   float64
}

// Add feeds x into the accumulator.
func (k *Kahan) Add(x float64) {
	y := x - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}

// Sum returns the compensated total so far.
func (k *Kahan) Sum() float64 {
	return k.sum
}
