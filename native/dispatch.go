// Package native routes hot numeric kernels to an optional shared library
// bound at runtime through purego, falling back to the pure-Go
// implementation whenever the library is missing or cannot be bound.
//
// Callers never branch on the outcome: every Dispatcher exposes the same
// contract, only the execution substrate differs.
package native

import (
	"github.com/amikos-tech/pure-strided/summation"
)

// State is the resolution state of a Dispatcher.
type State int

const (
	// StateUnresolved means no load attempt has completed yet.
	StateUnresolved State = iota
	// StateNativeBound means the native kernel library was bound successfully.
	StateNativeBound
	// StateFallbackOnly means every operation uses the pure-Go kernels.
	StateFallbackOnly
)

func (s State) String() string {
	switch s {
	case StateNativeBound:
		return "native"
	case StateFallbackOnly:
		return "fallback"
	default:
		return "unresolved"
	}
}

// SumFunc sums length contiguous values starting at offset.
type SumFunc func(values []float64, offset, length int) float64

// Library describes a bound native kernel library.
type Library struct {
	Path     string
	Version  string
	Features []string
}

// Dispatcher selects between the native and fallback summation kernels.
// A Dispatcher is immutable and safe for concurrent use.
type Dispatcher struct {
	state   State
	sum     SumFunc
	library Library
}

// NewDispatcher returns a dispatcher using sum as its native kernel.
// A nil sum yields a fallback-only dispatcher.
func NewDispatcher(sum SumFunc) *Dispatcher {
	if sum == nil {
		return Fallback()
	}
	return &Dispatcher{state: StateNativeBound, sum: sum}
}

// Fallback returns a dispatcher that always uses balanced summation.
func Fallback() *Dispatcher {
	return &Dispatcher{state: StateFallbackOnly}
}

// State reports whether the dispatcher is native-bound or fallback-only.
func (d *Dispatcher) State() State {
	if d == nil {
		return StateUnresolved
	}
	return d.state
}

// Native returns true if sums are executed by a native kernel.
func (d *Dispatcher) Native() bool {
	return d != nil && d.sum != nil
}

// Library returns details about the bound library.
// The zero value is returned for fallback dispatchers.
func (d *Dispatcher) Library() Library {
	if d == nil {
		return Library{}
	}
	return d.library
}

// Sum returns the sum of values[offset:offset+length].
// The result matches summation.Balanced up to floating-point reassociation.
func (d *Dispatcher) Sum(values []float64, offset, length int) float64 {
	if length <= 0 {
		return 0
	}
	// Bounds are checked here so a native kernel never reads past the slice.
	_ = values[offset : offset+length]
	if !d.Native() {
		return summation.Balanced(values, offset, 1, length)
	}
	return d.sum(values, offset, length)
}
