package strided

import (
	"sync/atomic"

	"github.com/amikos-tech/pure-strided/native"
)

var dispatcher atomic.Pointer[native.Dispatcher]

// UseDispatcher sets the summation strategy for dense vectors. Call it once
// at startup to override the process-wide native.Default; a nil d restores it.
func UseDispatcher(d *native.Dispatcher) {
	dispatcher.Store(d)
}

func sumDispatcher() *native.Dispatcher {
	if d := dispatcher.Load(); d != nil {
		return d
	}
	d := native.Default()
	dispatcher.CompareAndSwap(nil, d)
	return d
}
