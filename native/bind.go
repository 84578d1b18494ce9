package native

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

const (
	sumSymbol     = "strided_sum"
	versionSymbol = "strided_version"
)

// loadError reports why a native library could not be bound. It never
// escapes the package: Load logs it and returns a fallback dispatcher.
type loadError struct {
	Path string
	Op   string
	Err  error
}

func (e *loadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("native kernel %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("native kernel %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *loadError) Unwrap() error {
	return e.Err
}

// sharedObject is the platform handle of a loaded kernel library.
type sharedObject uintptr

type boundLibrary struct {
	handle  sharedObject
	path    string
	version string
	sum     SumFunc
}

func bindLibrary(path string) (lib *boundLibrary, err error) {
	handle, err := openShared(path)
	if err != nil {
		return nil, &loadError{Path: path, Op: "open", Err: err}
	}
	if handle == 0 {
		return nil, &loadError{Path: path, Op: "open", Err: errors.New("loader returned a nil handle")}
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, handle.release())
		}
	}()

	var versionFunc func() uintptr
	if err := handle.register(versionSymbol, &versionFunc); err != nil {
		return nil, &loadError{Path: path, Op: "bind", Err: err}
	}
	version, err := checkVersion(goString(versionFunc()))
	if err != nil {
		return nil, &loadError{Path: path, Op: "version check", Err: err}
	}

	var sumFunc func(values *float64, offset, length int64) float64
	if err := handle.register(sumSymbol, &sumFunc); err != nil {
		return nil, &loadError{Path: path, Op: "bind", Err: err}
	}

	return &boundLibrary{
		handle:  handle,
		path:    path,
		version: version.String(),
		sum: func(values []float64, offset, length int) float64 {
			result := sumFunc(unsafe.SliceData(values), int64(offset), int64(length))
			// The kernel reads values synchronously; keep the backing array alive for the call.
			runtime.KeepAlive(values)
			return result
		},
	}, nil
}

// register binds the exported function name to the Go function pointed to by fptr.
func (so sharedObject) register(name string, fptr any) (err error) {
	symbol, err := so.lookup(name)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	if symbol == 0 {
		return fmt.Errorf("symbol %s resolved to a nil address", name)
	}

	// RegisterFunc panics on signatures the platform cannot call.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to register %s: %v", name, r)
		}
	}()
	purego.RegisterFunc(fptr, symbol)
	return nil
}
