//go:build !windows

package native

import "github.com/ebitengine/purego"

// openShared maps the kernel library with its symbols kept local to it, so
// they never satisfy lookups from other libraries in the process.
func openShared(path string) (sharedObject, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return 0, err
	}
	return sharedObject(handle), nil
}

func (so sharedObject) lookup(name string) (uintptr, error) {
	return purego.Dlsym(uintptr(so), name)
}

func (so sharedObject) release() error {
	return purego.Dlclose(uintptr(so))
}
