//go:build windows

package native

import "golang.org/x/sys/windows"

func openShared(path string) (sharedObject, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return sharedObject(handle), nil
}

func (so sharedObject) lookup(name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(so), name)
}

func (so sharedObject) release() error {
	return windows.FreeLibrary(windows.Handle(so))
}
