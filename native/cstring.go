package native

import "unsafe"

// maxCStringLen bounds the scan for a terminator. Strings read from the
// kernel library are short version tags.
const maxCStringLen = 256

// goString copies a NUL-terminated C string into Go memory, reading at most
// maxCStringLen bytes. A zero pointer yields "".
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}

	// #nosec G103 -- ptr comes from the bound library and points to static storage.
	base := unsafe.Pointer(ptr)
	n := 0
	for n < maxCStringLen && *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}
