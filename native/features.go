package native

import (
	"golang.org/x/sys/cpu"
)

const libraryBaseName = "stridedsimd"

type cpuFeatures struct {
	AVX2  bool
	SSE2  bool
	ASIMD bool
}

func detectFeatures() cpuFeatures {
	return cpuFeatures{
		AVX2:  cpu.X86.HasAVX2,
		SSE2:  cpu.X86.HasSSE2,
		ASIMD: cpu.ARM64.HasASIMD,
	}
}

func (f cpuFeatures) names() []string {
	var names []string
	if f.AVX2 {
		names = append(names, "avx2")
	}
	if f.SSE2 {
		names = append(names, "sse2")
	}
	if f.ASIMD {
		names = append(names, "neon")
	}
	return names
}

// libraryVariants lists kernel builds usable on this CPU, best first.
// The generic build always comes last.
func libraryVariants(goarch string, f cpuFeatures) []string {
	var variants []string
	switch goarch {
	case "amd64", "386":
		if f.AVX2 {
			variants = append(variants, libraryBaseName+".avx2")
		}
		if f.SSE2 {
			variants = append(variants, libraryBaseName+".sse2")
		}
	case "arm64":
		if f.ASIMD {
			variants = append(variants, libraryBaseName+".neon")
		}
	}
	return append(variants, libraryBaseName)
}

// libraryFileName maps a variant to the platform's shared library file name.
func libraryFileName(goos, variant string) string {
	switch goos {
	case "windows":
		return variant + ".dll"
	case "darwin", "ios":
		return "lib" + variant + ".dylib"
	default:
		return "lib" + variant + ".so"
	}
}
