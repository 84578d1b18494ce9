package native

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var errLibraryNotFound = errors.New("native kernel library not found")

// defaultSearchDirs returns common installation locations. ./build/libs is
// where the C kernel build drops its output.
func defaultSearchDirs(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/usr/local/lib",
			"/opt/homebrew/lib",
			filepath.Join(".", "build", "libs"),
		}
	case "windows":
		return []string{
			".",
			filepath.Join(".", "build", "libs"),
		}
	default:
		return []string{
			"/usr/local/lib",
			"/usr/lib",
			filepath.Join(".", "build", "libs"),
		}
	}
}

// resolveLibraryPath returns the explicit library path if configured,
// otherwise the first valid candidate from the search directories.
func resolveLibraryPath(cfg config) (string, error) {
	if cfg.libraryPath != "" {
		return checkLibraryFile(cfg.libraryPath, cfg.goos)
	}

	var invalidCandidates []error
	for _, dir := range cfg.searchDirs {
		for _, variant := range libraryVariants(cfg.goarch, cfg.features) {
			candidate := filepath.Join(dir, libraryFileName(cfg.goos, variant))
			path, err := checkLibraryFile(candidate, cfg.goos)
			if err == nil {
				return path, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				invalidCandidates = append(invalidCandidates, fmt.Errorf("%s: %w", candidate, err))
			}
		}
	}

	if len(invalidCandidates) > 0 {
		return "", fmt.Errorf("found native kernel library candidates but none are valid: %w", errors.Join(invalidCandidates...))
	}
	return "", errLibraryNotFound
}

// libraryMagic lists the leading bytes of a loadable shared library per OS.
func libraryMagic(goos string) [][]byte {
	switch goos {
	case "darwin":
		return [][]byte{
			{0xcf, 0xfa, 0xed, 0xfe}, // 64-bit Mach-O
			{0xce, 0xfa, 0xed, 0xfe},
			{0xca, 0xfe, 0xba, 0xbe}, // universal binary
		}
	case "windows":
		return [][]byte{[]byte("MZ")}
	default:
		return [][]byte{[]byte("\x7fELF")}
	}
}

// checkLibraryFile returns the absolute path of a non-empty regular file
// whose header matches a shared library for goos.
func checkLibraryFile(path, goos string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("library path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %q: %w", path, err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	switch {
	case err != nil:
		return "", err
	case info.IsDir():
		return "", fmt.Errorf("library path points to a directory: %q", absPath)
	case info.Size() == 0:
		return "", fmt.Errorf("library file is empty: %q", absPath)
	}

	header := make([]byte, 4)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("failed to read header of %q: %w", absPath, err)
	}
	for _, magic := range libraryMagic(goos) {
		if bytes.HasPrefix(header[:n], magic) {
			return absPath, nil
		}
	}
	return "", fmt.Errorf("%q is not a %s shared library", absPath, goos)
}
