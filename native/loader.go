package native

import (
	"errors"
	"log/slog"
	"sync"
)

var (
	loadOnce sync.Once
	loaded   *Dispatcher
)

// EnsureLoaded resolves the process-wide dispatcher on first use and returns
// it. Later calls return the same dispatcher and ignore opts. Concurrent
// first calls block until the single load attempt finishes.
func EnsureLoaded(opts ...Option) *Dispatcher {
	loadOnce.Do(func() {
		loaded = Load(opts...)
	})
	return loaded
}

// Default returns the process-wide dispatcher configured from the
// environment.
func Default() *Dispatcher {
	return EnsureLoaded()
}

// Available reports whether the process-wide dispatcher is native-bound.
func Available() bool {
	return Default().Native()
}

// Load attempts to bind the native kernel library and returns a dispatcher.
// Load never fails: a missing, invalid or incompatible library is logged and
// a fallback dispatcher is returned instead.
func Load(opts ...Option) *Dispatcher {
	cfg, err := resolveConfig(opts...)
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	if err != nil {
		logger.Warn("invalid native kernel configuration, using fallback summation", "error", &loadError{Op: "configure", Err: err})
		return Fallback()
	}
	if cfg.disabled {
		logger.Debug("native kernels disabled, using fallback summation")
		return Fallback()
	}

	path, err := resolveLibraryPath(cfg)
	if err != nil {
		if errors.Is(err, errLibraryNotFound) {
			logger.Debug("native kernel library not found, using fallback summation", "search_dirs", cfg.searchDirs)
		} else {
			logger.Warn("native kernel library unusable, using fallback summation", "error", &loadError{Op: "resolve", Err: err})
		}
		return Fallback()
	}

	lib, err := bindLibrary(path)
	if err != nil {
		logger.Warn("failed to bind native kernel library, using fallback summation", "error", err)
		return Fallback()
	}

	features := cfg.features.names()
	logger.Debug("native kernel library bound", "path", lib.path, "version", lib.version, "cpu_features", features)
	return &Dispatcher{
		state: StateNativeBound,
		sum:   lib.sum,
		library: Library{
			Path:     lib.path,
			Version:  lib.version,
			Features: features,
		},
	}
}
