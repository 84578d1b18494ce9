package native

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const (
	envLibraryPath = "STRIDED_NATIVE_LIB_PATH"
	envLibraryDir  = "STRIDED_NATIVE_LIB_DIR"
	envDisable     = "STRIDED_NATIVE_DISABLE"
)

// Option configures Load and EnsureLoaded.
type Option func(*config) error

type config struct {
	libraryPath string
	searchDirs  []string
	disabled    bool
	logger      *slog.Logger
	goos        string
	goarch      string
	features    cpuFeatures
}

// WithLibraryPath forces the loader to use an existing shared library path.
func WithLibraryPath(path string) Option {
	return func(cfg *config) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("native library path cannot be empty")
		}
		cfg.libraryPath = path
		return nil
	}
}

// WithSearchDirs prepends directories to the library search list.
func WithSearchDirs(dirs ...string) Option {
	return func(cfg *config) error {
		cleaned := make([]string, 0, len(dirs))
		for _, dir := range dirs {
			dir = strings.TrimSpace(dir)
			if dir == "" {
				return fmt.Errorf("native library search directory cannot be empty")
			}
			cleaned = append(cleaned, filepath.Clean(dir))
		}
		cfg.searchDirs = append(cleaned, cfg.searchDirs...)
		return nil
	}
}

// WithDisabled skips native binding entirely when disable is true.
func WithDisabled(disable bool) Option {
	return func(cfg *config) error {
		cfg.disabled = disable
		return nil
	}
}

// WithLogger sets the logger used to report load outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

func withPlatform(goos, goarch string, features cpuFeatures) Option {
	return func(cfg *config) error {
		cfg.goos = goos
		cfg.goarch = goarch
		cfg.features = features
		return nil
	}
}

func resolveConfig(opts ...Option) (config, error) {
	cfg := config{
		libraryPath: strings.TrimSpace(os.Getenv(envLibraryPath)),
		logger:      slog.Default(),
		goos:        runtime.GOOS,
		goarch:      runtime.GOARCH,
		features:    detectFeatures(),
	}

	disabled, err := parseBoolEnv(envDisable)
	if err != nil {
		return cfg, err
	}
	cfg.disabled = disabled

	if dir := strings.TrimSpace(os.Getenv(envLibraryDir)); dir != "" {
		cfg.searchDirs = append(cfg.searchDirs, filepath.Clean(dir))
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}

	cfg.searchDirs = append(cfg.searchDirs, defaultSearchDirs(cfg.goos)...)
	return cfg, nil
}

func parseBoolEnv(name string) (bool, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return false, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err == nil {
		return parsed, nil
	}

	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value for %s: %q (expected true/false, 1/0, yes/no, on/off)", name, value)
	}
}
