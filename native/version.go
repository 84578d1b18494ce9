package native

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompatibleVersions is the semver constraint a kernel library must satisfy.
const CompatibleVersions = ">= 1.0.0, < 2.0.0"

func checkVersion(raw string) (*semver.Version, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("native kernel reported an empty version")
	}

	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid native kernel version %q: %w", raw, err)
	}

	constraint, err := semver.NewConstraint(CompatibleVersions)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", CompatibleVersions, err)
	}
	if !constraint.Check(version) {
		return nil, fmt.Errorf("native kernel version %s does not satisfy %s", version, CompatibleVersions)
	}
	return version, nil
}
