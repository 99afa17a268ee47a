// Package version holds build information set with -ldflags.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	BuildDate    = "unknown"
	BuildVersion = "0.0.0"
	Commit       = "unknown"
)

// BaseVersion returns the major and minor part of BuildVersion,
// for example "v1.7". It returns "unknown" if BuildVersion is not
// a semantic version.
func BaseVersion() string {
	v, err := semver.NewVersion(BuildVersion)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("v%d.%d", v.Major(), v.Minor())
}

// String returns a human-readable description of the build.
func String() string {
	return fmt.Sprintf("marknote %s (%s) on %s", BuildVersion, Commit, BuildDate)
}
