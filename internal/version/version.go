// Package version reports build information of the CLI.
package version

import (
	"fmt"
	"runtime"

	goversion "github.com/hashicorp/go-version"
)

var (
	// Version is the version of the CLI, set with -ldflags.
	Version = "0.1.0"
	// BuildDate is the build date
	BuildDate = "unknown"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// Info holds version information
type Info struct {
	Version   string
	BuildDate string
	GitCommit string
	GoVersion string
	Platform  string
}

// Get returns version information
func Get() Info {
	return Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a formatted version string
func (i Info) String() string {
	return fmt.Sprintf("field-updater version %s (%s %s)", i.Version, i.Platform, i.GoVersion)
}

// Satisfies fails unless Version meets constraints, e.g. ">= 0.1, < 1.0".
// An empty constraint always passes.
func Satisfies(constraints string) error {
	if constraints == "" {
		return nil
	}

	c, err := goversion.NewConstraint(constraints)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraints, err)
	}

	current, err := goversion.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	if !c.Check(current) {
		return fmt.Errorf("field-updater %s does not satisfy required version %q", Version, constraints)
	}

	return nil
}
