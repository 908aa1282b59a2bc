// Package version provides build-time metadata for the survivorpie binary.
// Version, GitCommit, and BuildDate are injected at compile time via -ldflags.
// It also checks the required-version constraint a config file may declare.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build-time values injected via -ldflags.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

// Info holds the build metadata for the binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns the current build information.
func GetInfo() Info {
	return Info{
		Version:   version,
		GitCommit: shortCommit(gitCommit),
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable single-line version string.
func (i Info) String() string {
	return fmt.Sprintf("survivorpie %s (commit: %s, built: %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// shortCommit truncates a commit SHA to 7 characters.
func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}

	return commit
}

// devVersion is the placeholder version of untagged builds.
const devVersion = "dev"

// Check verifies that the running binary satisfies constraint (e.g.
// ">= 0.3.0"). Development builds satisfy every well-formed constraint.
func Check(constraint string) error {
	return checkVersion(constraint, version)
}

func checkVersion(constraint, actual string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid required-version %q: %w", constraint, err)
	}

	if actual == devVersion {
		return nil
	}

	v, err := semver.NewVersion(actual)
	if err != nil {
		return fmt.Errorf("binary version %q is not a semantic version: %w", actual, err)
	}

	if !c.Check(v) {
		return fmt.Errorf("survivorpie %s does not satisfy required-version %q", actual, constraint)
	}

	return nil
}
