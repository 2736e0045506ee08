package buildinfo

import "fmt"

// Set via ldflags during release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the full version line shown by --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
