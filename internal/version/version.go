package version

import "fmt"

// Version contains the application version information.
// Set via build-time ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/jsdocmd/internal/version.Version=v0.3.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("jsdocmd %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
