// Package version holds the build identity stamped in through ldflags.
// Unstamped builds report themselves as a dev build.
package version

import "runtime"

// Overridden at build time, e.g.
//
//	-ldflags "-X github.com/M3lvz/toolsorter/internal/version.Version=v0.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GoVersion is the toolchain the binary was compiled with.
var GoVersion = runtime.Version()
