// Package version holds build information set at link time.
package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/coregx/regexbuilder/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/coregx/regexbuilder/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/coregx/regexbuilder/internal/version.Date={{.Date}}
)
