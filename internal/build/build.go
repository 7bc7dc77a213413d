// Package build holds build-time metadata. The variables below are
// overridden by -ldflags at release time.
package build

var (
	// ProjectName is used as the namespace for metrics and log fields.
	ProjectName = "openbsp"

	// Version is the build version (e.g. semver for releases, "dev" otherwise).
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = ""
)
