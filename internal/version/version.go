// Package version holds the build version of storever.
package version

// version is overridden at build time with
// -ldflags "-X github.com/indaco/storever/internal/version.version=1.2.3".
var version = "dev"

// GetVersion returns the build version.
func GetVersion() string {
	return version
}
