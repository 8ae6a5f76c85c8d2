// Package version exposes the build version string.
package version

import "strings"

// Version is set at build time via -ldflags "-X rendafixa-simulator/pkg/version.Version=v1.2.3".
var Version = "dev"

// Formatted returns the version string without a leading "v".
func Formatted() string {
	return strings.TrimPrefix(Version, "v")
}
