// Package version exposes the build version, set via -ldflags at release
// build time.
package version

// value is overridden at build time with:
//
//	go build -ldflags "-X github.com/vibecheck-dev/vibecheck/internal/version.value=v1.2.3"
var value = "dev"

// Value returns the current build version.
func Value() string {
	return value
}
